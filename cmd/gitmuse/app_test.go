package main

import (
	"testing"
)

func TestAppHasAllCommands(t *testing.T) {
	app := newApp()

	want := []string{"commit", "rewrite", "pr", "changelog", "explain", "bump", "models", "ping", "hook", "config", "history"}
	got := make(map[string]bool)
	for _, c := range app.Commands {
		got[c.Name] = true
	}
	for _, name := range want {
		if !got[name] {
			t.Errorf("command %q missing", name)
		}
	}
}

func TestHookSubcommands(t *testing.T) {
	app := newApp()
	for _, c := range app.Commands {
		if c.Name != "hook" {
			continue
		}
		names := make(map[string]bool)
		for _, sub := range c.Commands {
			names[sub.Name] = true
		}
		if !names["install"] || !names["uninstall"] {
			t.Errorf("hook subcommands incomplete: %v", names)
		}
		return
	}
	t.Fatal("hook command not found")
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"single", "single"},
		{"first\nsecond", "first"},
		{"", ""},
		{"\nleading newline", ""},
	}
	for _, tt := range tests {
		if got := firstLine(tt.in); got != tt.want {
			t.Errorf("firstLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
