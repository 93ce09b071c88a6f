package hook

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestInstallAndUninstall(t *testing.T) {
	gitDir := t.TempDir()

	path, err := Install(gitDir)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if path != filepath.Join(gitDir, "hooks", "prepare-commit-msg") {
		t.Errorf("unexpected path %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), "#!/bin/sh") {
		t.Error("hook missing shebang")
	}
	if !strings.Contains(string(content), marker) {
		t.Error("hook missing marker")
	}
	if !strings.Contains(string(content), "--write-to") {
		t.Error("hook does not invoke gitmuse commit --write-to")
	}

	if runtime.GOOS != "windows" {
		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0755 {
			t.Errorf("expected 0755, got %v", info.Mode().Perm())
		}
	}

	if !Installed(gitDir) {
		t.Error("Installed = false after install")
	}

	removed, err := Uninstall(gitDir)
	if err != nil {
		t.Fatalf("uninstall: %v", err)
	}
	if !removed {
		t.Error("uninstall reported nothing removed")
	}
	if Installed(gitDir) {
		t.Error("Installed = true after uninstall")
	}
}

func TestInstallIsIdempotent(t *testing.T) {
	gitDir := t.TempDir()
	if _, err := Install(gitDir); err != nil {
		t.Fatalf("first install: %v", err)
	}
	if _, err := Install(gitDir); err != nil {
		t.Fatalf("reinstall over own hook: %v", err)
	}
}

func TestInstallRefusesForeignHook(t *testing.T) {
	gitDir := t.TempDir()
	path := Path(gitDir)
	os.MkdirAll(filepath.Dir(path), 0755)
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho custom\n"), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := Install(gitDir); err == nil {
		t.Fatal("expected error installing over a foreign hook")
	}

	// The foreign hook is untouched.
	content, _ := os.ReadFile(path)
	if !strings.Contains(string(content), "echo custom") {
		t.Error("foreign hook was modified")
	}
}

func TestUninstallRefusesForeignHook(t *testing.T) {
	gitDir := t.TempDir()
	path := Path(gitDir)
	os.MkdirAll(filepath.Dir(path), 0755)
	os.WriteFile(path, []byte("#!/bin/sh\necho custom\n"), 0755)

	if _, err := Uninstall(gitDir); err == nil {
		t.Fatal("expected error uninstalling a foreign hook")
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("foreign hook was removed")
	}
}

func TestUninstallNothingThere(t *testing.T) {
	removed, err := Uninstall(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Error("reported removal with no hook present")
	}
}

func TestScriptParsesAsPOSIXShell(t *testing.T) {
	if err := validate(script); err != nil {
		t.Fatalf("embedded hook script invalid: %v", err)
	}
	if err := validate("if then fi ("); err == nil {
		t.Error("validator accepted garbage")
	}
}
