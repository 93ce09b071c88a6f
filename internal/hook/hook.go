// Package hook installs the prepare-commit-msg hook that routes commit
// message generation through gitmuse.
package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// marker identifies hooks we wrote; install refuses to clobber anything
// without it and uninstall refuses to remove anything without it.
const marker = "gitmuse-hook"

const script = `#!/bin/sh
# gitmuse-hook: generated by gitmuse, do not edit
# Runs on Linux, macOS, and Windows (Git Bash)

# Skip if gitmuse is not in PATH
if ! command -v gitmuse >/dev/null 2>&1; then
    exit 0
fi

COMMIT_MSG_FILE=$1
COMMIT_SOURCE=$2

# Skip if the user provided a message via -m, -F, or it is a merge/squash
if [ -n "$COMMIT_SOURCE" ]; then
    exit 0
fi

gitmuse commit --write-to "$COMMIT_MSG_FILE" --silent
`

// Path returns the prepare-commit-msg path for a .git directory.
func Path(gitDir string) string {
	return filepath.Join(gitDir, "hooks", "prepare-commit-msg")
}

// validate parses the script as POSIX shell. Run at install time so a bad
// edit to the embedded script can never brick every commit.
func validate(src string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	_, err := parser.Parse(strings.NewReader(src), "prepare-commit-msg")
	if err != nil {
		return fmt.Errorf("hook script does not parse: %w", err)
	}
	return nil
}

// Install writes the hook. An existing gitmuse hook is overwritten in place
// (upgrades); a foreign hook is an error.
func Install(gitDir string) (string, error) {
	if err := validate(script); err != nil {
		return "", err
	}

	path := Path(gitDir)
	if existing, err := os.ReadFile(path); err == nil {
		if !strings.Contains(string(existing), marker) {
			return "", fmt.Errorf("a prepare-commit-msg hook already exists at %s; back it up or delete it first", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		return "", err
	}
	return path, nil
}

// Uninstall removes the hook if we installed it. Returns false when there was
// nothing to remove; refuses to touch a foreign hook.
func Uninstall(gitDir string) (bool, error) {
	path := Path(gitDir)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if !strings.Contains(string(content), marker) {
		return false, fmt.Errorf("the hook at %s was not created by gitmuse; remove it manually", path)
	}
	if err := os.Remove(path); err != nil {
		return false, err
	}
	return true, nil
}

// Installed reports whether our hook is present.
func Installed(gitDir string) bool {
	content, err := os.ReadFile(Path(gitDir))
	return err == nil && strings.Contains(string(content), marker)
}
