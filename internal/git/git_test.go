package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLog(t *testing.T) {
	out := "abc123|Alice|2026-01-02 10:00:00 +0000|feat: add thing\n" +
		"def456|Bob|2026-01-01 09:00:00 +0000|fix: message with | pipe\n" +
		"\n" +
		"malformed line\n"

	commits := parseLog(out)
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if commits[0].Hash != "abc123" || commits[0].Author != "Alice" {
		t.Errorf("first commit wrong: %+v", commits[0])
	}
	// Pipes inside the subject survive the 4-way split.
	if commits[1].Message != "fix: message with | pipe" {
		t.Errorf("subject with pipe mangled: %q", commits[1].Message)
	}
}

func TestTruncateDiff(t *testing.T) {
	t.Run("short diff unchanged", func(t *testing.T) {
		diff := "short diff content"
		if got := TruncateDiff(diff, 1000); got != diff {
			t.Errorf("short diff modified: %q", got)
		}
	})

	t.Run("long diff gets marker", func(t *testing.T) {
		diff := strings.Repeat("x", 500)
		got := TruncateDiff(diff, 100)
		if !strings.HasSuffix(got, "[... truncated ...]") {
			t.Errorf("missing truncation marker: %q", got)
		}
		if len(got) > 100+len("\n\n[... truncated ...]") {
			t.Errorf("truncated diff too long: %d", len(got))
		}
	})

	t.Run("cut backs up to file boundary past halfway", func(t *testing.T) {
		fileA := "diff --git a/a b/a\n" + strings.Repeat("a", 60)
		fileB := "\ndiff --git a/b b/b\n" + strings.Repeat("b", 200)
		got := TruncateDiff(fileA+fileB, 100)
		if strings.Contains(got, "b/b") {
			t.Errorf("second file should be cut entirely: %q", got)
		}
	})

	t.Run("boundary before halfway is ignored", func(t *testing.T) {
		// The only boundary sits in the first half, so a plain cut is kept
		// rather than discarding most of the content.
		diff := "diff --git a/a b/a\nx\ndiff --git a/b b/b\n" + strings.Repeat("b", 500)
		got := TruncateDiff(diff, 400)
		if !strings.Contains(got, "b/b") {
			t.Errorf("plain cut expected, got %q", got)
		}
	})
}

func TestExcludePatternsShape(t *testing.T) {
	if len(excludePatterns) == 0 {
		t.Fatal("no exclude patterns")
	}
	for _, p := range excludePatterns {
		if !strings.HasPrefix(p, ":(exclude)") {
			t.Errorf("pattern %q missing pathspec prefix", p)
		}
	}
}

// initTestRepo creates a throwaway repo with one commit.
func initTestRepo(t *testing.T) *Repo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	r := &Repo{Dir: dir}
	ctx := context.Background()

	for _, args := range [][]string{
		{"init", "-b", "main"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test"},
	} {
		if _, err := r.run(ctx, args...); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.Add(ctx, "."); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.Commit(ctx, "feat: initial commit"); err != nil {
		t.Fatalf("commit: %v", err)
	}
	return r
}

func TestRepoRoundTrip(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	if !r.IsRepo(ctx) {
		t.Fatal("IsRepo = false inside a repo")
	}
	if b := r.CurrentBranch(ctx); b != "main" {
		t.Errorf("branch = %q", b)
	}
	if b := r.DefaultBranch(ctx); b != "main" {
		t.Errorf("default branch = %q", b)
	}

	commits, err := r.Log(ctx, LogOptions{Limit: 10})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(commits) != 1 || commits[0].Message != "feat: initial commit" {
		t.Errorf("unexpected log: %+v", commits)
	}

	// Root commit diff goes through diff-tree.
	diff, err := r.CommitDiff(ctx, commits[0].Hash)
	if err != nil {
		t.Fatalf("commit diff: %v", err)
	}
	if !strings.Contains(diff, "hello.txt") {
		t.Errorf("diff missing file: %q", diff)
	}

	if tag := r.LatestTag(ctx); tag != "0.0.0" {
		t.Errorf("expected 0.0.0 with no tags, got %q", tag)
	}
}

func TestRepoStagedDiff(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(r.Dir, "hello.txt"), []byte("changed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Unstaged change shows in the working-tree diff, not the staged one.
	diff, err := r.Diff(ctx, "", false)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if !strings.Contains(diff, "changed") {
		t.Errorf("working diff missing change: %q", diff)
	}

	staged, err := r.Diff(ctx, "", true)
	if err != nil {
		t.Fatalf("staged diff: %v", err)
	}
	if strings.Contains(staged, "changed") {
		t.Errorf("staged diff should be empty before add: %q", staged)
	}

	if err := r.Add(ctx, "."); err != nil {
		t.Fatal(err)
	}
	staged, err = r.Diff(ctx, "", true)
	if err != nil {
		t.Fatalf("staged diff: %v", err)
	}
	if !strings.Contains(staged, "changed") {
		t.Errorf("staged diff missing change after add: %q", staged)
	}
}

func TestBuildLogRange(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	// Explicit from wins regardless of branch.
	if got := r.BuildLogRange(ctx, "v1.0.0", "", "main"); got != "v1.0.0..HEAD" {
		t.Errorf("explicit range = %q", got)
	}
	// On the base branch with no from there is no implied range.
	if got := r.BuildLogRange(ctx, "", "", "main"); got != "" {
		t.Errorf("expected empty range on base branch, got %q", got)
	}

	if _, err := r.run(ctx, "checkout", "-b", "feature"); err != nil {
		t.Fatal(err)
	}
	if got := r.BuildLogRange(ctx, "", "", "main"); got != "main..feature" {
		t.Errorf("feature range = %q", got)
	}
}

func TestBuildDiffTarget(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	// Base branch, no tags: nothing sensible to diff.
	if got := r.BuildDiffTarget(ctx, "", "", "main"); got != "" {
		t.Errorf("expected empty target, got %q", got)
	}

	if _, err := r.run(ctx, "tag", "v1.2.3"); err != nil {
		t.Fatal(err)
	}
	if got := r.BuildDiffTarget(ctx, "", "", "main"); got != "v1.2.3..HEAD" {
		t.Errorf("tag target = %q", got)
	}

	if _, err := r.run(ctx, "checkout", "-b", "feature"); err != nil {
		t.Fatal(err)
	}
	if got := r.BuildDiffTarget(ctx, "", "", "main"); got != "main...feature" {
		t.Errorf("feature target = %q", got)
	}
}
