// Package git shells out to the git CLI for the repository facts the
// generators need: diffs, logs, branches, and tags.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// excludePatterns are pathspecs appended to diff commands to keep generated
// and vendored noise out of the prompt.
var excludePatterns = []string{
	":(exclude)*.lock",
	":(exclude)package-lock.json",
	":(exclude)yarn.lock",
	":(exclude)pnpm-lock.yaml",
	":(exclude)dist/*",
	":(exclude)build/*",
	":(exclude)*.min.js",
	":(exclude)*.min.css",
	":(exclude)*.map",
	":(exclude).env*",
	":(exclude)target/*",
}

// Diff size caps, in characters. Working-tree diffs get more room than
// per-commit diffs because they back the primary commit flow.
const (
	MaxDiffChars       = 15000
	MaxCommitDiffChars = 12000
)

// Commit is one parsed log entry.
type Commit struct {
	Hash    string
	Author  string
	Date    string
	Message string
}

// Repo runs git commands in a working directory. An empty Dir uses the
// process working directory.
type Repo struct {
	Dir string
}

func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s: %s", args[0], strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}

// IsRepo reports whether the directory is inside a git work tree.
func (r *Repo) IsRepo(ctx context.Context) bool {
	_, err := r.run(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// GitDir returns the repository's .git directory path.
func (r *Repo) GitDir(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Root returns the top-level work tree path, used as the repo key in the
// suggestion history.
func (r *Repo) Root(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CurrentBranch returns the checked-out branch, falling back to the
// abbreviated ref (detached HEAD reports "HEAD").
func (r *Repo) CurrentBranch(ctx context.Context) string {
	if out, err := r.run(ctx, "branch", "--show-current"); err == nil {
		if b := strings.TrimSpace(out); b != "" {
			return b
		}
	}
	if out, err := r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		if b := strings.TrimSpace(out); b != "" {
			return b
		}
	}
	return "HEAD"
}

// DefaultBranch returns main or master, whichever exists, preferring main.
func (r *Repo) DefaultBranch(ctx context.Context) string {
	for _, b := range []string{"main", "master"} {
		if _, err := r.run(ctx, "rev-parse", "--verify", b); err == nil {
			return b
		}
	}
	return "main"
}

// LogOptions filter Log output. Zero values are omitted from the command.
type LogOptions struct {
	Limit int
	Since string
	Until string
	Range string
}

// Log returns parsed commits, newest first.
func (r *Repo) Log(ctx context.Context, opts LogOptions) ([]Commit, error) {
	args := []string{"log", "--pretty=format:%H|%an|%ad|%s", "--date=iso"}
	if opts.Limit > 0 {
		args = append(args, fmt.Sprintf("-n%d", opts.Limit))
	}
	if opts.Since != "" {
		args = append(args, "--since="+opts.Since)
	}
	if opts.Until != "" {
		args = append(args, "--until="+opts.Until)
	}
	if opts.Range != "" {
		args = append(args, opts.Range)
	}

	out, err := r.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parseLog(out), nil
}

func parseLog(out string) []Commit {
	var commits []Commit
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 4)
		if len(parts) < 4 {
			continue
		}
		commits = append(commits, Commit{
			Hash:    parts[0],
			Author:  parts[1],
			Date:    parts[2],
			Message: parts[3],
		})
	}
	return commits
}

// Diff returns the working-tree diff, truncated to MaxDiffChars. With staged
// set it diffs the index; otherwise target (when non-empty) names a
// rev or range to diff against.
func (r *Repo) Diff(ctx context.Context, target string, staged bool) (string, error) {
	args := []string{"diff", "--unified=3"}
	if staged {
		args = append(args, "--cached")
	} else if target != "" {
		args = append(args, target)
	}
	args = append(args, "--", ".")
	args = append(args, excludePatterns...)

	out, err := r.run(ctx, args...)
	if err != nil {
		return "", err
	}
	return TruncateDiff(out, MaxDiffChars), nil
}

// DiffStats returns the --stat summary for the same selection as Diff.
func (r *Repo) DiffStats(ctx context.Context, target string, staged bool) (string, error) {
	args := []string{"diff", "--stat"}
	if staged {
		args = append(args, "--cached")
	} else if target != "" {
		args = append(args, target)
	}
	return r.run(ctx, args...)
}

// CommitDiff returns one commit's patch, truncated to MaxCommitDiffChars.
// Root commits (no parent) go through diff-tree. Empty patches return "".
func (r *Repo) CommitDiff(ctx context.Context, hash string) (string, error) {
	_, err := r.run(ctx, "rev-parse", hash+"^")
	hasParent := err == nil

	var args []string
	if hasParent {
		args = []string{"diff", hash + "^!", "--unified=3", "--", "."}
	} else {
		args = []string{"diff-tree", "--patch", "--unified=3", "--root", hash, "--", "."}
	}
	args = append(args, excludePatterns...)

	out, err := r.run(ctx, args...)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", nil
	}
	return TruncateDiff(out, MaxCommitDiffChars), nil
}

// LatestTag returns the most recent annotated or lightweight tag, or "0.0.0"
// when the repo has none.
func (r *Repo) LatestTag(ctx context.Context) string {
	out, err := r.run(ctx, "describe", "--tags", "--abbrev=0")
	if err != nil {
		return "0.0.0"
	}
	if tag := strings.TrimSpace(out); tag != "" {
		return tag
	}
	return "0.0.0"
}

// Add stages paths ("." for everything).
func (r *Repo) Add(ctx context.Context, paths ...string) error {
	args := append([]string{"add"}, paths...)
	_, err := r.run(ctx, args...)
	return err
}

// Commit records the staged changes with the given message.
func (r *Repo) Commit(ctx context.Context, message string) error {
	_, err := r.run(ctx, "commit", "-m", message)
	return err
}

// Push pushes the current branch.
func (r *Repo) Push(ctx context.Context) error {
	_, err := r.run(ctx, "push")
	return err
}

// BuildLogRange computes the from..to range for changelog-style commands.
// Explicit from wins; otherwise a feature branch diffs against base; on the
// base branch itself there is no implied range.
func (r *Repo) BuildLogRange(ctx context.Context, from, to, baseBranch string) string {
	end := to
	if end == "" {
		end = "HEAD"
	}
	if from != "" {
		return from + ".." + end
	}
	branch := r.CurrentBranch(ctx)
	if branch != baseBranch {
		if to != "" {
			return baseBranch + ".." + end
		}
		return baseBranch + ".." + branch
	}
	return ""
}

// BuildDiffTarget computes the rev expression PR descriptions diff against:
// base...branch for feature branches, latest-tag..HEAD on the base branch,
// empty when there is nothing sensible to compare.
func (r *Repo) BuildDiffTarget(ctx context.Context, from, to, baseBranch string) string {
	end := to
	if end == "" {
		end = "HEAD"
	}
	if from != "" {
		return from + ".." + end
	}
	branch := r.CurrentBranch(ctx)
	if branch != baseBranch {
		if to != "" {
			return baseBranch + "..." + end
		}
		return baseBranch + "..." + branch
	}
	if tag := r.LatestTag(ctx); tag != "0.0.0" {
		return tag + ".." + end
	}
	return ""
}

// TruncateDiff caps a diff at max characters. When a file boundary falls in
// the second half of the kept prefix the cut moves back to it so no file is
// split mid-hunk, and a marker is appended.
func TruncateDiff(diff string, max int) string {
	if len(diff) <= max {
		return diff
	}
	t := diff[:max]
	if p := strings.LastIndex(t, "\ndiff --git"); p > max/2 {
		t = t[:p]
	}
	return t + "\n\n[... truncated ...]"
}
