package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gitmuse/gitmuse/internal/git"
	"github.com/gitmuse/gitmuse/internal/prompt"
	"github.com/urfave/cli/v3"
)

func cmdPR(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if err := e.requireRepo(ctx); err != nil {
		return err
	}

	branch := e.repo.CurrentBranch(ctx)
	base := cmd.String("base")
	if base == "" {
		base = e.cfg.BaseBranch
	}
	e.printer.Info("Generating PR description: %s -> %s", branch, base)

	var diff, stats, commitsText string
	if cmd.Bool("staged") {
		if diff, err = e.repo.Diff(ctx, "", true); err != nil {
			return err
		}
		if stats, err = e.repo.DiffStats(ctx, "", true); err != nil {
			return err
		}
		commitsText = "(staged changes)"
	} else {
		target := e.repo.BuildDiffTarget(ctx, "", "", base)
		if diff, err = e.repo.Diff(ctx, target, false); err != nil {
			return err
		}
		if stats, err = e.repo.DiffStats(ctx, target, false); err != nil {
			return err
		}
		commitsText = branchCommits(ctx, e, base, branch)
	}

	if strings.TrimSpace(diff) == "" {
		e.printer.Info("No changes detected.")
		return nil
	}

	text, err := e.generate(ctx, prompt.PR, map[string]string{
		"branch":  branch,
		"commits": commitsText,
		"stats":   stats,
		"diff":    diff,
	}, "pr", "")
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

// branchCommits lists up to 20 branch commit subjects as bullets.
func branchCommits(ctx context.Context, e *env, base, branch string) string {
	commits, err := e.repo.Log(ctx, git.LogOptions{Range: base + ".." + branch})
	if err != nil || len(commits) == 0 {
		return "(no commits)"
	}
	if len(commits) > 20 {
		commits = commits[:20]
	}
	var b strings.Builder
	for _, c := range commits {
		fmt.Fprintf(&b, "- %s\n", c.Message)
	}
	return strings.TrimRight(b.String(), "\n")
}

func cmdChangelog(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if err := e.requireRepo(ctx); err != nil {
		return err
	}

	rng := e.repo.BuildLogRange(ctx, cmd.String("from"), cmd.String("to"), e.cfg.BaseBranch)
	opts := git.LogOptions{Range: rng}
	display := rng
	if rng == "" {
		opts.Limit = int(cmd.Int("limit"))
		display = fmt.Sprintf("last %d commits", opts.Limit)
	}

	commits, err := e.repo.Log(ctx, opts)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		e.printer.Info("No commits in range.")
		return nil
	}
	e.printer.Info("Generating release notes for %s (%d commits)", display, len(commits))

	var b strings.Builder
	for _, c := range commits {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", c.Message, c.Author, c.Date)
	}

	text, err := e.generate(ctx, prompt.Changelog, map[string]string{
		"range":   display,
		"count":   strconv.Itoa(len(commits)),
		"commits": b.String(),
	}, "changelog", "")
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func cmdExplain(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if err := e.requireRepo(ctx); err != nil {
		return err
	}

	target := cmd.String("target")
	diff, err := e.repo.Diff(ctx, target, false)
	if err != nil {
		return err
	}
	if strings.TrimSpace(diff) == "" {
		// Fall back to the staged diff so "explain" works right before commit.
		if diff, err = e.repo.Diff(ctx, "", true); err != nil {
			return err
		}
	}
	if strings.TrimSpace(diff) == "" {
		e.printer.Info("No changes to explain.")
		return nil
	}
	stats, err := e.repo.DiffStats(ctx, target, false)
	if err != nil {
		return err
	}

	text, err := e.generate(ctx, prompt.Explain, map[string]string{
		"stats": stats,
		"diff":  diff,
	}, "explain", "")
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func cmdBump(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if err := e.requireRepo(ctx); err != nil {
		return err
	}

	current := e.repo.LatestTag(ctx)
	target := ""
	if current != "0.0.0" {
		target = current + "..HEAD"
	}
	diff, err := e.repo.Diff(ctx, target, false)
	if err != nil {
		return err
	}
	if strings.TrimSpace(diff) == "" {
		e.printer.Info("No changes since %s.", current)
		return nil
	}
	e.printer.Info("Analyzing changes since %s", current)

	text, err := e.generate(ctx, prompt.Bump, map[string]string{
		"version": current,
		"diff":    diff,
	}, "bump", "")
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
