package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gitmuse/gitmuse/internal/git"
	"github.com/gitmuse/gitmuse/internal/output"
	"github.com/gitmuse/gitmuse/internal/prompt"
	"github.com/urfave/cli/v3"
)

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// workingDiff combines the staged and unstaged diffs, either of which may be
// empty.
func workingDiff(ctx context.Context, e *env) (string, error) {
	staged, err := e.repo.Diff(ctx, "", true)
	if err != nil {
		return "", err
	}
	unstaged, err := e.repo.Diff(ctx, "", false)
	if err != nil {
		return "", err
	}

	var parts []string
	if strings.TrimSpace(staged) != "" {
		parts = append(parts, staged)
	}
	if strings.TrimSpace(unstaged) != "" {
		parts = append(parts, unstaged)
	}
	return strings.Join(parts, "\n"), nil
}

func cmdCommit(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if cmd.Bool("silent") {
		e.quiet = true
		e.printer = output.NewPrinter(true, false)
	}
	if err := e.requireRepo(ctx); err != nil {
		return err
	}

	diff, err := workingDiff(ctx, e)
	if err != nil {
		return err
	}
	if strings.TrimSpace(diff) == "" {
		e.printer.Info("Nothing to commit.")
		return nil
	}

	vars := map[string]string{"original_message": "(none)", "diff": diff}

	// Hook mode: generate into the message file and get out of the way.
	if outFile := cmd.String("write-to"); outFile != "" {
		msg, err := e.generate(ctx, prompt.Commit, vars, "commit", "")
		if err != nil {
			return err
		}
		return os.WriteFile(outFile, []byte(strings.TrimSpace(msg)+"\n"), 0644)
	}

	msg, err := confirmLoop(ctx, e, cmd, vars)
	if err != nil || msg == "" {
		return err
	}

	if cmd.Bool("all") {
		e.printer.Info("Staging all changes...")
		if err := e.repo.Add(ctx, "-A"); err != nil {
			return err
		}
	}

	e.printer.Info("Committing...")
	if err := e.repo.Commit(ctx, msg); err != nil {
		return err
	}
	e.printer.Success("Committed: %s", firstLine(msg))

	if cmd.Bool("push") {
		e.printer.Info("Pushing...")
		if err := e.repo.Push(ctx); err != nil {
			return err
		}
		e.printer.Success("Pushed")
	}
	return nil
}

// confirmLoop regenerates or edits until the user accepts. Returns "" when
// the user cancels.
func confirmLoop(ctx context.Context, e *env, cmd *cli.Command, vars map[string]string) (string, error) {
	reader := bufio.NewReader(os.Stdin)
	for {
		sp := e.printer.Spinner("Generating commit message")
		msg, err := e.generate(ctx, prompt.Commit, vars, "commit", "")
		if err != nil {
			sp.Fail("generation failed")
			return "", err
		}
		sp.Stop("generated")

		if cmd.Bool("yes") || e.quiet {
			return msg, nil
		}

		fmt.Printf("\n%s\n\n", msg)
		e.printer.Divider()
		e.printer.Println("  [Enter] Accept | [g] Regenerate | [e] Edit | [other] Cancel")
		e.printer.Divider()
		fmt.Fprint(os.Stderr, "> ")

		input, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "":
			return msg, nil
		case "g":
			e.printer.Info("Regenerating...")
			continue
		case "e":
			fmt.Fprint(os.Stderr, "New message: ")
			edited, err := reader.ReadString('\n')
			if err != nil {
				return "", err
			}
			if strings.TrimSpace(edited) == "" {
				return msg, nil
			}
			return strings.TrimSpace(edited), nil
		default:
			e.printer.Info("Canceled.")
			return "", nil
		}
	}
}

// rewriteResult is one entry of the rewrite JSON export.
type rewriteResult struct {
	Hash      string `json:"hash"`
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
}

func cmdRewrite(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if err := e.requireRepo(ctx); err != nil {
		return err
	}

	e.printer.Info("Fetching commit history...")
	commits, err := e.repo.Log(ctx, git.LogOptions{
		Limit: int(cmd.Int("limit")),
		Since: cmd.String("since"),
	})
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		e.printer.Info("No commits found.")
		return nil
	}

	root, err := e.repo.Root(ctx)
	if err != nil {
		return err
	}
	store, err := e.openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	force := cmd.Bool("force")
	e.printer.Info("Processing %d commits...", len(commits))

	var results []rewriteResult
	for i, c := range commits {
		short := c.Hash
		if len(short) > 8 {
			short = short[:8]
		}
		e.printer.Printf("[%d/%d] %s  %s\n", i+1, len(commits), short, firstLine(c.Message))

		if !force {
			seen, err := store.HasCommit(root, c.Hash)
			if err != nil {
				return err
			}
			if seen {
				e.printer.Printf("  already processed, skipping\n")
				continue
			}
		}

		diff, err := e.repo.CommitDiff(ctx, c.Hash)
		if err != nil {
			return err
		}
		if diff == "" {
			e.printer.Printf("  no diff available, skipping\n")
			continue
		}

		original := c.Message
		if original == "" {
			original = "(none)"
		}
		msg, err := e.generate(ctx, prompt.Commit, map[string]string{
			"original_message": original,
			"diff":             diff,
		}, "rewrite", c.Hash)
		if err != nil {
			return err
		}

		e.printer.Printf("  -> %s\n", firstLine(msg))
		results = append(results, rewriteResult{Hash: c.Hash, Original: c.Message, Suggested: msg})
	}

	if outFile := cmd.String("output"); outFile != "" && len(results) > 0 {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(outFile, data, 0644); err != nil {
			return err
		}
		e.printer.Success("Results saved to %s", outFile)
	}
	return nil
}
