package main

import (
	"github.com/urfave/cli/v3"
)

// version is set via ldflags at build time.
// e.g. -ldflags "-X main.version=1.2.3"
var version = "dev"

// newApp creates the CLI application with all flags and commands.
func newApp() *cli.Command {
	return &cli.Command{
		Name:        "gitmuse",
		Usage:       "AI-assisted git workflows",
		Version:     version,
		UsageText:   "gitmuse [global options] command [command options] [arguments...]",
		Description: "gitmuse generates commit messages, PR descriptions, changelogs, and more from your repository history",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default ~/.gitmuse.json)",
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"P"},
				Usage:   "Provider: openai, anthropic, gemini, groq, together, deepinfra, openrouter, xai, mistral, ollama",
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Explicit model id (default: auto-select from the provider catalog)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Verbose logging",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress status output (generated text still prints)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "commit",
				Usage: "Generate a commit message from staged and unstaged changes",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Stage all changes before committing"},
					&cli.BoolFlag{Name: "push", Usage: "Push after committing"},
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Accept the first suggestion without confirmation"},
					&cli.StringFlag{Name: "write-to", Usage: "Write the message to a file instead of committing (hook mode)"},
					&cli.BoolFlag{Name: "silent", Usage: "No prompts or status output (hook mode)"},
				},
				Action: cmdCommit,
			},
			{
				Name:  "rewrite",
				Usage: "Suggest improved messages for past commits",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 10, Usage: "Number of commits to process"},
					&cli.StringFlag{Name: "since", Usage: "Only commits after this date"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write suggestions to a JSON file"},
					&cli.BoolFlag{Name: "force", Usage: "Re-process commits that already have suggestions"},
				},
				Action: cmdRewrite,
			},
			{
				Name:  "pr",
				Usage: "Generate a pull request description for the current branch",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "base", Usage: "Base branch to compare against"},
					&cli.BoolFlag{Name: "staged", Usage: "Describe staged changes instead of the branch"},
				},
				Action: cmdPR,
			},
			{
				Name:  "changelog",
				Usage: "Generate release notes from commit history",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "Start rev (tag, branch, hash)"},
					&cli.StringFlag{Name: "to", Usage: "End rev (default HEAD)"},
					&cli.IntFlag{Name: "limit", Value: 50, Usage: "Max commits when no range applies"},
				},
				Action: cmdChangelog,
			},
			{
				Name:   "explain",
				Usage:  "Explain the current changes for a non-technical reader",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "target", Usage: "Rev or range to explain (default working tree)"}},
				Action: cmdExplain,
			},
			{
				Name:   "bump",
				Usage:  "Recommend a semantic version bump for the current changes",
				Action: cmdBump,
			},
			{
				Name:   "models",
				Usage:  "List the provider's available models",
				Action: cmdModels,
			},
			{
				Name:   "ping",
				Usage:  "Check provider connectivity end to end",
				Action: cmdPing,
			},
			{
				Name:  "hook",
				Usage: "Manage the prepare-commit-msg hook",
				Commands: []*cli.Command{
					{Name: "install", Usage: "Install the hook", Action: cmdHookInstall},
					{Name: "uninstall", Usage: "Remove the hook", Action: cmdHookUninstall},
				},
			},
			{
				Name:  "config",
				Usage: "Show or update configuration",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "set-provider", Usage: "Persist a default provider"},
					&cli.StringFlag{Name: "set-model", Usage: "Persist a default model"},
					&cli.StringFlag{Name: "set-base-branch", Usage: "Persist the base branch"},
				},
				Action: cmdConfig,
			},
			{
				Name:  "history",
				Usage: "Show recent generated suggestions for this repo",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 10, Usage: "Number of suggestions to show"},
					&cli.StringFlag{Name: "kind", Usage: "Filter by kind: commit, rewrite, pr, changelog, explain, bump"},
				},
				Action: cmdHistory,
			},
		},
	}
}
