package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gitmuse/gitmuse/internal/config"
	"github.com/gitmuse/gitmuse/internal/git"
	"github.com/gitmuse/gitmuse/internal/history"
	"github.com/gitmuse/gitmuse/internal/hook"
	"github.com/gitmuse/gitmuse/internal/llm"
	"github.com/gitmuse/gitmuse/internal/output"
	"github.com/gitmuse/gitmuse/internal/prompt"
	"github.com/urfave/cli/v3"
)

// env bundles everything a command needs: resolved config, the invoker, the
// repo handle, and the printer.
type env struct {
	cfg     *config.Config
	printer *output.Printer
	invoker *llm.Invoker
	repo    *git.Repo
	quiet   bool
}

func loadEnv(cmd *cli.Command) (*env, error) {
	configPath := cmd.String("config")
	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// Flags beat env beats file.
	if p := cmd.String("provider"); p != "" {
		cfg.Provider = p
	}
	if m := cmd.String("model"); m != "" {
		cfg.Model = m
	}

	quiet := cmd.Bool("quiet")
	verbose := cmd.Bool("verbose")

	logOut := io.Discard
	if verbose {
		logOut = os.Stderr
	}
	logger := log.New(logOut, "gitmuse: ", log.LstdFlags)

	registry := llm.DefaultRegistry()
	if len(cfg.BaseURLs) > 0 {
		registry = registry.WithBaseURLs(cfg.BaseURLs)
	}

	return &env{
		cfg:     cfg,
		printer: output.NewPrinter(quiet, verbose),
		invoker: llm.NewInvoker(registry, llm.WithLogger(logger)),
		repo:    &git.Repo{},
		quiet:   quiet,
	}, nil
}

// generate runs one template through the invoker and records the result.
// History failures are reported but never block the generated text.
func (e *env) generate(ctx context.Context, tpl prompt.Template, vars map[string]string, kind, commitHash string) (string, error) {
	budget := tpl.MaxTokens
	if e.cfg.MaxTokens > 0 && budget > e.cfg.MaxTokens {
		budget = e.cfg.MaxTokens
	}
	resp, err := e.invoker.Invoke(ctx, llm.Request{
		Provider:     e.cfg.Provider,
		Model:        e.cfg.Model,
		SystemPrompt: tpl.System,
		UserPrompt:   tpl.Render(vars),
		MaxTokens:    budget,
	})
	if err != nil {
		return "", err
	}
	if !resp.HasText {
		return "", fmt.Errorf("%s returned no usable text", e.cfg.Provider)
	}

	e.recordHistory(ctx, kind, commitHash, resp.Model, resp.Text)
	return resp.Text, nil
}

func (e *env) recordHistory(ctx context.Context, kind, commitHash, model, text string) {
	root, err := e.repo.Root(ctx)
	if err != nil {
		return
	}
	store, err := e.openHistory()
	if err != nil {
		e.printer.Debug("history unavailable: %v", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(history.Suggestion{
		Repo:       root,
		Kind:       kind,
		CommitHash: commitHash,
		Provider:   e.cfg.Provider,
		Model:      model,
		Text:       text,
	}); err != nil {
		e.printer.Debug("record history: %v", err)
	}
}

func (e *env) openHistory() (*history.Store, error) {
	path, err := e.cfg.HistoryPath()
	if err != nil {
		return nil, err
	}
	return history.Open(path)
}

func (e *env) requireRepo(ctx context.Context) error {
	if !e.repo.IsRepo(ctx) {
		return fmt.Errorf("not a git repository")
	}
	return nil
}

func cmdConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	changed := false
	if p := cmd.String("set-provider"); p != "" {
		if _, err := llm.DefaultRegistry().Lookup(p); err != nil {
			return err
		}
		cfg.Provider = p
		changed = true
	}
	if m := cmd.String("set-model"); m != "" {
		cfg.Model = m
		changed = true
	}
	if b := cmd.String("set-base-branch"); b != "" {
		cfg.BaseBranch = b
		changed = true
	}
	if changed {
		if err := cfg.Save(configPath); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}

	fmt.Printf("Configuration (%s):\n", configPath)
	fmt.Printf("  Provider:    %s\n", cfg.Provider)
	model := cfg.Model
	if model == "" {
		model = "(auto-select)"
	}
	fmt.Printf("  Model:       %s\n", model)
	fmt.Printf("  Max Tokens:  %d\n", cfg.MaxTokens)
	fmt.Printf("  Base Branch: %s\n", cfg.BaseBranch)
	return nil
}

func cmdModels(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	catalog, err := e.invoker.ListModels(ctx, e.cfg.Provider)
	if err != nil {
		return err
	}

	e.printer.Info("%s exposes %d models", e.cfg.Provider, len(catalog.Models))
	for _, m := range catalog.Models {
		fmt.Println(m)
	}
	return nil
}

func cmdPing(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	catalog, err := e.invoker.ListModels(ctx, e.cfg.Provider)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	fmt.Printf("models: %d\n", len(catalog.Models))

	model := e.cfg.Model
	if model == "" {
		model, err = e.invoker.ResolveModel(ctx, e.cfg.Provider)
		if err != nil {
			return fmt.Errorf("select model: %w", err)
		}
	}
	fmt.Printf("model: %s\n", model)

	resp, err := e.invoker.Invoke(ctx, llm.Request{
		Provider:   e.cfg.Provider,
		Model:      model,
		UserPrompt: "Reply with the single word: pong",
		MaxTokens:  16,
	})
	if err != nil {
		return fmt.Errorf("invoke: %w", err)
	}
	if resp.HasText {
		fmt.Printf("reply: %s\n", resp.Text)
	} else {
		fmt.Println("reply: (no text parsed)")
	}
	return nil
}

func cmdHookInstall(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if err := e.requireRepo(ctx); err != nil {
		return err
	}
	gitDir, err := e.repo.GitDir(ctx)
	if err != nil {
		return err
	}
	path, err := hook.Install(gitDir)
	if err != nil {
		return err
	}
	e.printer.Success("Hook installed at %s", path)
	return nil
}

func cmdHookUninstall(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if err := e.requireRepo(ctx); err != nil {
		return err
	}
	gitDir, err := e.repo.GitDir(ctx)
	if err != nil {
		return err
	}
	removed, err := hook.Uninstall(gitDir)
	if err != nil {
		return err
	}
	if removed {
		e.printer.Success("Hook removed")
	} else {
		e.printer.Info("No hook installed")
	}
	return nil
}

func cmdHistory(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if err := e.requireRepo(ctx); err != nil {
		return err
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

	suggestions, err := store.Recent(root, cmd.String("kind"), int(cmd.Int("limit")))
	if err != nil {
		return err
	}
	if len(suggestions) == 0 {
		e.printer.Info("No suggestions recorded yet")
		return nil
	}
	for _, s := range suggestions {
		hash := s.CommitHash
		if hash == "" {
			hash = "-"
		} else if len(hash) > 8 {
			hash = hash[:8]
		}
		fmt.Printf("%s  %-9s %-10s %s\n", s.CreatedAt[:10], s.Kind, hash, firstLine(s.Text))
	}
	return nil
}
