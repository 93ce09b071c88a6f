package main

import (
	"context"
	"log"
	"os"

	"github.com/gitmuse/gitmuse/internal/llm"
)

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	app := newApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Print(err)
		// Exit 2 for configuration mistakes (unknown provider, missing key)
		// so hooks and scripts can tell them from runtime failures.
		if llm.IsConfigError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
