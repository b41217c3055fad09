package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/locvowork/objectdoc/internal/bootstrap"
	"github.com/locvowork/objectdoc/internal/config"
	"github.com/locvowork/objectdoc/internal/logger"
	"github.com/locvowork/objectdoc/internal/selector"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", config.DefaultConfigPath, "path to the document YAML config")
	envFile := flag.String("env", ".env", "path to the .env file with platform credentials")
	serve := flag.Bool("serve", false, "serve the HTTP API instead of running one batch")
	flag.Parse()

	ctx := context.Background()

	app := bootstrap.NewApp()
	defer app.Close()
	if err := app.Initialize(ctx, bootstrap.Options{ConfigPath: *configPath, EnvFiles: []string{*envFile}}); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application: %v", err)
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		return 1
	}

	if *serve {
		if err := app.Run(); err != nil {
			logger.ErrorLog(ctx, "Application failed: %v", err)
			return 1
		}
		return 0
	}

	result, err := app.RunBatch(ctx, selector.NewSurveyPrompter())
	if err != nil {
		if errors.Is(err, selector.ErrAborted) {
			fmt.Fprintln(os.Stderr, "selection aborted")
			return 1
		}
		logger.ErrorLog(ctx, "Generation failed: %v", err)
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		return 1
	}

	fmt.Println()
	fmt.Printf("Generated %d documents:\n", len(result.Documents))
	for _, p := range result.Paths() {
		fmt.Printf("  %s\n", p)
	}
	if result.Failed() {
		fmt.Fprintf(os.Stderr, "%d objects failed:\n", len(result.Failures))
		for _, f := range result.Failures {
			fmt.Fprintf(os.Stderr, "  %v\n", f)
		}
		return 1
	}
	return 0
}
