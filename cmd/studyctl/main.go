package main

import (
	"context"
	"fmt"
	"os"

	"github.com/studyshelf/backend/internal/cli"
	"github.com/studyshelf/backend/internal/config"
	"github.com/studyshelf/backend/internal/logger"
)

func main() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "error"
	}
	if err := logger.Init(level); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	root := cli.NewRootCmd(config.LoadClient(), logger.Logger, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		logger.Sync()
		os.Exit(1)
	}
}
