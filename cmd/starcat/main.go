package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mthorley/starcat/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override starcat config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "starcat: %v\n", err)
		return 1
	}
	return 0
}
