package main

import (
	"context"
	"log"
	"os"

	"zukus-desktop/internal/app"
	"zukus-desktop/internal/config"
)

// Version is set at build time via ldflags.
var Version = "0.1.0-dev"

// main is shared by desktop and mobile builds; fyne package wires the
// platform entry point to it.
func main() {
	cfg, path, err := config.Load("")
	if err != nil {
		log.Fatalf("Configuration failed (%s): %v", path, err)
	}

	os.Exit(app.Start(context.Background(), app.Options{
		Config:  cfg,
		Version: Version,
	}))
}
