package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/pagehound/pagehound-cli/internal/adapters/driving/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
