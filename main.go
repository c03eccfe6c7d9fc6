package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/taazafoods/taaza-cli/cmd"
)

func main() {
	// A local .env is optional; anything it sets is picked up by the
	// TAAZA_* config overlay.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
