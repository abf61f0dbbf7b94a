package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"sisexpo/internal/cli"
)

func main() {
	// .env is optional; SIS_API_URL can come from it
	_ = godotenv.Load()

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
