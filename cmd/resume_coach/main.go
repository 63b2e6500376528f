// Package main provides the entry point for the resume coaching assistant.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_coach",
	Short: "Dialogue-driven resume coaching assistant",
	Long: "Resume Coach walks a candidate through improving their resume against a job " +
		"description: it scores each section, asks targeted questions, and rewrites section " +
		"content on request. Run it as an interactive chat or as a REST API server.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
