// Package main provides the entry point for the interview platform backend.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interviewd",
	Short: "AI interview platform backend",
	Long:  "interviewd runs the interview platform backend: resume extraction and analysis, the conversational interview pipeline, and the realtime voice relay.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
