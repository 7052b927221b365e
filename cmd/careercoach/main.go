// Package main provides the entry point for the career coach backend.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careercoach",
	Short: "Career Coach backend server",
	Long:  "Career Coach runs the AI proxy and job lookup backend for the coaching widget, keeping the provider API key server-side.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
