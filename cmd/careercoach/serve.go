package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/brillia/career-coach/internal/config"
	"github.com/brillia/career-coach/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the proxy server",
	Long:  `Start the HTTP server exposing the completion proxy, job listing lookup and health endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.APIKey == "" {
		log.Warn().Msg("API_KEY is not set; generation requests will fail until it is configured")
	}

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		JobsAPIURL: cfg.JobsAPIURL,
		Logger:     log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
