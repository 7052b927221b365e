package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/brillia/career-coach/internal/config"
	"github.com/brillia/career-coach/internal/llm"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the API key status of a running proxy",
	Long:  `Send the API key diagnostic through the generate endpoint of a running proxy and print its answer. The proxy reports key presence and length only, never the key itself.`,
	RunE:  runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	client := llm.NewProxyClient(cfg.ProxyURL, cfg.Model)
	defer func() { _ = client.Close() }()

	status, err := client.GenerateContent(ctx, llm.Request{Prompt: llm.PingAPIKeyStatus})
	if err != nil {
		return fmt.Errorf("proxy at %s is unreachable or misconfigured: %w", cfg.ProxyURL, err)
	}

	fmt.Println(status)
	return nil
}
