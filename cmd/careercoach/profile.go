package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/brillia/career-coach/internal/config"
	"github.com/brillia/career-coach/internal/profile"
	"github.com/brillia/career-coach/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the stored user profile",
	Long:  `Print the persisted profile and credit balance from the configured store backend (DATA_DIR and STORE_BACKEND).`,
	RunE:  runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func runProfile(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	backend, err := openBackend(cfg)
	if err != nil {
		return err
	}

	profiles, err := profile.Open(backend)
	if err != nil {
		_ = backend.Close()
		return fmt.Errorf("failed to open profile store: %w", err)
	}
	defer func() { _ = profiles.Close() }()

	p := profiles.Snapshot()
	fmt.Printf("Name:          %s\n", orUnset(p.Name))
	fmt.Printf("Job title:     %s\n", orUnset(p.JobTitle))
	if p.YearsOfExperience != nil {
		fmt.Printf("Experience:    %d years\n", *p.YearsOfExperience)
	} else {
		fmt.Printf("Experience:    (unset)\n")
	}
	fmt.Printf("Location:      %s\n", orUnset(p.Location))
	fmt.Printf("Resume:        %s\n", orUnset(p.ResumeFileName))
	fmt.Printf("Skills:        %d\n", len(p.Skills))
	fmt.Printf("Cached:        %d features\n", len(p.Caches))
	fmt.Printf("Credits:       %d (last reset %s)\n", p.Credits, p.LastCreditReset)
	return nil
}

func openBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.StoreBackend {
	case "sqlite":
		return store.NewSQLiteBackend(filepath.Join(cfg.DataDir, "careercoach.db"))
	default:
		return store.NewFileBackend(cfg.DataDir)
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
