package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/kozaktomas/facegate/internal/config"
	"github.com/kozaktomas/facegate/internal/embedding"
	"github.com/kozaktomas/facegate/internal/registry"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <photo>",
	Short: "Register a student from a photo",
	Long: `Register a student from a photo of their face.

The photo must contain exactly one face. If the face already belongs to a
registered student, nothing is written and the existing identity is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().String("name", "", "Student name (required)")
	registerCmd.Flags().String("student-id", "", "Student ID (required)")
	registerCmd.Flags().Float64("threshold", 0, "Match threshold override (0 = use configured value)")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("student-id")
}

// resolveThreshold picks the --threshold flag value over the configured one.
func resolveThreshold(cmd *cobra.Command, cfg *config.Config) float64 {
	if t := mustGetFloat64(cmd, "threshold"); t > 0 && t <= 1 {
		return t
	}
	return cfg.Registry.Threshold
}

// extractFromFile reads a photo file and extracts its face embedding.
func extractFromFile(ctx context.Context, cfg *config.Config, path string) ([]float32, error) {
	photo, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}

	client := embedding.NewClient(cfg.Embedding.URL, cfg.Embedding.Model, cfg.EmbeddingDim())
	return client.ExtractFace(ctx, photo)
}

// fetchKnownSet loads all records and builds the known set, printing a warning
// for every record that had to be skipped.
func fetchKnownSet(ctx context.Context, store registry.Store, dim int) (*registry.KnownSet, error) {
	records, err := store.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	known, warnings := registry.BuildKnownSet(records, dim)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w.Error())
	}
	return known, nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	vec, err := extractFromFile(ctx, cfg, args[0])
	if err != nil {
		return err
	}

	known, err := fetchKnownSet(ctx, store, cfg.EmbeddingDim())
	if err != nil {
		return err
	}

	result, err := registry.Register(ctx, store, known, registry.RegisterInput{
		Name:      mustGetString(cmd, "name"),
		StudentID: mustGetString(cmd, "student-id"),
		Embedding: vec,
	}, resolveThreshold(cmd, cfg))
	if err != nil {
		return err
	}

	if result.Status == registry.StatusSkipped {
		fmt.Printf("Face already registered as %s, skipping\n", result.MatchedName)
		return nil
	}

	fmt.Printf("Registered %s (%s)\n", result.Record.Name, result.Record.StudentID)
	return nil
}
