package cmd

import (
	"errors"
	"fmt"

	"github.com/kozaktomas/facegate/internal/config"
	"github.com/kozaktomas/facegate/internal/registry"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <photo>",
	Short: "Authenticate a student from a photo",
	Long: `Authenticate a student by matching a photo of their face against all
registered students. A login attempt against an empty registry is an error,
distinct from a face that simply does not match anyone.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().Float64("threshold", 0, "Match threshold override (0 = use configured value)")
}

func runLogin(cmd *cobra.Command, args []string) error {
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

	result, err := registry.Login(known, vec, resolveThreshold(cmd, cfg))
	if err != nil {
		if errors.Is(err, registry.ErrEmptyRegistry) {
			return errors.New("no students registered yet, register someone first")
		}
		return err
	}

	if result.Status == registry.StatusRejected {
		fmt.Println("Face not recognized")
		return nil
	}

	rec := result.Entry.Record
	fmt.Printf("Welcome back, %s! (%s)\n", rec.Name, rec.StudentID)
	return nil
}
