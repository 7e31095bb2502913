package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kozaktomas/facegate/internal/config"
	"github.com/kozaktomas/facegate/internal/embedding"
	"github.com/kozaktomas/facegate/internal/registry"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <directory>",
	Short: "Bulk-register students from a directory of photos",
	Long: `Bulk-register students from a directory of photos.

Each photo file must be named <name>_<student-id>.<ext>, with dashes standing
in for spaces in the name (e.g. Jan-Novak_ab123.jpg). Photos whose face is
already registered are skipped, the same way single registration skips them.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Bool("dry-run", false, "Parse and match photos without writing anything")
	importCmd.Flags().Float64("threshold", 0, "Match threshold override (0 = use configured value)")
}

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// parseImportFilename splits <name>_<student-id>.<ext> into identity fields.
// The last underscore separates the student ID; remaining underscores and
// dashes in the name part become spaces.
func parseImportFilename(filename string) (name, studentID string, err error) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	idx := strings.LastIndex(base, "_")
	if idx <= 0 || idx == len(base)-1 {
		return "", "", fmt.Errorf("filename %q does not match <name>_<student-id>.<ext>", filename)
	}

	name = strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(base[:idx]))
	studentID = strings.TrimSpace(base[idx+1:])
	if name == "" || studentID == "" {
		return "", "", fmt.Errorf("filename %q does not match <name>_<student-id>.<ext>", filename)
	}
	return name, studentID, nil
}

// listImportPhotos returns the photo files in dir, sorted by name.
func listImportPhotos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var photos []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if photoExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			photos = append(photos, entry.Name())
		}
	}
	return photos, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()
	dir := args[0]
	dryRun := mustGetBool(cmd, "dry-run")
	threshold := resolveThreshold(cmd, cfg)
	dim := cfg.EmbeddingDim()

	photos, err := listImportPhotos(dir)
	if err != nil {
		return err
	}
	if len(photos) == 0 {
		fmt.Println("No photos found")
		return nil
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client := embedding.NewClient(cfg.Embedding.URL, cfg.Embedding.Model, dim)
	cache := registry.NewCache(store, dim)

	bar := progressbar.NewOptions(len(photos),
		progressbar.OptionSetDescription("Registering students"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("photos"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionFullWidth(),
	)

	var registered, skipped, failed int
	for _, filename := range photos {
		outcome, err := importOne(ctx, store, cache, client, dir, filename, threshold, dryRun)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "\nWarning: %s: %v\n", filename, err)
		} else if outcome == registry.StatusRegistered {
			registered++
		} else {
			skipped++
		}
		_ = bar.Add(1)
	}
	fmt.Println()

	if dryRun {
		fmt.Printf("Dry run: %d would be registered, %d skipped, %d failed\n", registered, skipped, failed)
		return nil
	}

	fmt.Printf("Imported %d student(s), %d skipped, %d failed\n", registered, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d photo(s) failed to import", failed)
	}
	return nil
}

// importOne registers a single photo file. Photos are processed sequentially
// so every attempt sees the students registered before it.
func importOne(
	ctx context.Context, store registry.Store, cache *registry.Cache, client *embedding.Client,
	dir, filename string, threshold float64, dryRun bool,
) (registry.Status, error) {
	name, studentID, err := parseImportFilename(filename)
	if err != nil {
		return "", err
	}

	photo, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}

	vec, err := client.ExtractFace(ctx, photo)
	if err != nil {
		return "", err
	}

	known, err := cache.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	if dryRun {
		if _, ok := known.Match(vec, threshold); ok {
			return registry.StatusSkipped, nil
		}
		return registry.StatusRegistered, nil
	}

	result, err := registry.Register(ctx, store, known, registry.RegisterInput{
		Name:      name,
		StudentID: studentID,
		Embedding: vec,
	}, threshold)
	if err != nil {
		return "", err
	}

	if result.Status == registry.StatusRegistered {
		cache.Invalidate()
	}
	return result.Status, nil
}
