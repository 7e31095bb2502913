package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kozaktomas/facegate/internal/config"
	"github.com/spf13/cobra"
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "List registered students",
	Long: `List all registered students in registration order. The search filter
matches names diacritic-insensitively, so "novak" finds "Novák".`,
	RunE: runStudents,
}

func init() {
	rootCmd.AddCommand(studentsCmd)

	studentsCmd.Flags().String("search", "", "Filter by name or student ID")
	studentsCmd.Flags().Bool("json", false, "Output as JSON")
}

func runStudents(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	known, err := fetchKnownSet(ctx, store, cfg.EmbeddingDim())
	if err != nil {
		return err
	}

	entries := known.Search(mustGetString(cmd, "search"))

	if mustGetBool(cmd, "json") {
		records := make([]map[string]string, 0, len(entries))
		for _, e := range entries {
			records = append(records, map[string]string{
				"timestamp":  e.Record.Timestamp,
				"student_id": e.Record.StudentID,
				"name":       e.Record.Name,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(entries) == 0 {
		fmt.Println("No students found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "REGISTERED\tSTUDENT ID\tNAME")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Record.Timestamp, e.Record.StudentID, e.Record.Name)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	fmt.Printf("\n%d student(s)\n", len(entries))
	return nil
}
