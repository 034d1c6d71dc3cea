package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gfarchive/guidevault/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the guide library",
	Long: `Searches titles and tags separately from guide text. Title and tag
matches come first; guides that only mention the query in their body are
listed below them.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results per section")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	results, err := searchService.Search(context.Background(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if results.Empty() {
		cmd.Println("No results.")
		return nil
	}

	printHits(cmd, "Title and tag matches", results.MetaMatches)
	printHits(cmd, "Content matches", results.ContentMatches)
	return nil
}

func printHits(cmd *cobra.Command, heading string, hits []domain.SearchHit) {
	if len(hits) == 0 {
		return
	}
	cmd.Printf("%s:\n", heading)
	for _, hit := range hits {
		cmd.Printf("  %-36s  %s\n", hit.GuideID, hit.Title)
		if hit.Snippet != "" {
			cmd.Printf("      %s\n", hit.Snippet)
		}
	}
	cmd.Println()
}
