package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gfarchive/guidevault/internal/core/ports/driven"
)

var (
	guideListGame   string
	guideListLimit  int
	guideListOffset int
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Inspect and manage guides",
}

var guideListCmd = &cobra.Command{
	Use:   "list",
	Short: "List guides",
	Args:  cobra.NoArgs,
	RunE:  runGuideList,
}

var guideShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one guide",
	Args:  cobra.ExactArgs(1),
	RunE:  runGuideShow,
}

var guideDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a guide and its bookmarks and notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runGuideDelete,
}

var guideReadCmd = &cobra.Command{
	Use:   "read-position [id] [position]",
	Short: "Record how far into a guide you have read",
	Args:  cobra.ExactArgs(2),
	RunE:  runGuideReadPosition,
}

func init() {
	guideListCmd.Flags().StringVar(&guideListGame, "game", "", "only guides for this game ID")
	guideListCmd.Flags().IntVarP(&guideListLimit, "limit", "n", 20, "maximum number of guides")
	guideListCmd.Flags().IntVar(&guideListOffset, "offset", 0, "number of guides to skip")

	guideCmd.AddCommand(guideListCmd, guideShowCmd, guideDeleteCmd, guideReadCmd)
	rootCmd.AddCommand(guideCmd)
}

func runGuideList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	guides, err := libraryService.ListGuides(context.Background(), driven.GuideListOptions{
		GameID: guideListGame,
		Limit:  guideListLimit,
		Offset: guideListOffset,
	})
	if err != nil {
		return fmt.Errorf("listing guides: %w", err)
	}
	if len(guides) == 0 {
		cmd.Println("No guides.")
		return nil
	}

	for _, g := range guides {
		tags := ""
		if t := g.Tags(); len(t) > 0 {
			tags = "  [" + strings.Join(t, ", ") + "]"
		}
		cmd.Printf("%-36s  %-8s  %s%s\n", g.ID, g.Format, g.Title, tags)
	}
	return nil
}

func runGuideShow(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	g, err := libraryService.GetGuide(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("getting guide: %w", err)
	}

	cmd.Printf("Title:  %s\n", g.Title)
	cmd.Printf("Format: %s\n", g.Format)
	if g.GameID != nil {
		cmd.Printf("Game:   %s\n", *g.GameID)
	}
	for _, key := range []string{"author", "version", "platform"} {
		if v, ok := g.Metadata[key]; ok {
			label := strings.ToUpper(key[:1]) + key[1:]
			cmd.Printf("%-7s %v\n", label+":", v)
		}
	}
	if tags := g.Tags(); len(tags) > 0 {
		cmd.Printf("Tags:   %s\n", strings.Join(tags, ", "))
	}
	if g.LastReadPosition > 0 {
		cmd.Printf("Read:   position %d\n", g.LastReadPosition)
	}
	cmd.Println()
	cmd.Println(g.Content)
	return nil
}

func runGuideDelete(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.DeleteGuide(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting guide: %w", err)
	}
	cmd.Printf("Deleted guide %s\n", args[0])
	return nil
}

func runGuideReadPosition(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	position, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid position %q", args[1])
	}
	if err := libraryService.UpdateLastRead(context.Background(), args[0], position); err != nil {
		return fmt.Errorf("updating read position: %w", err)
	}
	cmd.Printf("Read position for %s set to %d\n", args[0], position)
	return nil
}
