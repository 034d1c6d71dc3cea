package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var bookmarkLabel string

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage guide bookmarks",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add [guide-id] [position]",
	Short: "Bookmark a position in a guide",
	Args:  cobra.ExactArgs(2),
	RunE:  runBookmarkAdd,
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list [guide-id]",
	Short: "List a guide's bookmarks",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkList,
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:   "rm [bookmark-id]",
	Short: "Remove a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkRemove,
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage guide notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add [guide-id] [position] [text]",
	Short: "Attach a note to a position in a guide",
	Args:  cobra.ExactArgs(3),
	RunE:  runNoteAdd,
}

var noteListCmd = &cobra.Command{
	Use:   "list [guide-id]",
	Short: "List a guide's notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteList,
}

var noteRemoveCmd = &cobra.Command{
	Use:   "rm [note-id]",
	Short: "Remove a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteRemove,
}

func init() {
	bookmarkAddCmd.Flags().StringVar(&bookmarkLabel, "label", "", "short label for the bookmark")

	bookmarkCmd.AddCommand(bookmarkAddCmd, bookmarkListCmd, bookmarkRemoveCmd)
	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteRemoveCmd)
	rootCmd.AddCommand(bookmarkCmd, noteCmd)
}

func runBookmarkAdd(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	position, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid position %q", args[1])
	}
	b, err := libraryService.AddBookmark(context.Background(), args[0], position, bookmarkLabel)
	if err != nil {
		return fmt.Errorf("adding bookmark: %w", err)
	}
	cmd.Printf("Bookmark %s at position %d\n", b.ID, b.Position)
	return nil
}

func runBookmarkList(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	bookmarks, err := libraryService.ListBookmarks(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("listing bookmarks: %w", err)
	}
	if len(bookmarks) == 0 {
		cmd.Println("No bookmarks.")
		return nil
	}
	for _, b := range bookmarks {
		cmd.Printf("%-36s  %8d  %s\n", b.ID, b.Position, b.Label)
	}
	return nil
}

func runBookmarkRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.RemoveBookmark(context.Background(), args[0]); err != nil {
		return fmt.Errorf("removing bookmark: %w", err)
	}
	cmd.Printf("Removed bookmark %s\n", args[0])
	return nil
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	position, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid position %q", args[1])
	}
	n, err := libraryService.AddNote(context.Background(), args[0], position, args[2])
	if err != nil {
		return fmt.Errorf("adding note: %w", err)
	}
	cmd.Printf("Note %s at position %d\n", n.ID, n.Position)
	return nil
}

func runNoteList(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	notes, err := libraryService.ListNotes(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("listing notes: %w", err)
	}
	if len(notes) == 0 {
		cmd.Println("No notes.")
		return nil
	}
	for _, n := range notes {
		cmd.Printf("%-36s  %8d  %s\n", n.ID, n.Position, n.Content)
	}
	return nil
}

func runNoteRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.RemoveNote(context.Background(), args[0]); err != nil {
		return fmt.Errorf("removing note: %w", err)
	}
	cmd.Printf("Removed note %s\n", args[0])
	return nil
}
