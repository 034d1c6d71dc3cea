package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	gameListLimit  int
	gameListOffset int
)

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Inspect and manage games",
}

var gameListCmd = &cobra.Command{
	Use:   "list",
	Short: "List games",
	Args:  cobra.NoArgs,
	RunE:  runGameList,
}

var gameShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one game",
	Args:  cobra.ExactArgs(1),
	RunE:  runGameShow,
}

var gameCompletionCmd = &cobra.Command{
	Use:   "completion [id] [percent]",
	Short: "Set how far through a game you are",
	Args:  cobra.ExactArgs(2),
	RunE:  runGameCompletion,
}

var gameDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a game, keeping its guides",
	Args:  cobra.ExactArgs(1),
	RunE:  runGameDelete,
}

func init() {
	gameListCmd.Flags().IntVarP(&gameListLimit, "limit", "n", 20, "maximum number of games")
	gameListCmd.Flags().IntVar(&gameListOffset, "offset", 0, "number of games to skip")

	gameCmd.AddCommand(gameListCmd, gameShowCmd, gameCompletionCmd, gameDeleteCmd)
	rootCmd.AddCommand(gameCmd)
}

func runGameList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	games, err := libraryService.ListGames(context.Background(), gameListLimit, gameListOffset)
	if err != nil {
		return fmt.Errorf("listing games: %w", err)
	}
	if len(games) == 0 {
		cmd.Println("No games.")
		return nil
	}

	for _, g := range games {
		cmd.Printf("%-36s  %-12s  %3d%%  %s\n", g.ID, g.Status, g.Completion, g.Title)
	}
	return nil
}

func runGameShow(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	g, err := libraryService.GetGame(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("getting game: %w", err)
	}

	cmd.Printf("Title:      %s\n", g.Title)
	if g.Platform != "" {
		cmd.Printf("Platform:   %s\n", g.Platform)
	}
	cmd.Printf("Status:     %s\n", g.Status)
	cmd.Printf("Completion: %d%%\n", g.Completion)
	if g.ExternalID != nil {
		cmd.Printf("Archive ID: %s\n", *g.ExternalID)
	}
	return nil
}

func runGameCompletion(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	pct, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid percentage %q", args[1])
	}
	if err := libraryService.SetGameCompletion(context.Background(), args[0], pct); err != nil {
		return fmt.Errorf("setting completion: %w", err)
	}

	g, err := libraryService.GetGame(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("getting game: %w", err)
	}
	cmd.Printf("%s: %d%% (%s)\n", g.Title, g.Completion, g.Status)
	return nil
}

func runGameDelete(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.DeleteGame(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting game: %w", err)
	}
	cmd.Printf("Deleted game %s\n", args[0])
	return nil
}
