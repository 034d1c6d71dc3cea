package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show initialization status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if bootstrapService == nil {
		return errors.New("bootstrap service not configured")
	}

	s := bootstrapService.Status()
	cmd.Printf("Stage:    %s\n", s.Stage)
	cmd.Printf("Progress: %.1f%%\n", s.Progress)
	if s.Message != "" {
		cmd.Printf("Activity: %s\n", s.Message)
	}
	if s.GuideCount > 0 || s.GameCount > 0 {
		cmd.Printf("Imported: %d guides, %d games\n", s.GuideCount, s.GameCount)
	}
	if s.Err != "" {
		cmd.Printf("Error:    %s\n", s.Err)
	}
	return nil
}
