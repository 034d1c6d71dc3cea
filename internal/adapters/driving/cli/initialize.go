package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/gfarchive/guidevault/internal/core/domain"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Download and import the guide archive",
	Long: `Runs the one-time data pipeline: downloads the guide archive,
unpacks it, and imports every guide into the local library. Safe to run
again; a populated library completes immediately.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	if bootstrapService == nil {
		return errors.New("bootstrap service not configured")
	}

	var lastStage domain.ImportStage
	unsubscribe := bootstrapService.Subscribe(func(s domain.ImportStatus) {
		if s.Stage != lastStage {
			lastStage = s.Stage
			cmd.Printf("==> %s\n", s.Stage)
		}
		if s.Message != "" {
			cmd.Printf("    %5.1f%%  %s\n", s.Progress, s.Message)
		}
	})
	defer unsubscribe()

	if err := bootstrapService.Initialize(context.Background()); err != nil {
		return err
	}

	status := bootstrapService.Status()
	cmd.Printf("Library ready: %d guides, %d games.\n", status.GuideCount, status.GameCount)
	return nil
}
