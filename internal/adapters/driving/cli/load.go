package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
	"github.com/mathtrail/mathtrail-cli/internal/logger"
)

var loadWatch bool

var loadCmd = &cobra.Command{
	Use:   "load [theory]",
	Short: "Load a theory's content into the index",
	Long: `Reads a theory's content files and replaces its indexed snapshot.

Per-file failures are reported but do not abort the load; the load
fails only when not a single file could be read. With --watch the
command keeps running and reloads the theory whenever its content
files change.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVarP(&loadWatch, "watch", "w", false, "reload on content file changes")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	if theoryService == nil {
		return errors.New("theory service not configured")
	}

	theory := defaultTheory()
	if len(args) > 0 {
		theory = args[0]
	}
	if theory == "" {
		return errors.New("no theory given and no theory.default configured")
	}

	ctx := context.Background()
	if err := loadOnce(ctx, cmd, theory); err != nil {
		return err
	}

	if !loadWatch {
		return nil
	}
	if contentWatcher == nil {
		return errors.New("content watcher not configured")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Println("Watching for changes. Press Ctrl-C to stop.")
	token := domain.TheoryToken(theory)
	return contentWatcher.Watch(ctx, func(changed string) {
		if changed != token {
			return
		}
		if err := loadOnce(ctx, cmd, theory); err != nil {
			logger.Warn("reload: %v", err)
		}
	})
}

func loadOnce(ctx context.Context, cmd *cobra.Command, theory string) error {
	snapshot, err := theoryService.Load(ctx, theory)
	if err != nil {
		return fmt.Errorf("loading %s: %w", theory, err)
	}

	cmd.Printf("Loaded %s: %d files, %d definitions\n",
		snapshot.Theory, len(snapshot.Files), len(snapshot.Definitions))
	for _, status := range snapshot.Statuses {
		if status.Err != nil {
			cmd.Printf("  warning: %s: %v\n", status.File, status.Err)
		}
	}
	return nil
}
