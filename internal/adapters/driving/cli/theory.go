package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var theoryCmd = &cobra.Command{
	Use:   "theory",
	Short: "Inspect loaded theories",
	RunE:  runTheoryList,
}

var theoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded theories",
	RunE:  runTheoryList,
}

func init() {
	theoryCmd.AddCommand(theoryListCmd)
	rootCmd.AddCommand(theoryCmd)
}

func runTheoryList(cmd *cobra.Command, _ []string) error {
	if theoryService == nil {
		return errors.New("theory service not configured")
	}

	theories, err := theoryService.Theories(context.Background())
	if err != nil {
		return fmt.Errorf("listing theories: %w", err)
	}

	if len(theories) == 0 {
		cmd.Println("No theories loaded. Run 'mathtrail load <theory>' first.")
		return nil
	}

	cmd.Println("Loaded theories:")
	for _, theory := range theories {
		cmd.Printf("  %s\n", theory)
	}
	return nil
}
