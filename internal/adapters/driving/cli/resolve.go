package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
)

var (
	resolveTheory string
	resolveKind   string
	resolveJSON   bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [term-id]",
	Short: "Resolve a symbolic reference",
	Long: `Resolves a term identifier to a navigation target.

Stale identifiers are tolerated: resolution falls back through legacy
naming rewrites, document/section splitting and fuzzy matching before
giving up. An unresolved reference reports candidate ids instead of
failing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveTheory, "theory", "t", "", "theory context (default from config)")
	resolveCmd.Flags().StringVarP(&resolveKind, "kind", "k", string(domain.RefDefinition),
		"reference kind: definition, theorem or theory")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output the resolution as JSON")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if resolverService == nil {
		return errors.New("resolver service not configured")
	}

	kind, err := parseKind(resolveKind)
	if err != nil {
		return err
	}

	theory := resolveTheory
	if theory == "" {
		theory = defaultTheory()
	}
	if theory == "" {
		return errors.New("no theory given and no theory.default configured")
	}

	ref := domain.Reference{Kind: kind, TheoryContext: theory}
	if len(args) > 0 {
		ref.TermID = args[0]
	}
	if ref.TermID == "" && kind != domain.RefTheory {
		return errors.New("a term id is required for definition and theorem references")
	}

	res, err := resolverService.Resolve(context.Background(), ref)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", ref.TermID, err)
	}

	if resolveJSON {
		return outputResolutionJSON(cmd, res)
	}
	return outputResolutionText(cmd, ref, res)
}

func parseKind(s string) (domain.ReferenceKind, error) {
	switch domain.ReferenceKind(s) {
	case domain.RefDefinition, domain.RefTheorem, domain.RefTheory:
		return domain.ReferenceKind(s), nil
	default:
		return "", fmt.Errorf("unknown reference kind %q", s)
	}
}

func outputResolutionJSON(cmd *cobra.Command, res domain.Resolution) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resolution: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResolutionText(cmd *cobra.Command, ref domain.Reference, res domain.Resolution) error {
	if !res.Resolved() {
		cmd.Printf("Unresolved: %s\n", ref.TermID)
		if len(res.Suggestions) > 0 {
			cmd.Println("Did you mean:")
			for _, id := range res.Suggestions {
				cmd.Printf("  %s\n", id)
			}
		}
		return nil
	}

	cmd.Printf("Resolved (%s):\n", res.Tier)
	cmd.Printf("  File:     %s\n", res.Target.File)
	if res.Target.DocumentID != "" {
		cmd.Printf("  Document: %s\n", res.Target.DocumentID)
	}
	if res.Target.SectionID != "" {
		cmd.Printf("  Section:  %s\n", res.Target.SectionID)
	}
	return nil
}
