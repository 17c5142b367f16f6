package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
)

var graphJSON bool

var graphCmd = &cobra.Command{
	Use:   "graph [theory]",
	Short: "Build a theory's definition dependency graph",
	Long: `Builds the dependency graph over a loaded theory's definitions.

Definitions are listed in an order where dependencies precede their
dependents; cycles are tolerated. Orphan definitions are attached with
artificial edges so the graph stays connected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().BoolVar(&graphJSON, "json", false, "output the graph as JSON")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	if graphService == nil {
		return errors.New("graph service not configured")
	}

	theory := defaultTheory()
	if len(args) > 0 {
		theory = args[0]
	}
	if theory == "" {
		return errors.New("no theory given and no theory.default configured")
	}

	graph, err := graphService.BuildForTheory(context.Background(), theory)
	if err != nil {
		return fmt.Errorf("building graph for %s: %w", theory, err)
	}

	if graphJSON {
		return outputGraphJSON(cmd, graph)
	}
	return outputGraphText(cmd, theory, graph)
}

func outputGraphJSON(cmd *cobra.Command, graph *domain.DependencyGraph) error {
	data, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputGraphText(cmd *cobra.Command, theory string, graph *domain.DependencyGraph) error {
	if len(graph.Ordered) == 0 {
		cmd.Printf("No definitions loaded for %s.\n", theory)
		return nil
	}

	cmd.Printf("Definitions (%d, dependencies first):\n", len(graph.Ordered))
	for _, def := range graph.Ordered {
		cmd.Printf("  %s (%s)\n", def.Name, def.Kind)
	}

	cmd.Printf("\nEdges (%d):\n", len(graph.Edges))
	for _, edge := range graph.Edges {
		marker := ""
		if edge.Artificial {
			marker = " (artificial)"
		}
		cmd.Printf("  %s -> %s%s\n", edge.Source, edge.Target, marker)
	}
	return nil
}
