package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCommand wires the serve and ask subcommands around logger.
func NewRootCommand(logger *zap.SugaredLogger) *cobra.Command {
	root := &cobra.Command{
		Use:   "cyphergen",
		Short: "Answer questions about a gene and disease graph with generated Cypher",
		Long: `cyphergen turns a natural-language question into a Cypher query using a
language model, runs the query against Neo4j and returns the rows.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand(logger))
	root.AddCommand(newAskCommand(logger))

	return root
}

func Execute(logger *zap.SugaredLogger) error {
	return NewRootCommand(logger).Execute()
}
