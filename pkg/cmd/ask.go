package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cyphergen "github.com/genegraph/cyphergen/pkg"
	"github.com/genegraph/cyphergen/pkg/client"
	"github.com/genegraph/cyphergen/pkg/generator"
)

func newAskCommand(logger *zap.SugaredLogger) *cobra.Command {
	var endpoint string

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a single question and print the query and its results",
		Long: `Answer a single question and print the generated Cypher query and its results.

Without arguments the question is read from standard input. With --endpoint the
question is sent to a running cyphergen server instead of being answered locally.

Examples:
  cyphergen ask "Find genes related to Lung Cancer"
  cyphergen ask --endpoint http://localhost:8080 "What diseases are linked to TP53?"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			question, err := readQuestion(cmd.InOrStdin(), cmd.OutOrStdout(), args)
			if err != nil {
				return err
			}

			if endpoint != "" {
				return ask(cmd.Context(), cmd.OutOrStdout(), client.New(endpoint), question)
			}

			p, err := newPipeline(logger)
			if err != nil {
				return err
			}
			defer func() { _ = p.Close(context.WithoutCancel(cmd.Context())) }()

			return ask(cmd.Context(), cmd.OutOrStdout(), p.Generator, question)
		},
	}

	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "Base URL of a running cyphergen server")

	return cmd
}

// readQuestion joins args into the question, or prompts for one on r.
func readQuestion(r io.Reader, w io.Writer, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	fmt.Fprint(w, "Enter your question: ")
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("unable to read question: %w", err)
		}
		return "", errors.New("no question given")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func ask(ctx context.Context, w io.Writer, asker cyphergen.Asker, question string) error {
	resp, err := asker.Ask(ctx, question)
	if err != nil {
		if query := failedQuery(err); query != "" {
			fmt.Fprintf(w, "Generated Cypher Query:\n%s\n\n", query)
		}
		return err
	}

	fmt.Fprintf(w, "Generated Cypher Query:\n%s\n\n", resp.Query)

	results, err := json.MarshalIndent(resp.Results, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal results: %w", err)
	}
	fmt.Fprintf(w, "Query Results:\n%s\n", results)

	return nil
}

// failedQuery returns the query that was generated before a database failure.
func failedQuery(err error) string {
	var ge *generator.Error
	if errors.As(err, &ge) {
		return ge.Query
	}
	var ce *client.Error
	if errors.As(err, &ce) {
		return ce.Query
	}
	return ""
}
