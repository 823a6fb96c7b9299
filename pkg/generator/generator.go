// Package generator answers a question by asking the model for a Cypher
// query and running it.
//
// The pipeline is linear: build the prompt, call the model, extract the
// query, execute it. The first failing stage ends the request with an *Error
// of the matching Kind; nothing is retried.
package generator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/genegraph/cyphergen/pkg/cypher"
	"github.com/genegraph/cyphergen/pkg/graph"
	"github.com/genegraph/cyphergen/pkg/metrics"
	"github.com/genegraph/cyphergen/pkg/models"
	"github.com/genegraph/cyphergen/pkg/prompt"
)

type Translator interface {
	Generate(ctx context.Context, p prompt.Prompt) (string, error)
}

type Executor interface {
	Execute(ctx context.Context, query string) (*graph.Results, error)
}

type Generator struct {
	builder    *prompt.Builder
	translator Translator
	executor   Executor
	logger     *zap.SugaredLogger
}

func New(builder *prompt.Builder, translator Translator, executor Executor, logger *zap.SugaredLogger) *Generator {
	return &Generator{
		builder:    builder,
		translator: translator,
		executor:   executor,
		logger:     logger,
	}
}

func (g *Generator) Ask(ctx context.Context, question string) (*models.QueryResponse, error) {
	p := g.builder.Build(question)

	g.logger.Infof("Sending prompt to the LLM")
	start := time.Now()
	text, err := g.translator.Generate(ctx, p)
	metrics.ObserveStage(metrics.StageLLM, time.Since(start))
	if err != nil {
		return nil, g.fail(&Error{Kind: KindLLM, Err: err})
	}
	g.logger.Debugf("LLM response: %s", text)

	query, err := cypher.Extract(text)
	if err != nil {
		return nil, g.fail(&Error{Kind: KindExtraction, Err: err})
	}
	g.logger.Infof("Extracted Cypher query: %s", query)

	start = time.Now()
	results, err := g.executor.Execute(ctx, query)
	metrics.ObserveStage(metrics.StageDatabase, time.Since(start))
	if err != nil {
		return nil, g.fail(&Error{Kind: KindDatabase, Query: query, Err: err})
	}
	g.logger.Infof("Query returned %d result(s)", len(results.Records))

	metrics.ObserveQuestion(outcomeSuccess)

	return &models.QueryResponse{
		Query:   query,
		Columns: results.Columns,
		Results: results.Records,
	}, nil
}

func (g *Generator) fail(e *Error) error {
	g.logger.Errorf("Unable to answer question: %s", e)
	metrics.ObserveQuestion(string(e.Kind))
	return e
}
