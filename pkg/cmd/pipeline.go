package cmd

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	graphenv "github.com/genegraph/cyphergen/pkg/env/graph"
	llmenv "github.com/genegraph/cyphergen/pkg/env/llm"
	"github.com/genegraph/cyphergen/pkg/generator"
	"github.com/genegraph/cyphergen/pkg/graph"
	"github.com/genegraph/cyphergen/pkg/llm"
	"github.com/genegraph/cyphergen/pkg/prompt"
)

// pipeline is everything needed to answer questions locally.
type pipeline struct {
	GraphEnv  *graphenv.Env
	LLMEnv    *llmenv.Env
	Driver    neo4j.DriverWithContext
	Generator *generator.Generator
}

func (p *pipeline) Close(ctx context.Context) error {
	return p.Driver.Close(ctx)
}

func newPipeline(logger *zap.SugaredLogger) (*pipeline, error) {
	ge := graphenv.NewGraphEnv()
	if err := ge.Populate(); err != nil {
		return nil, fmt.Errorf("unable to configure graph database: %w", err)
	}
	logger.Infof("Using graph database: %s (database: %q, routing: %t, encrypted: %t)",
		ge.ConnectionURI(), ge.Database, ge.Scheme.IsRouting(), ge.Scheme.IsEncrypted())

	le := llmenv.NewLLMEnv()
	if err := le.Populate(); err != nil {
		return nil, fmt.Errorf("unable to configure LLM: %w", err)
	}

	client, err := llm.New(le)
	if err != nil {
		return nil, err
	}
	logger.Infof("Using LLM: %s (temperature: %g)", client.Name(), le.Temperature)

	driver, err := graph.NewDriver(ge)
	if err != nil {
		return nil, err
	}

	executor := graph.NewExecutor(graph.DriverOpener(driver, ge.Database), logger)

	return &pipeline{
		GraphEnv:  ge,
		LLMEnv:    le,
		Driver:    driver,
		Generator: generator.New(prompt.Default(), client, executor, logger),
	}, nil
}
