// Package graph runs Cypher statements against the graph database and reads
// the rows back into plain records.
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// Session is the part of a driver session the executor needs.
type Session interface {
	Run(ctx context.Context, cypher string, params map[string]any) (Result, error)
	Close(ctx context.Context) error
}

// Result is satisfied by neo4j.ResultWithContext.
type Result interface {
	Keys() ([]string, error)
	Next(ctx context.Context) bool
	Record() *neo4j.Record
	Err() error
}

// SessionOpener hands out a fresh session for every statement.
type SessionOpener func(ctx context.Context) (Session, error)

// Record maps a column name or alias to its value for one row.
type Record map[string]any

type Results struct {
	Columns []string
	Records []Record
}

type Executor struct {
	open   SessionOpener
	logger *zap.SugaredLogger
}

func NewExecutor(open SessionOpener, logger *zap.SugaredLogger) *Executor {
	return &Executor{open: open, logger: logger}
}

// Execute runs query in its own session and returns every row in the order
// the database produced them. The session is closed on all return paths.
func (e *Executor) Execute(ctx context.Context, query string) (*Results, error) {
	session, err := e.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to open database session: %w", err)
	}
	defer func() {
		if err := session.Close(context.WithoutCancel(ctx)); err != nil {
			e.logger.Warnf("Unable to close database session: %s", err)
		}
	}()

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to run query: %w", err)
	}

	columns, err := result.Keys()
	if err != nil {
		return nil, fmt.Errorf("unable to read result columns: %w", err)
	}

	records := make([]Record, 0)
	for result.Next(ctx) {
		records = append(records, toRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("unable to process database rows: %w", err)
	}

	e.logger.Debugf("Query returned %d row(s)", len(records))

	return &Results{Columns: columns, Records: records}, nil
}
