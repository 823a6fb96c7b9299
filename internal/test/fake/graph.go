// Package fake provides scripted stand-ins for the graph database and the
// language model.
package fake

import (
	"context"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/genegraph/cyphergen/pkg/graph"
)

// Row builds a driver record with values listed in column order.
func Row(keys []string, values ...any) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}

// Session replays Records for every Run and counts Close calls.
type Session struct {
	Columns  []string
	Records  []*neo4j.Record
	RunErr   error
	KeysErr  error
	RowsErr  error
	CloseErr error
	Panic    any

	mu      sync.Mutex
	closed  int
	queries []string
}

var _ graph.Session = (*Session)(nil)

func (s *Session) Run(_ context.Context, cypher string, _ map[string]any) (graph.Result, error) {
	s.mu.Lock()
	s.queries = append(s.queries, cypher)
	s.mu.Unlock()

	if s.Panic != nil {
		panic(s.Panic)
	}
	if s.RunErr != nil {
		return nil, s.RunErr
	}
	return &Result{columns: s.Columns, records: s.Records, keysErr: s.KeysErr, err: s.RowsErr}, nil
}

func (s *Session) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return s.CloseErr
}

func (s *Session) Closed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// Opener returns s for every request, or err when set.
func (s *Session) Opener(err error) graph.SessionOpener {
	return func(context.Context) (graph.Session, error) {
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

type Result struct {
	columns []string
	records []*neo4j.Record
	keysErr error
	err     error
	pos     int
	current *neo4j.Record
}

func (r *Result) Keys() ([]string, error) {
	if r.keysErr != nil {
		return nil, r.keysErr
	}
	return r.columns, nil
}

func (r *Result) Next(context.Context) bool {
	if r.pos >= len(r.records) {
		r.current = nil
		return false
	}
	r.current = r.records[r.pos]
	r.pos++
	return true
}

func (r *Result) Record() *neo4j.Record {
	return r.current
}

func (r *Result) Err() error {
	if r.pos >= len(r.records) {
		return r.err
	}
	return nil
}

// Verifier answers connectivity checks with Err.
type Verifier struct {
	Err error
}

func (v *Verifier) VerifyConnectivity(context.Context) error {
	return v.Err
}
