package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	graphenv "github.com/genegraph/cyphergen/pkg/env/graph"
)

const (
	connectionAcquisitionTimeout = 30 * time.Second
	socketConnectTimeout         = 5 * time.Second
)

// Verifier reports whether the database can be reached.
type Verifier interface {
	VerifyConnectivity(ctx context.Context) error
}

func NewDriver(e *graphenv.Env) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(
		e.ConnectionURI(),
		neo4j.BasicAuth(e.Username, e.Password, ""),
		func(c *neo4j.Config) {
			c.ConnectionAcquisitionTimeout = connectionAcquisitionTimeout
			c.SocketConnectTimeout = socketConnectTimeout
		},
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create database driver: %w", err)
	}
	return driver, nil
}

// DriverOpener opens read-only sessions against database. An empty name
// selects the server's default database.
func DriverOpener(driver neo4j.DriverWithContext, database string) SessionOpener {
	return func(ctx context.Context) (Session, error) {
		s := driver.NewSession(ctx, neo4j.SessionConfig{
			AccessMode:   neo4j.AccessModeRead,
			DatabaseName: database,
		})
		return &driverSession{session: s}, nil
	}
}

type driverSession struct {
	session neo4j.SessionWithContext
}

func (s *driverSession) Run(ctx context.Context, cypher string, params map[string]any) (Result, error) {
	result, err := s.session.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *driverSession) Close(ctx context.Context) error {
	return s.session.Close(ctx)
}

func toRecord(r *neo4j.Record) Record {
	record := make(Record, len(r.Keys))
	for i, key := range r.Keys {
		if i < len(r.Values) {
			record[key] = flatten(r.Values[i])
		}
	}
	return record
}

// flatten turns graph entities into JSON friendly values: nodes and
// relationships become their properties, paths alternate node properties and
// relationship types.
func flatten(v any) any {
	switch t := v.(type) {
	case dbtype.Node:
		return flattenMap(t.Props)
	case dbtype.Relationship:
		return flattenMap(t.Props)
	case dbtype.Path:
		out := make([]any, 0, len(t.Nodes)+len(t.Relationships))
		for i, n := range t.Nodes {
			out = append(out, flattenMap(n.Props))
			if i < len(t.Relationships) {
				out = append(out, t.Relationships[i].Type)
			}
		}
		return out
	case dbtype.Date:
		return time.Time(t).Format("2006-01-02")
	case dbtype.LocalTime:
		return time.Time(t).Format("15:04:05.999999999")
	case dbtype.LocalDateTime:
		return time.Time(t).Format("2006-01-02T15:04:05.999999999")
	case dbtype.Time:
		return time.Time(t).Format("15:04:05.999999999Z07:00")
	case dbtype.Duration:
		return t.String()
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = flatten(t[i])
		}
		return out
	case map[string]any:
		return flattenMap(t)
	default:
		return v
	}
}

func flattenMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = flatten(v)
	}
	return out
}
