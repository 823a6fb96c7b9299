package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genegraph/cyphergen/internal/test"
	"github.com/genegraph/cyphergen/internal/test/fake"
	cyphergen "github.com/genegraph/cyphergen/pkg"
	"github.com/genegraph/cyphergen/pkg/generator"
	"github.com/genegraph/cyphergen/pkg/graph"
	"github.com/genegraph/cyphergen/pkg/llm"
	"github.com/genegraph/cyphergen/pkg/prompt"
)

const lungCancerQuery = `MATCH (g:Gene)-[:ASSOCIATED_WITH]->(d:Disease {name: 'Lung Cancer'}) RETURN g.name;`

func TestQuery(t *testing.T) {
	t.Parallel()

	name := []string{"g.name"}

	cases := []struct {
		description string
		model       *fake.Model
		session     *fake.Session
		request     string
		code        int
		want        string
		closed      int
	}{
		{
			"question answered with rows in database order",
			&fake.Model{Responses: []string{"Here you go:\n" + lungCancerQuery + "\nHope this helps."}},
			&fake.Session{
				Columns: name,
				Records: []*neo4j.Record{fake.Row(name, "EGFR"), fake.Row(name, "KRAS")},
			},
			`{"question": "Find genes related to Lung Cancer"}`,
			200,
			`{"query":"MATCH (g:Gene)-[:ASSOCIATED_WITH]->(d:Disease {name: 'Lung Cancer'}) RETURN g.name;","columns":["g.name"],"results":[{"g.name":"EGFR"},{"g.name":"KRAS"}]}`,
			1,
		},
		{
			"question answered without rows",
			&fake.Model{Responses: []string{"match (n:Gene {name: 'NOPE'}) return n.name"}},
			&fake.Session{Columns: []string{"n.name"}},
			`{"question": "Find gene NOPE"}`,
			200,
			`{"query":"match (n:Gene {name: 'NOPE'}) return n.name","columns":["n.name"],"results":[]}`,
			1,
		},
		{
			"model fails",
			&fake.Model{Err: errors.New("connection refused")},
			&fake.Session{},
			`{"question": "Find genes related to Lung Cancer"}`,
			500,
			`{"error":"LLM error: unable to generate completion: connection refused","kind":"llm_error"}`,
			0,
		},
		{
			"model answers without a query",
			&fake.Model{Responses: []string{"I don't know."}},
			&fake.Session{},
			`{"question": "What is love?"}`,
			400,
			`{"error":"failed to generate a valid Cypher query: no Cypher query found in model response","kind":"extraction_error"}`,
			0,
		},
		{
			"database rejects the query",
			&fake.Model{Responses: []string{"MATCH (n RETURN n;"}},
			&fake.Session{RunErr: errors.New("syntax error")},
			`{"question": "Broken"}`,
			500,
			`{"error":"database error: unable to run query: syntax error","kind":"database_error","query":"MATCH (n RETURN n;"}`,
			1,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			var body bytes.Buffer

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/generate-cypher/", bytes.NewBufferString(tc.request))

			logger := test.DummyLogger(io.Discard).Sugar()

			gen := generator.New(
				prompt.Default(),
				llm.NewClient(tc.model, "fake"),
				graph.NewExecutor(tc.session.Opener(nil), logger),
				logger,
			)

			expected := &cyphergen.Config{Asker: gen, Logger: logger}
			Query(expected).ServeHTTP(w, r)

			actual := w.Result()
			defer func() { _ = actual.Body.Close() }()

			_, _ = io.Copy(&body, actual.Body)

			assert.Equal(t, tc.code, actual.StatusCode)
			assert.Equal(t, "application/json", actual.Header.Get("Content-Type"))
			assert.JSONEq(t, tc.want, body.String())
			assert.Equal(t, tc.closed, tc.session.Closed())
		})
	}
}

func TestQueryMalformedRequest(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		request     string
		want        string
	}{
		{
			"empty body",
			``,
			`Unable to decode request body: request body is empty`,
		},
		{
			"malformed JSON",
			`{"question: "test"}`,
			`Unable to decode request body`,
		},
		{
			"question of the wrong type",
			`{"question": 42}`,
			`Unable to decode request body`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			var body bytes.Buffer

			model := &fake.Model{Responses: []string{lungCancerQuery}}

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/generate-cypher", bytes.NewBufferString(tc.request))

			logger := test.DummyLogger(io.Discard).Sugar()

			gen := generator.New(prompt.Default(), llm.NewClient(model, "fake"), graph.NewExecutor((&fake.Session{}).Opener(nil), logger), logger)

			expected := &cyphergen.Config{Asker: gen, Logger: logger}
			Query(expected).ServeHTTP(w, r)

			actual := w.Result()
			defer func() { _ = actual.Body.Close() }()

			_, _ = io.Copy(&body, actual.Body)

			require.Equal(t, 400, actual.StatusCode)
			assert.Contains(t, body.String(), tc.want)
			assert.Zero(t, model.Calls())
		})
	}
}
