//go:build integration
// +build integration

package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/orlangure/gnomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/genegraph/cyphergen/pkg/cmd"
)

const (
	neo4jImage    = "docker.io/library/neo4j:5"
	neo4jUser     = "neo4j"
	neo4jPassword = "gnomock-password"
)

// seedQuery loads a small gene and disease graph.
const seedQuery = `
CREATE (lc:Disease {name: 'Lung Cancer'})
CREATE (ad:Disease {name: 'Alzheimer Disease'})
CREATE (egfr:Gene {name: 'EGFR'})
CREATE (kras:Gene {name: 'KRAS'})
CREATE (apoe:Gene {name: 'APOE'})
CREATE (tp53:Gene {name: 'TP53'})
CREATE (egfr)-[:ASSOCIATED_WITH]->(lc)
CREATE (kras)-[:ASSOCIATED_WITH]->(lc)
CREATE (tp53)-[:ASSOCIATED_WITH]->(lc)
CREATE (apoe)-[:ASSOCIATED_WITH]->(ad)
CREATE (tp53)-[:REGULATES]->(egfr)
CREATE (egfr)-[:INTERACTS_WITH]->(kras)
`

func connect(c *gnomock.Container) (neo4j.DriverWithContext, error) {
	uri := fmt.Sprintf("neo4j://%s", c.DefaultAddress())
	return neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(neo4jUser, neo4jPassword, ""))
}

func startNeo4j(t *testing.T) *gnomock.Container {
	t.Helper()

	container, err := gnomock.StartCustom(neo4jImage, gnomock.DefaultTCP(7687),
		gnomock.WithEnv(fmt.Sprintf("NEO4J_AUTH=%s/%s", neo4jUser, neo4jPassword)),
		gnomock.WithUseLocalImagesFirst(),
		gnomock.WithTimeout(3*time.Minute),
		gnomock.WithHealthCheck(func(ctx context.Context, c *gnomock.Container) error {
			driver, err := connect(c)
			if err != nil {
				return err
			}
			defer func() { _ = driver.Close(ctx) }()
			return driver.VerifyConnectivity(ctx)
		}),
		gnomock.WithInit(func(ctx context.Context, c *gnomock.Container) error {
			driver, err := connect(c)
			if err != nil {
				return err
			}
			defer func() { _ = driver.Close(ctx) }()
			_, err = neo4j.ExecuteQuery(ctx, driver, seedQuery, nil, neo4j.EagerResultTransformer)
			return err
		}),
	)
	require.NoError(t, err)

	t.Cleanup(func() { _ = gnomock.Stop(container) })

	return container
}

// fakeLLM is an OpenAI-compatible chat endpoint that always answers with
// the same content.
type fakeLLM struct {
	*httptest.Server

	mu      sync.Mutex
	prompts []string
}

func startFakeLLM(t *testing.T, content string) *fakeLLM {
	t.Helper()

	f := &fakeLLM{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}

		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.prompts = append(f.prompts, string(body))
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   "test",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]int{"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2},
		})
	}))

	t.Cleanup(f.Close)

	return f
}

func (f *fakeLLM) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// fakeSplunk records the events posted to its HTTP Event Collector.
type fakeSplunk struct {
	*httptest.Server

	mu     sync.Mutex
	events []string
}

func startFakeSplunk(t *testing.T) *fakeSplunk {
	t.Helper()

	f := &fakeSplunk{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.events = append(f.events, string(body))
		f.mu.Unlock()
		fmt.Fprintln(w, `{"text":"Success","code":0}`)
	}))

	t.Cleanup(f.Close)

	return f
}

func (f *fakeSplunk) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func setEnvironment(t *testing.T, container *gnomock.Container, llm *fakeLLM) {
	t.Helper()

	host, port := "localhost", "1"
	if container != nil {
		host, port = container.Host, strconv.Itoa(container.DefaultPort())
	}

	t.Setenv("NEO4J_SCHEME", "bolt")
	t.Setenv("NEO4J_HOST", host)
	t.Setenv("NEO4J_PORT", port)
	t.Setenv("NEO4J_USER", neo4jUser)
	t.Setenv("NEO4J_PASS", neo4jPassword)

	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_MODEL", "test")
	t.Setenv("LLM_API_KEY", "test")
	t.Setenv("LLM_BASE_URL", llm.URL)

	t.Setenv("SPLUNK_ENDPOINT", "")
	t.Setenv("AUTHORIZED_USERS", "")
	t.Setenv("USERS_FILE_PATH", "")
}

func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	return l.Addr().(*net.TCPAddr).Port
}

// startServer runs the API on a free port until the test ends and returns
// its base URL.
func startServer(t *testing.T) string {
	t.Helper()

	port := freePort(t)
	t.Setenv("PORT", strconv.Itoa(port))

	l, err := zap.NewDevelopment()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		done <- cmd.Run(ctx, l.Sugar())
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
		_ = l.Sync()
	})

	waitForPortOpen(t, port, done)

	return fmt.Sprintf("http://localhost:%d", port)
}

func waitForPortOpen(t *testing.T, port int, done <-chan error) {
	t.Helper()

	address := net.JoinHostPort("localhost", strconv.Itoa(port))
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case err := <-done:
			t.Fatalf("server stopped before accepting connections: %v", err)
		default:
		}

		conn, err := net.DialTimeout("tcp", address, 500*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start listening on %s", address)
}
