package cyphergen

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/genegraph/cyphergen/pkg/audit"
	graphenv "github.com/genegraph/cyphergen/pkg/env/graph"
	llmenv "github.com/genegraph/cyphergen/pkg/env/llm"
	"github.com/genegraph/cyphergen/pkg/env/user"
	"github.com/genegraph/cyphergen/pkg/graph"
	"github.com/genegraph/cyphergen/pkg/models"
)

const (
	defaultRequestTimeout = 2 * time.Minute
	defaultPort           = 8080
)

// Asker turns a question into an executed query.
type Asker interface {
	Ask(ctx context.Context, question string) (*models.QueryResponse, error)
}

type Config struct {
	Asker       Asker
	Graph       graph.Verifier
	GraphEnv    *graphenv.Env
	LLMEnv      *llmenv.Env
	UserEnv     *user.Env
	LoggerAudit audit.Audit
	SplunkAudit audit.Audit
	Logger      *zap.SugaredLogger
}

func Production() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}

func RequestTimeout() time.Duration {
	if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
		if d, err := parseDuration(s); err == nil {
			return d
		}
	}
	return defaultRequestTimeout
}

func Port() int {
	if s := os.Getenv("PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil && port > 0 && port <= 65535 {
			return port
		}
	}
	return defaultPort
}

// parseDuration accepts Go durations and bare integers, which are taken as
// seconds. The sign is dropped.
func parseDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return (time.Duration(n) * time.Second).Abs(), nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("unable to parse duration: %w", err)
	}
	return d.Abs(), nil
}
