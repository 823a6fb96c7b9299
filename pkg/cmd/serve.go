package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cyphergen "github.com/genegraph/cyphergen/pkg"
	"github.com/genegraph/cyphergen/pkg/audit"
	"github.com/genegraph/cyphergen/pkg/env/splunk"
	"github.com/genegraph/cyphergen/pkg/env/user"
	"github.com/genegraph/cyphergen/pkg/handlers"
	"github.com/genegraph/cyphergen/pkg/metrics"
	"github.com/genegraph/cyphergen/pkg/middleware"
	"github.com/genegraph/cyphergen/pkg/version"
)

const (
	readTimeout       = 1 * time.Minute
	readHeaderTimeout = 20 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func newServeCommand(logger *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return Run(ctx, logger)
		},
	}
}

// Run serves the API until ctx is done.
func Run(ctx context.Context, logger *zap.SugaredLogger) error {
	production := cyphergen.Production()
	logger.Infof("Starting cyphergen version: %s", version.Version())

	usere := user.NewUserEnv()
	if err := usere.Populate(); err != nil {
		return fmt.Errorf("unable to configure users: %w", err)
	}
	logger.Infof("Production: %t, authorization enabled: %t", production, usere.Enabled())
	logger.Debugf("Authorized users: %v", usere.Users)

	p, err := newPipeline(logger)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close(context.WithoutCancel(ctx)) }()

	cfg := &cyphergen.Config{
		Asker:       p.Generator,
		Graph:       p.Driver,
		GraphEnv:    p.GraphEnv,
		LLMEnv:      p.LLMEnv,
		UserEnv:     usere,
		LoggerAudit: audit.NewLoggerAudit(logger),
		Logger:      logger,
	}

	se := splunk.NewSplunkEnv()
	if err := se.Populate(); err != nil {
		return fmt.Errorf("unable to configure Splunk: %w", err)
	}
	if se.Enabled() {
		logger.Infof("Sending audit to Splunk endpoint: %s", se.Endpoint)
		cfg.SplunkAudit = audit.NewSplunkAudit(se)
	}

	port := cyphergen.Port()
	timeout := cyphergen.RequestTimeout()
	logger.Infof("HTTP server starting on port: %d (request timeout: %s)", port, timeout)

	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           NewRouter(cfg, timeout, production),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		// Leave room for the timeout handler to answer first.
		WriteTimeout: timeout + 5*time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("unable to start HTTP server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("unable to stop HTTP server: %w", err)
	}

	return nil
}

// NewRouter mounts every route of the API. Health probe access logs are
// dropped in production.
func NewRouter(cfg *cyphergen.Config, timeout time.Duration, production bool) http.Handler {
	// Temp workaround for easy to access io.Writer.
	defaultLogOutput := log.Default().Writer()

	healthLogOutput := io.Discard
	if !production {
		healthLogOutput = defaultLogOutput
	}
	logHandler := gorillaHandlers.LoggingHandler

	queryChain := alice.New(
		alice.Constructor(middleware.Recovery(cfg)),
		alice.Constructor(middleware.Timeout(timeout)),
		alice.Constructor(middleware.Authorization(cfg)),
		alice.Constructor(middleware.Audit(cfg)),
	).Then(handlers.Query(cfg))

	r := mux.NewRouter()
	r.Use(middleware.Metrics)
	r.Handle("/", logHandler(defaultLogOutput, handlers.Home(cfg))).Methods("GET")
	r.Handle("/healthcheck", logHandler(healthLogOutput, handlers.Healthcheck(cfg))).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.Handle("/generate-cypher", logHandler(defaultLogOutput, queryChain)).Methods("POST")
	r.Handle("/generate-cypher/", logHandler(defaultLogOutput, queryChain)).Methods("POST")

	return r
}
