package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etherlabsio/healthcheck/v2"

	cyphergen "github.com/genegraph/cyphergen/pkg"
)

const healthcheckTimeout = 5 * time.Second

func Healthcheck(cfg *cyphergen.Config) http.Handler {
	return healthcheck.Handler(
		healthcheck.WithTimeout(healthcheckTimeout),
		healthcheck.WithChecker(
			"graph", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if err := cfg.Graph.VerifyConnectivity(ctx); err != nil {
						cfg.Logger.Errorf("Unable to connect to the graph database: %s", err)
						return errors.New("Unable to connect to the graph database")
					}
					return nil
				},
			),
		),
	)
}
