package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	cyphergen "github.com/genegraph/cyphergen/pkg"
	"github.com/genegraph/cyphergen/pkg/cmd"
)

func main() {
	// A missing .env file is fine, the environment is used as is.
	_ = godotenv.Load()

	newLogger := zap.NewDevelopment
	if cyphergen.Production() {
		newLogger = zap.NewProduction
	}

	l, err := newLogger()
	if err != nil {
		log.Fatalf("Unable to initialize Zap logger: %s", err)
	}
	defer func() { _ = l.Sync() }()

	logger := l.Sugar()
	if err := cmd.Execute(logger); err != nil {
		logger.Fatalf("Unable to run cyphergen: %s", err)
	}
}
