package graph

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/genegraph/cyphergen/pkg/env"
)

type Env struct {
	Scheme   SchemeType
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

func NewGraphEnv() *Env {
	return &Env{}
}

func (e *Env) Populate() error {
	scheme := SchemeType(os.Getenv("NEO4J_SCHEME"))
	if !scheme.IsValid() {
		return &env.ValueError{Name: "NEO4J_SCHEME", Value: string(scheme)}
	}
	e.Scheme = SchemeType(scheme.Name())

	host := os.Getenv("NEO4J_HOST")
	if host == "" {
		return &env.Error{Name: "NEO4J_HOST"}
	}
	e.Host = host

	e.Port = e.Scheme.Port()
	if s := os.Getenv("NEO4J_PORT"); s != "" {
		port, err := strconv.Atoi(s)
		if err != nil || port <= 0 || port > 65535 {
			return &env.TypeError{Name: "NEO4J_PORT"}
		}
		e.Port = port
	}

	username := os.Getenv("NEO4J_USER")
	if username == "" {
		return &env.Error{Name: "NEO4J_USER"}
	}
	e.Username = username

	password := os.Getenv("NEO4J_PASS")
	if password == "" {
		return &env.Error{Name: "NEO4J_PASS"}
	}
	e.Password = password

	// An empty name selects the server's default database.
	e.Database = os.Getenv("NEO4J_DATABASE")

	return nil
}

func (e *Env) ConnectionURI() string {
	return fmt.Sprintf("%s://%s", e.Scheme.Name(), net.JoinHostPort(e.Host, strconv.Itoa(e.Port)))
}
