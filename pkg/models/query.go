package models

import "github.com/genegraph/cyphergen/pkg/graph"

type QueryRequest struct {
	Question string `json:"question"`
}

type QueryResponse struct {
	Query   string         `json:"query"`
	Columns []string       `json:"columns"`
	Results []graph.Record `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Query string `json:"query,omitempty"`
}

type WelcomeResponse struct {
	Message string `json:"message"`
}
