package generator

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindLLM means the model call failed or produced nothing usable.
	KindLLM Kind = "llm_error"
	// KindExtraction means the model answered but no query could be found.
	KindExtraction Kind = "extraction_error"
	// KindDatabase means the database rejected or failed to run the query.
	KindDatabase Kind = "database_error"
)

// Outcome label used for successful questions in metrics.
const outcomeSuccess = "success"

type Error struct {
	Kind  Kind
	Query string
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindLLM:
		return fmt.Sprintf("LLM error: %s", e.Err)
	case KindExtraction:
		return fmt.Sprintf("failed to generate a valid Cypher query: %s", e.Err)
	case KindDatabase:
		return fmt.Sprintf("database error: %s", e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a pipeline error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
