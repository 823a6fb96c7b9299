// Package cypher recovers a Cypher statement from free-form model output.
//
// Extraction is a shape check only: the text must contain the MATCH keyword
// (in any case). The statement runs from the first keyword up to and
// including the first ';' that follows it, or to the end of the text. No
// grammar is applied, so a ';' inside a string literal ends the statement.
package cypher

import (
	"errors"
	"regexp"
	"strings"
)

const (
	Keyword    = "MATCH"
	Terminator = ";"
)

var ErrNoQuery = errors.New("no Cypher query found in model response")

var keyword = regexp.MustCompile(`(?i)` + Keyword)

func Extract(text string) (string, error) {
	loc := keyword.FindStringIndex(text)
	if loc == nil {
		return "", ErrNoQuery
	}

	query := text[loc[0]:]
	if i := strings.Index(query, Terminator); i >= 0 {
		query = query[:i+len(Terminator)]
	}

	return strings.TrimSpace(query), nil
}
