// Package audit records who asked which question.
package audit

import "context"

type Audit interface {
	Write(ctx context.Context, q *QueryData) error
}

type QueryData struct {
	Question  string
	User      string
	Timestamp int64
}
