// Package repository is the contract with the remote read-only SQL proxies.
package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// Source selects one of the three remote databases.
type Source string

const (
	SourceMonitoring   Source = "monitoring"   // scs1
	SourcePlanning     Source = "planning"     // siaptanam
	SourceOptimization Source = "optimization" // sifortuna
)

var Sources = []Source{SourceMonitoring, SourcePlanning, SourceOptimization}

var (
	ErrQueryFailed = errors.New("query failed")
	ErrNotReadOnly = errors.New("only SELECT or WITH statements are allowed")
)

// Response mirrors the proxy envelope.
type Response struct {
	Status  string `json:"status"`
	Data    []Row  `json:"data"`
	Count   int    `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

const StatusSuccess = "success"

// First returns the first row, if any.
func (r *Response) First() (Row, bool) {
	if r == nil || len(r.Data) == 0 {
		return nil, false
	}
	return r.Data[0], true
}

// Executor runs one read-only statement against a source.
type Executor interface {
	Execute(ctx context.Context, sql string, src Source) (*Response, error)
}

var readOnlyRX = regexp.MustCompile(`(?i)^\s*(select|with)\b`)

// CheckReadOnly applies the proxy's statement prefix rule.
func CheckReadOnly(sql string) error {
	if !readOnlyRX.MatchString(sql) {
		return ErrNotReadOnly
	}
	return nil
}

// Quote renders v as a SQL string literal.
func Quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}
