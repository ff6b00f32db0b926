// Package querytest provides an in-memory repository.Executor for tests.
package querytest

import (
	"context"
	"strings"
	"sync"

	"indash/pkg/query/repository"
)

type route struct {
	fragment string
	rows     []repository.Row
	err      error
	block    chan struct{}
}

// Call records one executed statement.
type Call struct {
	SQL    string
	Source repository.Source
}

// Fake answers statements by the first registered fragment they contain.
// Unmatched statements succeed with no rows.
type Fake struct {
	mu     sync.Mutex
	routes []*route
	calls  []Call
}

func New() *Fake { return &Fake{} }

// On answers statements containing fragment with rows.
func (f *Fake) On(fragment string, rows ...repository.Row) *Fake {
	f.add(&route{fragment: fragment, rows: rows})
	return f
}

// Fail answers statements containing fragment with err.
func (f *Fake) Fail(fragment string, err error) *Fake {
	f.add(&route{fragment: fragment, err: err})
	return f
}

// Block holds statements containing fragment until the returned func is
// called, then answers with rows.
func (f *Fake) Block(fragment string, rows ...repository.Row) (release func()) {
	ch := make(chan struct{})
	f.add(&route{fragment: fragment, rows: rows, block: ch})
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

func (f *Fake) add(r *route) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes = append(f.routes, r)
}

func (f *Fake) Execute(ctx context.Context, sql string, src repository.Source) (*repository.Response, error) {
	if err := repository.CheckReadOnly(sql); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.calls = append(f.calls, Call{SQL: sql, Source: src})
	var match *route
	for _, r := range f.routes {
		if strings.Contains(sql, r.fragment) {
			match = r
			break
		}
	}
	f.mu.Unlock()

	if match == nil {
		return &repository.Response{Status: repository.StatusSuccess, Data: []repository.Row{}}, nil
	}
	if match.block != nil {
		select {
		case <-match.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if match.err != nil {
		return nil, match.err
	}
	return &repository.Response{Status: repository.StatusSuccess, Data: match.rows, Count: len(match.rows)}, nil
}

// Calls returns the statements executed so far.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count reports how many executed statements contain fragment.
func (f *Fake) Count(fragment string) int {
	n := 0
	for _, c := range f.Calls() {
		if strings.Contains(c.SQL, fragment) {
			n++
		}
	}
	return n
}
