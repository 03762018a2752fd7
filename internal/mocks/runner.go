package mocks

import (
	"context"

	"github.com/k0rog/accounts/internal/store"
)

// MockRunner implements store.Runner without a real database. The callback
// receives a nil transaction; mock stores ignore it, so service logic can be
// exercised while the transaction boundary stays observable.
type MockRunner struct {
	// BeginErr, when set, is returned before the callback runs.
	BeginErr error

	// Calls counts how many transactions were started.
	Calls int
}

var _ store.Runner = (*MockRunner)(nil)

func (m *MockRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.BeginErr != nil {
		return m.BeginErr
	}
	return fn(ctx, nil)
}
