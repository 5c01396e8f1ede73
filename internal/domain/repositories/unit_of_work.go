package repositories

import (
	"context"
)

// UnitOfWork groups several repository writes into one all-or-nothing step.
type UnitOfWork interface {
	// Do runs fn with exclusive access to the ledger state. When fn returns an
	// error every write made through ctx is discarded; otherwise the touched
	// collections are mirrored once fn returns. Nested calls join the outer scope.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
