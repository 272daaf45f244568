// Package repository provides typed CRUD access to categories, transactions,
// and settings. Repositories own identifier generation, timestamp stamping,
// and input validation; persistence is delegated to a service.Storage.
//
// The repositories assume a single writer. Sequences of calls, such as the
// read-merge-write in Settings.Update, are not isolated from a second writer.
package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/pocket-ledger/internal/service"
)

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator returns a new unique identifier.
type IDGenerator func() string

// NewID returns a UUIDv7 string: a millisecond timestamp followed by random bits.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

type options struct {
	now   Clock
	newID IDGenerator
}

// Option configures a repository.
type Option func(*options)

// WithClock overrides the time source used for timestamps.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.now = clock
		}
	}
}

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(gen IDGenerator) Option {
	return func(o *options) {
		if gen != nil {
			o.newID = gen
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, newID: NewID}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Set bundles the three repositories over one store.
type Set struct {
	Categories   *Categories
	Transactions *Transactions
	Settings     *Settings
}

// New builds all repositories over store.
func New(store service.Storage, opts ...Option) *Set {
	return &Set{
		Categories:   NewCategories(store, opts...),
		Transactions: NewTransactions(store, opts...),
		Settings:     NewSettings(store),
	}
}
