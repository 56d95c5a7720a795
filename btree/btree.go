/*
Package btree implements an in-memory ordered key-value B-tree.

A tree is configured with a minimum degree t (t >= 2). Every node other than the root
holds between t-1 and 2t-1 keys, internal nodes with k keys own k+1 children, and all
leaves sit at the same depth. Every key carries its value, including keys that live in
internal nodes.

A tree is not safe for concurrent use. Callers that share one across goroutines must
synchronize externally.
*/
package btree

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Tree errors.
var (
	ErrInvalidConfiguration = errors.New("invalid b-tree configuration")
	ErrKeyNotFound          = errors.New("key not found")
	ErrUseAfterDestroy      = errors.New("b-tree used after destroy")
	ErrResourceExhausted    = errors.New("b-tree node budget exhausted")
	ErrIteratorInvalidated  = errors.New("b-tree modified during iteration")
)

// Result reports what a mutation did.
type Result uint8

const (
	NotFound Result = iota
	Inserted
	Updated
	Deleted
)

func (r Result) String() string {
	switch r {
	case NotFound:
		return "not found"
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Option configures a tree at creation.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	maxNodes int
}

// WithLogger sets the logger used for structural events (root split, root collapse).
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxNodes caps the number of live nodes. An insert whose split would exceed the
// cap fails with ErrResourceExhausted. Zero means no cap.
func WithMaxNodes(n int) Option {
	return func(o *options) {
		o.maxNodes = n
	}
}
