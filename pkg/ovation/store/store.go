// Package store archives downloaded message corpora so a mining run
// can be replayed without refetching.
package store

import (
	"context"

	"github.com/ovationhq/ovation/pkg/ovation/corpus"
)

// Store persists and reloads one ceremony's message corpus.
type Store interface {
	Close() error

	SaveMessages(ctx context.Context, msgs []corpus.Message) error
	LoadMessages(ctx context.Context) ([]corpus.Message, error)
	Count(ctx context.Context) (int64, error)
}
