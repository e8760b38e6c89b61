// Package sequence numbers confirmed refuelings.
package sequence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tair/fuel-control/internal/fuel/domain"
)

// Defaults for reference formatting
const (
	DefaultPrefix  = "RFL/"
	DefaultPadding = 5
)

// Format renders n as prefix followed by n zero-padded to padding digits.
func Format(prefix string, padding int, n int64) string {
	return fmt.Sprintf("%s%0*d", prefix, padding, n)
}

// Table draws values from the fuel_sequences table inside the caller's
// transaction.
type Table struct {
	Prefix  string
	Padding int
}

// NewTable creates a table-backed generator.
func NewTable(prefix string, padding int) *Table {
	return &Table{Prefix: prefix, Padding: padding}
}

func (t *Table) Next(ctx context.Context, repo domain.Repository, code string) (string, error) {
	n, err := repo.NextSequenceValue(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to draw %s: %w", code, err)
	}
	return Format(t.Prefix, t.Padding, n), nil
}

// Redis draws values with INCR. Values consumed by a rolled back
// transaction are lost, so references may have gaps. A counter reset in
// redis hands out numbers again; the unique index on fuel_refuelings
// rejects those confirmations with ErrReferentialIntegrity.
type Redis struct {
	client  redis.Cmdable
	Prefix  string
	Padding int
}

// NewRedis creates a redis-backed generator.
func NewRedis(client redis.Cmdable, prefix string, padding int) *Redis {
	return &Redis{client: client, Prefix: prefix, Padding: padding}
}

func (r *Redis) Next(ctx context.Context, _ domain.Repository, code string) (string, error) {
	n, err := r.client.Incr(ctx, Key(code)).Result()
	if err != nil {
		return "", fmt.Errorf("failed to draw %s: %w", code, err)
	}
	return Format(r.Prefix, r.Padding, n), nil
}

// Key is the redis key holding the counter of code.
func Key(code string) string {
	return "fuel:seq:" + code
}

var (
	_ domain.SequenceGenerator = (*Table)(nil)
	_ domain.SequenceGenerator = (*Redis)(nil)
)
