// Package storagetest opens throwaway sqlite backends for tests
package storagetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/nutri-api/internal/config"
	"github.com/jwalitptl/nutri-api/internal/gateway"
	"github.com/jwalitptl/nutri-api/internal/storage"
	"github.com/jwalitptl/nutri-api/pkg/messaging"
)

// Open returns a migrated sqlite backend in t's temp dir
func Open(t *testing.T, bmiTrigger bool) *storage.Backend {
	t.Helper()
	b, err := storage.Open(config.DatabaseConfig{
		Backend:    config.BackendORM,
		Dialect:    config.DialectSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "nutri-test.db"),
		LogLevel:   "silent",
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	require.NoError(t, b.Migrate(context.Background(), bmiTrigger))
	return b
}

// Deps returns single-tenant gateway deps that record events in memory
func Deps() (gateway.Deps, *messaging.MemoryPublisher) {
	events := &messaging.MemoryPublisher{}
	return gateway.Deps{
		Tenancy:   config.TenancySingle,
		Publisher: events,
		Logger:    zerolog.Nop(),
	}, events
}
