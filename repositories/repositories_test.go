package repositories

import (
	"log/slog"
	"testing"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) (*badger.DB, *slog.Logger) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, logs.GetLoggerFromLevel(slog.LevelDebug)
}

func newChatRepository(t *testing.T, db *badger.DB, log *slog.Logger) *ChatRepository {
	t.Helper()
	repository, err := NewChatRepository(db, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repository.Close() })
	return repository
}

func newMessageRepository(t *testing.T, db *badger.DB, log *slog.Logger) *MessageRepository {
	t.Helper()
	repository, err := NewMessageRepository(db, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repository.Close() })
	return repository
}

func newContactRepository(t *testing.T, db *badger.DB, log *slog.Logger) *ContactRepository {
	t.Helper()
	index, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	return NewContactRepository(db, index, log)
}
