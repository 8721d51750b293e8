package internal

import (
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/mama165/sdk-go/logs"
	"github.com/nikitapn/npchat/repositories"
	"github.com/stretchr/testify/require"
)

func TestRegisterInspect_Dumps_Chats(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer func() { _ = db.Close() }()

	chats, err := repositories.NewChatRepository(db, logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(err)
	defer func() { _ = chats.Close() }()

	// Given one chat stored
	_, err = chats.CreateChat(1, 2)
	req.NoError(err)

	app := fiber.New()
	RegisterInspect(app, "/debug/inspect", db, func() map[string]any {
		return map[string]any{"backlog": 3}
	})

	// When the chat namespace is inspected
	resp, err := app.Test(httptest.NewRequest("GET", "/debug/inspect?prefix=chat:", nil))
	req.NoError(err)
	req.Equal(fiber.StatusOK, resp.StatusCode)

	// Then the stored record is decoded
	var data PageData
	req.NoError(json.NewDecoder(resp.Body).Decode(&data))
	req.Equal("chat:", data.Prefix)
	req.Len(data.Items, 1)
	req.Equal("chat", data.Items[0].Namespace)
	req.Equal(float64(1), data.Items[0].Fields["creator_id"])
	req.Equal(float64(3), data.Stats["backlog"])
}
