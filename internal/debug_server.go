package internal

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/nikitapn/npchat/repositories"
)

const (
	defaultInspectPrefix = "chat:"
	maxInspectRows       = 500
)

// StatsProvider returns live figures shown next to the stored rows.
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string                    `json:"prefix"`
	Items  []repositories.InspectRow `json:"items"`
	Stats  map[string]any            `json:"stats"`
}

// RegisterInspect mounts GET {endpoint}?prefix=...&limit=... on router.
// It dumps the decoded badger records under a key prefix.
func RegisterInspect(router fiber.Router, endpoint string, db *badger.DB, statsProvider StatsProvider) {
	router.Get(endpoint, func(c *fiber.Ctx) error {
		prefix := c.Query("prefix", defaultInspectPrefix)
		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > maxInspectRows {
			limit = maxInspectRows
		}

		items, err := repositories.Inspect(db, prefix, limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		data := PageData{Prefix: prefix, Items: items, Stats: map[string]any{}}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}
		return c.JSON(data)
	})
}
