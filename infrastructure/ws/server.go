package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/nikitapn/npchat/auth"
)

// Server exposes the chat protocol on GET /ws?token=<jwt>.
type Server struct {
	log *slog.Logger
	app *fiber.App
}

func NewServer(log *slog.Logger, handler *Handler, secret []byte) *Server {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", auth.Middleware(secret), websocket.New(func(c *websocket.Conn) {
		userID, ok := auth.UserID(c.Locals(auth.UserIDKey))
		if !ok {
			_ = c.Close()
			return
		}
		handler.Serve(c, userID)
	}))

	return &Server{log: log, app: app}
}

// App gives access to the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks until Shutdown is called or the listener fails.
func (s *Server) Listen(address string) error {
	s.log.Info("Starting websocket server", "address", address)
	return s.app.Listen(address)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
