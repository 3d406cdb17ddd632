package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/ircrelay-server/internal/config"
	"github.com/vovakirdan/ircrelay-server/internal/core"
)

// NewServer builds the HTTP server carrying the websocket endpoint and the
// health/stats surface.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), loggerMiddleware(logger))

	router.GET("/health", healthHandler)
	router.GET("/stats", statsHandler(hub))
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

func statsHandler(hub *core.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(stdhttp.StatusOK, hub.Stats())
	}
}

// loggerMiddleware logs HTTP requests. The websocket endpoint only shows up
// here once per connection, at upgrade time.
func loggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("http request")
	}
}
