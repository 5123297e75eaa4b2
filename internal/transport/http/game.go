package http

import (
	"net/http"

	"github.com/HuiyanRoy/GomokuMaster/internal/service/bot"
	"github.com/HuiyanRoy/GomokuMaster/internal/service/game"
	"github.com/HuiyanRoy/GomokuMaster/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type LiveGames interface {
	Snapshot(userID int64) (game.Snapshot, bool)
}

type GameHandler struct {
	Sessions LiveGames
	Stats    StatsReader
}

func NewGameHandler(sessions LiveGames, stats StatsReader) *GameHandler {
	return &GameHandler{Sessions: sessions, Stats: stats}
}

func (h *GameHandler) Difficulties(c *gin.Context) {
	c.JSON(http.StatusOK, bot.Difficulties)
}

func (h *GameHandler) GetStats(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	stats, err := h.Stats.GetStats(userID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wins":    stats.Wins,
		"losses":  stats.Losses,
		"draws":   stats.Draws,
		"total":   stats.Total(),
		"winRate": stats.WinRate(),
	})
}

// CurrentGame returns the caller's in-memory game, if any.
func (h *GameHandler) CurrentGame(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	snap, ok := h.Sessions.Snapshot(userID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active game"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
