package http

import (
	"net/http"
	"strconv"

	"github.com/HuiyanRoy/GomokuMaster/internal/service/game"
	"github.com/HuiyanRoy/GomokuMaster/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	Games *game.Service
}

func NewHistoryHandler(games *game.Service) *HistoryHandler {
	return &HistoryHandler{Games: games}
}

// GetHistory lists the caller's finished games, newest first. ?limit caps
// the count.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
			return
		}
		limit = n
	}

	history, err := h.Games.History(userID, limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// GetGameDetails returns one finished game with its moves and final board.
func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	replay, err := h.Games.GetReplay(c.Param("id"), userID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	if replay == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.JSON(http.StatusOK, replay)
}
