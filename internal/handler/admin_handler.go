package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"codehunt/giveaway/internal/model"
	"codehunt/giveaway/internal/service"
	"codehunt/giveaway/pkg/response"
)

type AdminHandler struct {
	lotteryService   service.LotteryService
	entryService     service.EntryService
	broadcastService service.BroadcastService
	transport        service.Transport
	announceChatID   int64
	logger           *zap.Logger
}

func NewAdminHandler(
	lotteryService service.LotteryService,
	entryService service.EntryService,
	broadcastService service.BroadcastService,
	transport service.Transport,
	announceChatID int64,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		lotteryService:   lotteryService,
		entryService:     entryService,
		broadcastService: broadcastService,
		transport:        transport,
		announceChatID:   announceChatID,
		logger:           logger,
	}
}

// Draw runs the weighted lottery. An empty pool is a normal outcome and
// returns a null winner.
func (h *AdminHandler) Draw(c *gin.Context) {
	winner, err := h.lotteryService.DrawWinner(c.Request.Context())
	if err != nil {
		response.InternalError(c, "draw failed")
		return
	}

	if winner != nil && h.announceChatID != 0 {
		announcement := fmt.Sprintf(
			"🎉 Giveaway winner: %s (@%s)\nParticipant code: %s\nCodes found: %d (%s)",
			winner.DisplayName, winner.Handle, winner.ParticipantCode,
			winner.Weight, strings.Join(winner.Codes, ", "),
		)
		if err := h.transport.Deliver(c.Request.Context(), h.announceChatID, announcement); err != nil {
			h.logger.Warn("winner announcement delivery failed",
				zap.Int64("chat_id", h.announceChatID), zap.Error(err))
		}
	}

	response.Success(c, gin.H{"winner": winner})
}

func (h *AdminHandler) Export(c *gin.Context) {
	rows, err := h.entryService.ExportAll(c.Request.Context())
	if err != nil {
		response.InternalError(c, "export failed")
		return
	}
	response.Success(c, rows)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	counts, err := h.entryService.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c, "stats failed")
		return
	}
	response.Success(c, counts)
}

type StartBroadcastRequest struct {
	Category string `json:"category" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

func (h *AdminHandler) StartBroadcast(c *gin.Context) {
	var req StartBroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	job, err := h.broadcastService.Start(
		c.Request.Context(), model.PreferenceFlag(req.Category), req.Message,
	)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPreference) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "broadcast failed to start")
		return
	}

	response.Accepted(c, job.Snapshot())
}

func (h *AdminHandler) BroadcastStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid broadcast id")
		return
	}

	job, err := h.broadcastService.Status(id)
	if err != nil {
		if errors.Is(err, service.ErrBroadcastNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, "broadcast status failed")
		return
	}

	response.Success(c, job.Snapshot())
}
