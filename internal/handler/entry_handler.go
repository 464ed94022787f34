package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"codehunt/giveaway/internal/service"
	"codehunt/giveaway/pkg/response"
)

type EntryHandler struct {
	entryService     service.EntryService
	admissionService service.AdmissionService
}

func NewEntryHandler(entryService service.EntryService, admissionService service.AdmissionService) *EntryHandler {
	return &EntryHandler{
		entryService:     entryService,
		admissionService: admissionService,
	}
}

type RegisterEntryRequest struct {
	ExternalID  int64  `json:"external_id" binding:"required"`
	DisplayName string `json:"display_name"`
	Handle      string `json:"handle"`
	Code        string `json:"code" binding:"required"`
}

// Register accepts one code redemption. The admission gate runs before the
// ledger is touched; a denied participant produces no state change.
func (h *EntryHandler) Register(c *gin.Context) {
	var req RegisterEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if !h.admissionService.IsAdmitted(c.Request.Context(), req.ExternalID) {
		response.Forbidden(c, "subscribe to the required channel first")
		return
	}

	result, err := h.entryService.RegisterEntry(
		c.Request.Context(),
		req.ExternalID, req.DisplayName, req.Handle, req.Code,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCode), errors.Is(err, service.ErrUnknownCode):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "registration failed")
		}
		return
	}

	response.Success(c, result)
}
