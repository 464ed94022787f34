package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"codehunt/giveaway/internal/model"
	"codehunt/giveaway/internal/service"
	"codehunt/giveaway/pkg/response"
)

type ParticipantHandler struct {
	registryService   service.RegistryService
	entryService      service.EntryService
	admissionService  service.AdmissionService
	preferenceService service.PreferenceService
}

func NewParticipantHandler(
	registryService service.RegistryService,
	entryService service.EntryService,
	admissionService service.AdmissionService,
	preferenceService service.PreferenceService,
) *ParticipantHandler {
	return &ParticipantHandler{
		registryService:   registryService,
		entryService:      entryService,
		admissionService:  admissionService,
		preferenceService: preferenceService,
	}
}

type EnsureParticipantRequest struct {
	ExternalID  int64  `json:"external_id" binding:"required"`
	DisplayName string `json:"display_name"`
	Handle      string `json:"handle"`
}

// Ensure registers first contact (or refreshes display fields) and returns
// the participant's permanent code.
func (h *ParticipantHandler) Ensure(c *gin.Context) {
	var req EnsureParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	code, err := h.registryService.EnsureParticipant(
		c.Request.Context(), req.ExternalID, req.DisplayName, req.Handle,
	)
	if err != nil {
		response.InternalError(c, "failed to register participant")
		return
	}

	response.Success(c, gin.H{"participant_code": code})
}

func (h *ParticipantHandler) GetEntries(c *gin.Context) {
	externalID, err := parseExternalID(c)
	if err != nil {
		response.BadRequest(c, "invalid external id")
		return
	}

	entries, err := h.entryService.GetEntriesFor(c.Request.Context(), externalID)
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, "failed to list entries")
		return
	}

	response.Success(c, entries)
}

// RecheckAdmission re-invokes the gate, e.g. after the participant confirms
// they subscribed to the required channel.
func (h *ParticipantHandler) RecheckAdmission(c *gin.Context) {
	externalID, err := parseExternalID(c)
	if err != nil {
		response.BadRequest(c, "invalid external id")
		return
	}

	admitted := h.admissionService.IsAdmitted(c.Request.Context(), externalID)
	response.Success(c, gin.H{"admitted": admitted})
}

func (h *ParticipantHandler) GetPreferences(c *gin.Context) {
	externalID, err := parseExternalID(c)
	if err != nil {
		response.BadRequest(c, "invalid external id")
		return
	}

	prefs, err := h.preferenceService.Get(c.Request.Context(), externalID)
	if err != nil {
		response.InternalError(c, "failed to get preferences")
		return
	}

	response.Success(c, prefs)
}

func (h *ParticipantHandler) TogglePreference(c *gin.Context) {
	externalID, err := parseExternalID(c)
	if err != nil {
		response.BadRequest(c, "invalid external id")
		return
	}

	flag := model.PreferenceFlag(c.Param("flag"))
	prefs, err := h.preferenceService.Toggle(c.Request.Context(), externalID, flag)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPreference) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "failed to toggle preference")
		return
	}

	response.Success(c, prefs)
}
