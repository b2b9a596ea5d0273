package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/ridetiles/internal/models"
	"github.com/jengzang/ridetiles/internal/service"
	"github.com/jengzang/ridetiles/pkg/response"
)

// TrackHandler handles HTTP requests for tracks
type TrackHandler struct {
	trackService *service.TrackService
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(trackService *service.TrackService) *TrackHandler {
	return &TrackHandler{
		trackService: trackService,
	}
}

// CreateTrack handles POST /api/v1/tracks
func (h *TrackHandler) CreateTrack(c *gin.Context) {
	var req models.CreateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	track, err := h.trackService.CreateTrack(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Created(c, track)
}

// GetTracks handles GET /api/v1/tracks
func (h *TrackHandler) GetTracks(c *gin.Context) {
	var filter models.TrackFilter

	// Parse query parameters
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.trackService.GetTracks(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, result)
}

// GetTrackByID handles GET /api/v1/tracks/:id
func (h *TrackHandler) GetTrackByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid track ID")
		return
	}

	track, err := h.trackService.GetTrackByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, track)
}
