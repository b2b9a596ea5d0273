package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/ridetiles/internal/models"
	"github.com/jengzang/ridetiles/internal/service"
	"github.com/jengzang/ridetiles/internal/tiles"
	"github.com/jengzang/ridetiles/pkg/response"
)

// TileHandler handles HTTP requests for tile coverage
type TileHandler struct {
	tileService *service.TileService
}

// NewTileHandler creates a new tile handler
func NewTileHandler(tileService *service.TileService) *TileHandler {
	return &TileHandler{tileService: tileService}
}

// Analyze handles POST /api/v1/tiles/analyze
func (h *TileHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.tileService.Analyze(req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, report)
}

// RiderReport handles GET /api/v1/tiles/riders/:rider/report
func (h *TileHandler) RiderReport(c *gin.Context) {
	var q models.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	report, err := h.tileService.ComputeReport(c.Request.Context(), c.Param("rider"), q)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, report)
}

// BatchReports handles POST /api/v1/tiles/reports
func (h *TileHandler) BatchReports(c *gin.Context) {
	var req models.BatchReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	reports, err := h.tileService.ComputeRiders(c.Request.Context(), req.Riders, req.Query())
	if err != nil {
		fail(c, err)
		return
	}

	response.Created(c, reports)
}

// GetReport handles GET /api/v1/tiles/reports/:id
func (h *TileHandler) GetReport(c *gin.Context) {
	report, err := h.tileService.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, report)
}

// GetReportGeoJSON handles GET /api/v1/tiles/reports/:id/geojson.
// The body is a bare FeatureCollection so map clients can load it directly.
func (h *TileHandler) GetReportGeoJSON(c *gin.Context) {
	report, err := h.tileService.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	body, err := tiles.ReportGeoJSON(report.Report).MarshalJSON()
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}

// Cell handles GET /api/v1/tiles/cell?lat=&lon=&zoom=
func (h *TileHandler) Cell(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid lat parameter")
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid lon parameter")
		return
	}
	zoom, err := strconv.Atoi(c.DefaultQuery("zoom", "0"))
	if err != nil {
		response.BadRequest(c, "Invalid zoom parameter")
		return
	}

	cell, err := h.tileService.Cell(lat, lon, zoom)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, cell)
}
