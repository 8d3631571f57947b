package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"datacenter-inventory/internal/middleware"
	"datacenter-inventory/internal/usecase/rack"
	appErrors "datacenter-inventory/pkg/errors"
	"datacenter-inventory/pkg/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RackHandler struct {
	service *rack.Service
}

func NewRackHandler(service *rack.Service) *RackHandler {
	return &RackHandler{service: service}
}

func (h *RackHandler) RegisterRoutes(router *gin.RouterGroup) {
	racks := router.Group("/racks")
	{
		racks.GET("", h.ListRacks)
		racks.GET("/export", h.Export)
		racks.GET("/:id", h.GetRack)
		racks.GET("/:id/availability", h.Availability)
		racks.GET("/:id/stats", h.Statistics)
	}
}

func (h *RackHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	racks := router.Group("/racks")
	{
		racks.POST("", h.CreateRack)
		racks.POST("/:id/units", h.InstallDevice)
		racks.DELETE("/:id/devices/:deviceId", h.UninstallDevice)
	}
	router.POST("/moves", h.MoveDevice)
}

func (h *RackHandler) ListRacks(c *gin.Context) {
	var filter rack.RackFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, "Invalid query parameters", err)
		return
	}

	racks, err := h.service.ListRacks(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Racks retrieved successfully", racks)
}

func (h *RackHandler) GetRack(c *gin.Context) {
	detail, err := h.service.GetRack(c.Request.Context(), utils.SanitizeIdentifier(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rack retrieved successfully", detail)
}

func (h *RackHandler) Availability(c *gin.Context) {
	size, err := strconv.Atoi(c.DefaultQuery("size", "1"))
	if err != nil {
		respondError(c, appErrors.NewAppError(appErrors.CodeInvalidSize, "Size must be a whole number", err).
			WithDetail("size", c.Query("size")))
		return
	}

	resp, err := h.service.Availability(c.Request.Context(), utils.SanitizeIdentifier(c.Param("id")), size)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Available positions retrieved successfully", resp)
}

func (h *RackHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context(), utils.SanitizeIdentifier(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rack statistics retrieved successfully", stats)
}

// Export streams every rack as an .xlsx workbook. The document is rendered
// into memory first so a failure can still be reported as JSON.
func (h *RackHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.ExportWorkbook(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}

	filename := "racks-" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *RackHandler) CreateRack(c *gin.Context) {
	var req rack.CreateRackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "Invalid request body", err)
		return
	}
	req.Actor = middleware.GetUsername(c)

	summary, err := h.service.CreateRack(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Rack created successfully", summary)
}

func (h *RackHandler) InstallDevice(c *gin.Context) {
	var req rack.InstallDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "Invalid request body", err)
		return
	}
	req.Actor = middleware.GetUsername(c)

	placement, err := h.service.InstallDevice(c.Request.Context(), utils.SanitizeIdentifier(c.Param("id")), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Device installed successfully", placement)
}

func (h *RackHandler) UninstallDevice(c *gin.Context) {
	var req rack.UninstallDeviceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, "Invalid query parameters", err)
		return
	}
	req.Actor = middleware.GetUsername(c)

	placement, err := h.service.UninstallDevice(c.Request.Context(),
		utils.SanitizeIdentifier(c.Param("id")),
		utils.SanitizeIdentifier(c.Param("deviceId")),
		&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device uninstalled successfully", placement)
}

func (h *RackHandler) MoveDevice(c *gin.Context) {
	var req rack.MoveDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "Invalid request body", err)
		return
	}
	req.Actor = middleware.GetUsername(c)

	moved, err := h.service.MoveDevice(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device moved successfully", moved)
}
