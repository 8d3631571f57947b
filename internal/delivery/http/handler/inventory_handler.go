package handler

import (
	"net/http"

	"datacenter-inventory/internal/middleware"
	"datacenter-inventory/internal/usecase/inventory"
	"datacenter-inventory/pkg/utils"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	service *inventory.Service
}

func NewInventoryHandler(service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/datacenters", h.ListDataCenters)
	router.GET("/search", h.Search)

	devices := router.Group("/devices")
	{
		devices.GET("", h.ListDevices)
		devices.GET("/:id", h.GetDevice)
	}

	ips := router.Group("/ips")
	{
		ips.GET("", h.ListIPs)
		ips.GET("/:id", h.GetIP)
	}

	router.GET("/subnets", h.ListSubnets)

	services := router.Group("/services")
	{
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)
	}

	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/summary", h.DashboardSummary)
		dashboard.GET("/user-summary", h.UserSummary)
	}
}

func (h *InventoryHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.PUT("/devices/:id/status", h.UpdateDeviceStatus)
	router.PUT("/ips/:id/status", h.UpdateIPStatus)
}

func (h *InventoryHandler) ListDataCenters(c *gin.Context) {
	dcs, err := h.service.ListDataCenters(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Data centers retrieved successfully", dcs)
}

func (h *InventoryHandler) ListDevices(c *gin.Context) {
	var filter inventory.DeviceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, "Invalid query parameters", err)
		return
	}

	devices, err := h.service.ListDevices(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Devices retrieved successfully", devices)
}

func (h *InventoryHandler) GetDevice(c *gin.Context) {
	device, err := h.service.GetDevice(c.Request.Context(), utils.SanitizeIdentifier(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device retrieved successfully", device)
}

func (h *InventoryHandler) UpdateDeviceStatus(c *gin.Context) {
	var req inventory.UpdateDeviceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "Invalid request body", err)
		return
	}
	req.Actor = middleware.GetUsername(c)

	device, err := h.service.UpdateDeviceStatus(c.Request.Context(), utils.SanitizeIdentifier(c.Param("id")), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device status updated successfully", device)
}

func (h *InventoryHandler) ListIPs(c *gin.Context) {
	var filter inventory.IPFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, "Invalid query parameters", err)
		return
	}

	ips, err := h.service.ListIPs(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "IP addresses retrieved successfully", ips)
}

func (h *InventoryHandler) GetIP(c *gin.Context) {
	ip, err := h.service.GetIP(c.Request.Context(), utils.SanitizeIdentifier(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "IP address retrieved successfully", ip)
}

func (h *InventoryHandler) UpdateIPStatus(c *gin.Context) {
	var req inventory.UpdateIPStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "Invalid request body", err)
		return
	}
	req.Actor = middleware.GetUsername(c)

	ip, err := h.service.UpdateIPStatus(c.Request.Context(), utils.SanitizeIdentifier(c.Param("id")), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "IP address status updated successfully", ip)
}

func (h *InventoryHandler) ListSubnets(c *gin.Context) {
	subnets, err := h.service.ListSubnets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subnets retrieved successfully", subnets)
}

func (h *InventoryHandler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Services retrieved successfully", services)
}

func (h *InventoryHandler) GetService(c *gin.Context) {
	service, err := h.service.GetService(c.Request.Context(), utils.SanitizeIdentifier(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service retrieved successfully", service)
}

func (h *InventoryHandler) Search(c *gin.Context) {
	var req inventory.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, "Invalid query parameters", err)
		return
	}

	results, err := h.service.Search(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Search completed successfully", results)
}

func (h *InventoryHandler) DashboardSummary(c *gin.Context) {
	summary, err := h.service.DashboardSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard summary retrieved successfully", summary)
}

func (h *InventoryHandler) UserSummary(c *gin.Context) {
	summary, err := h.service.UserSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User summary retrieved successfully", summary)
}
