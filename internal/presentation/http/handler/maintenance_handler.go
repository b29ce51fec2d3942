package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopkeeper-api/internal/application/service"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/response"
)

// MaintenanceHandler exposes the retention cleanup to admins
type MaintenanceHandler struct {
	maintenanceService *service.MaintenanceService
	defaults           service.CleanupOptions
}

// NewMaintenanceHandler creates a new maintenance handler. defaults holds the
// configured retention windows.
func NewMaintenanceHandler(maintenanceService *service.MaintenanceService, defaults service.CleanupOptions) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService, defaults: defaults}
}

// Storage counts the rows held in each table
func (h *MaintenanceHandler) Storage(c *gin.Context) {
	counts, err := h.maintenanceService.StorageSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Storage summary retrieved successfully", counts)
}

// Cleanup purges old records. It is a dry run unless ?dry_run=false is given.
func (h *MaintenanceHandler) Cleanup(c *gin.Context) {
	opts := h.defaults
	opts.DryRun = c.DefaultQuery("dry_run", "true") != "false"
	opts.InactiveProducts = c.Query("inactive_products") == "true"

	report, err := h.maintenanceService.Cleanup(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cleanup completed", report)
}
