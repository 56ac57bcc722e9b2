package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cybertech-18/lakshpath-backend/internal/http/response"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
	"github.com/cybertech-18/lakshpath-backend/internal/services"
)

type MilestoneHandler struct {
	milestones services.MilestoneService
}

func NewMilestoneHandler(milestones services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestones: milestones}
}

// PATCH /api/milestones/:id/status
// body: { "status": "PENDING" | "IN_PROGRESS" | "COMPLETED" }
func (h *MilestoneHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	res, err := h.milestones.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}
