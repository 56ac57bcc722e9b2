package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cybertech-18/lakshpath-backend/internal/http/response"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
	"github.com/cybertech-18/lakshpath-backend/internal/services"
)

type UserHandler struct {
	plans    services.CareerPlanService
	insights services.InsightService
	progress services.ProgressService
}

func NewUserHandler(plans services.CareerPlanService, insights services.InsightService, progress services.ProgressService) *UserHandler {
	return &UserHandler{plans: plans, insights: insights, progress: progress}
}

// GET /api/users/:id/plan
func (h *UserHandler) GetPlan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	plan, err := h.plans.GetLatestPlan(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, plan)
}

// GET /api/users/:id/insights?limit=20
func (h *UserHandler) ListInsights(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondAPIError(c, apierr.Validation("limit must be an integer"))
			return
		}
		limit = n
	}
	rows, err := h.insights.ListForUser(c.Request.Context(), id, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"insights": rows})
}

// GET /api/users/:id/progress
func (h *UserHandler) GetProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rep, err := h.progress.Trend(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rep)
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil || id == uuid.Nil {
		response.RespondAPIError(c, apierr.Validation("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}
