package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cybertech-18/lakshpath-backend/internal/http/response"
	"github.com/cybertech-18/lakshpath-backend/internal/modules/scoring"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
	"github.com/cybertech-18/lakshpath-backend/internal/services"
)

type AssessmentHandler struct {
	assessments services.AssessmentService
}

func NewAssessmentHandler(assessments services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments}
}

type submitRequest struct {
	Answers scoring.Answers `json:"answers"`
	UserID  string          `json:"user_id"`
	Email   string          `json:"email"`
	Name    string          `json:"name"`
	Demo    bool            `json:"demo"`
}

// POST /api/assessments
// body: { "answers": {...}, "user_id"?: "...", "email"?: "...", "name"?: "...", "demo"?: bool }
func (h *AssessmentHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	in := services.SubmitInput{
		Answers: req.Answers,
		Email:   req.Email,
		Name:    req.Name,
		Demo:    req.Demo,
	}
	if raw := strings.TrimSpace(req.UserID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondAPIError(c, apierr.Validation("invalid user_id"))
			return
		}
		in.UserID = &id
	}

	res, err := h.assessments.Submit(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, res)
}
