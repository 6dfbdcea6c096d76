package handlers

import (
	"net/http"

	"hrbridge/middleware"
	"hrbridge/models"
	"hrbridge/services/assessment"
	"hrbridge/utils"

	"github.com/gin-gonic/gin"
)

// AssessmentHandler exposes the employee self-assessment endpoints.
type AssessmentHandler struct {
	Service assessment.Service
}

// NewAssessmentHandler constructs an AssessmentHandler.
func NewAssessmentHandler(svc assessment.Service) *AssessmentHandler {
	return &AssessmentHandler{Service: svc}
}

func (h *AssessmentHandler) Submit(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req models.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	a, err := h.Service.Submit(c.Request.Context(), p, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AssessmentHandler) ListMine(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	out, err := h.Service.ListMine(c.Request.Context(), p)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
