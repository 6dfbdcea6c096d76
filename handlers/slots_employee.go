package handlers

import (
	"net/http"

	userRepo "hrbridge/database/repository/user"
	"hrbridge/middleware"
	"hrbridge/services/booking"
	"hrbridge/utils"

	"github.com/gin-gonic/gin"
)

// EmployeeSlotHandler exposes the employee-side booking endpoints.
type EmployeeSlotHandler struct {
	Engine booking.BookingEngine
	Users  userRepo.UserRepository
}

// NewEmployeeSlotHandler constructs an EmployeeSlotHandler.
func NewEmployeeSlotHandler(engine booking.BookingEngine, users userRepo.UserRepository) *EmployeeSlotHandler {
	return &EmployeeSlotHandler{Engine: engine, Users: users}
}

func (h *EmployeeSlotHandler) ListAvailable(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	q := booking.AvailableQuery{
		HRUsername:       c.Query("hr_username"),
		SelfAssessmentID: c.Query("self_assessment_id"),
	}

	slots, err := h.Engine.AvailableSlots(c.Request.Context(), p, q)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSlotResponses(c.Request.Context(), h.Users, slots))
}

func (h *EmployeeSlotHandler) Book(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	slot, err := h.Engine.Book(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	cache := make(map[string]string)
	c.JSON(http.StatusOK, toSlotResponse(c.Request.Context(), h.Users, cache, *slot))
}

func (h *EmployeeSlotHandler) Unbook(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	slot, err := h.Engine.Unbook(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	cache := make(map[string]string)
	c.JSON(http.StatusOK, toSlotResponse(c.Request.Context(), h.Users, cache, *slot))
}

func (h *EmployeeSlotHandler) MyBookings(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	slots, err := h.Engine.MyBookedSlots(c.Request.Context(), p)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSlotResponses(c.Request.Context(), h.Users, slots))
}
