package handlers

import (
	"net/http"
	"strconv"

	userRepo "hrbridge/database/repository/user"
	"hrbridge/middleware"
	"hrbridge/models"
	"hrbridge/services/availability"
	"hrbridge/utils"

	"github.com/gin-gonic/gin"
)

// AdminSlotHandler exposes the HR-side slot lifecycle endpoints.
type AdminSlotHandler struct {
	Service availability.Service
	Users   userRepo.UserRepository
}

// NewAdminSlotHandler constructs an AdminSlotHandler.
func NewAdminSlotHandler(svc availability.Service, users userRepo.UserRepository) *AdminSlotHandler {
	return &AdminSlotHandler{Service: svc, Users: users}
}

func (h *AdminSlotHandler) CreateSlot(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req models.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	slot, err := h.Service.CreateSlot(c.Request.Context(), p, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	cache := make(map[string]string)
	c.JSON(http.StatusCreated, toSlotResponse(c.Request.Context(), h.Users, cache, *slot))
}

func (h *AdminSlotHandler) ListSlots(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	q := availability.ListQuery{
		HRUsername: c.Query("hr_username"),
		DateFrom:   c.Query("start_date"),
		DateTo:     c.Query("end_date"),
	}
	if raw := c.Query("is_booked"); raw != "" {
		booked, err := strconv.ParseBool(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "is_booked must be a boolean")
			return
		}
		q.IsBooked = &booked
	}

	slots, err := h.Service.ListSlots(c.Request.Context(), p, q)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSlotResponses(c.Request.Context(), h.Users, slots))
}

func (h *AdminSlotHandler) GetSlot(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	slot, err := h.Service.GetSlot(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	cache := make(map[string]string)
	c.JSON(http.StatusOK, toSlotResponse(c.Request.Context(), h.Users, cache, *slot))
}

func (h *AdminSlotHandler) UpdateSlot(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var patch models.SlotPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	slot, err := h.Service.UpdateSlot(c.Request.Context(), p, c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	cache := make(map[string]string)
	c.JSON(http.StatusOK, toSlotResponse(c.Request.Context(), h.Users, cache, *slot))
}

func (h *AdminSlotHandler) DeleteSlot(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	if err := h.Service.DeleteSlot(c.Request.Context(), p, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
