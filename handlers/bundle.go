package handlers

import (
	userRepo "hrbridge/database/repository/user"
)

// HandlerBundle groups the handlers and shared dependencies the router needs.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Auth          *AuthHandler
	AdminSlots    *AdminSlotHandler
	EmployeeSlots *EmployeeSlotHandler
	Assessments   *AssessmentHandler
}
