package assessment

import (
	"context"
	"errors"
	"fmt"

	assessmentRepo "hrbridge/database/repository/assessment"
	"hrbridge/models"

	"go.uber.org/zap"
)

// Service handles employee self-assessment submission and listing. Having at
// least one assessment on record is the precondition for booking a meeting.
type Service interface {
	Submit(ctx context.Context, p models.Principal, req models.CreateAssessmentRequest) (*models.SelfAssessment, error)
	ListMine(ctx context.Context, p models.Principal) ([]models.SelfAssessment, error)
}

// DefaultService is the production implementation.
type DefaultService struct {
	Repo   assessmentRepo.AssessmentRepository
	Logger *zap.Logger
}

func (s *DefaultService) Submit(ctx context.Context, p models.Principal, req models.CreateAssessmentRequest) (*models.SelfAssessment, error) {
	if p.Role != models.RoleEmployee {
		return nil, models.AuthorizationError{Reason: "only employees can submit self-assessments"}
	}
	if req.QuarterNumber < 1 || req.QuarterNumber > 4 {
		return nil, models.ValidationError{Reason: "quarter_number must be between 1 and 4"}
	}

	a := &models.SelfAssessment{
		EmployeeID:    p.ID,
		QuarterNumber: req.QuarterNumber,
		Year:          req.Year,
		Achievements:  req.Achievements,
		Challenges:    req.Challenges,
		Goals:         req.Goals,
		Status:        models.AssessmentStatusPending,
	}

	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, assessmentRepo.ErrDuplicate) {
			return nil, models.ConflictError{
				Reason: fmt.Sprintf("a self-assessment for Q%d %d already exists for you", req.QuarterNumber, req.Year),
			}
		}
		return nil, err
	}

	s.Logger.Info("self-assessment submitted",
		zap.String("assessmentId", a.ID),
		zap.String("employeeId", p.ID),
		zap.Int("quarter", a.QuarterNumber),
		zap.Int("year", a.Year))
	return a, nil
}

func (s *DefaultService) ListMine(ctx context.Context, p models.Principal) ([]models.SelfAssessment, error) {
	if p.Role != models.RoleEmployee {
		return nil, models.AuthorizationError{Reason: "staff review assessments through the admin endpoints"}
	}
	return s.Repo.ListByEmployee(ctx, p.ID)
}
