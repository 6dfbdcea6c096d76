package assessment

import (
	"context"
	"testing"

	assessmentRepo "hrbridge/database/repository/assessment"
	"hrbridge/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAssessmentRepo struct {
	assessments map[string]models.SelfAssessment
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{assessments: make(map[string]models.SelfAssessment)}
}

func (f *fakeAssessmentRepo) Create(ctx context.Context, a *models.SelfAssessment) error {
	for _, existing := range f.assessments {
		if existing.EmployeeID == a.EmployeeID && existing.QuarterNumber == a.QuarterNumber && existing.Year == a.Year {
			return assessmentRepo.ErrDuplicate
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	f.assessments[a.ID] = *a
	return nil
}

func (f *fakeAssessmentRepo) GetByID(ctx context.Context, id string) (*models.SelfAssessment, error) {
	a, ok := f.assessments[id]
	if !ok {
		return nil, assessmentRepo.ErrNotFound
	}
	out := a
	return &out, nil
}

func (f *fakeAssessmentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]models.SelfAssessment, error) {
	out := []models.SelfAssessment{}
	for _, a := range f.assessments {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssessmentRepo) ExistsForEmployee(ctx context.Context, employeeID string) (bool, error) {
	for _, a := range f.assessments {
		if a.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

var employee = models.Principal{ID: "emp-1", Role: models.RoleEmployee}

func TestSubmitCreatesPendingAssessment(t *testing.T) {
	svc := &DefaultService{Repo: newFakeAssessmentRepo(), Logger: zap.NewNop()}

	got, err := svc.Submit(context.Background(), employee, models.CreateAssessmentRequest{
		QuarterNumber: 3,
		Year:          2026,
		Achievements:  "shipped the onboarding portal",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, employee.ID, got.EmployeeID)
	assert.Equal(t, models.AssessmentStatusPending, got.Status)
}

func TestSubmitOnePerQuarter(t *testing.T) {
	svc := &DefaultService{Repo: newFakeAssessmentRepo(), Logger: zap.NewNop()}
	req := models.CreateAssessmentRequest{QuarterNumber: 3, Year: 2026}

	_, err := svc.Submit(context.Background(), employee, req)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), employee, req)
	var conflict models.ConflictError
	require.ErrorAs(t, err, &conflict)

	// A different quarter for the same employee is fine.
	_, err = svc.Submit(context.Background(), employee, models.CreateAssessmentRequest{QuarterNumber: 4, Year: 2026})
	assert.NoError(t, err)
}

func TestSubmitValidatesQuarter(t *testing.T) {
	svc := &DefaultService{Repo: newFakeAssessmentRepo(), Logger: zap.NewNop()}

	_, err := svc.Submit(context.Background(), employee, models.CreateAssessmentRequest{QuarterNumber: 5, Year: 2026})
	var invalid models.ValidationError
	require.ErrorAs(t, err, &invalid)
}

func TestSubmitRejectsStaff(t *testing.T) {
	svc := &DefaultService{Repo: newFakeAssessmentRepo(), Logger: zap.NewNop()}

	_, err := svc.Submit(context.Background(), models.Principal{ID: "hr-1", Role: models.RoleAdmin},
		models.CreateAssessmentRequest{QuarterNumber: 1, Year: 2026})
	var authz models.AuthorizationError
	require.ErrorAs(t, err, &authz)
}

func TestListMineReturnsOwnOnly(t *testing.T) {
	repo := newFakeAssessmentRepo()
	svc := &DefaultService{Repo: repo, Logger: zap.NewNop()}

	_, err := svc.Submit(context.Background(), employee, models.CreateAssessmentRequest{QuarterNumber: 1, Year: 2026})
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), models.Principal{ID: "emp-2", Role: models.RoleEmployee},
		models.CreateAssessmentRequest{QuarterNumber: 1, Year: 2026})
	require.NoError(t, err)

	got, err := svc.ListMine(context.Background(), employee)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, employee.ID, got[0].EmployeeID)
}
