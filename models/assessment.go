package models

import "time"

// SelfAssessment is an employee-authored quarterly performance review record.
// A meeting slot may be linked 1:1 to an assessment, restricting who can book it.
type SelfAssessment struct {
	ID            string    `bson:"id" json:"id"`
	EmployeeID    string    `bson:"employee_id" json:"employee_id"`
	QuarterNumber int       `bson:"quarter_number" json:"quarter_number"`
	Year          int       `bson:"year" json:"year"`
	Achievements  string    `bson:"achievements,omitempty" json:"achievements,omitempty"`
	Challenges    string    `bson:"challenges,omitempty" json:"challenges,omitempty"`
	Goals         string    `bson:"goals,omitempty" json:"goals,omitempty"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// SelfAssessment review states.
const (
	AssessmentStatusPending   = "Pending HR Review"
	AssessmentStatusCompleted = "Completed"
)

// CreateAssessmentRequest is the employee payload for submitting an assessment.
type CreateAssessmentRequest struct {
	QuarterNumber int    `json:"quarter_number" binding:"required,min=1,max=4"`
	Year          int    `json:"year" binding:"required"`
	Achievements  string `json:"achievements,omitempty"`
	Challenges    string `json:"challenges,omitempty"`
	Goals         string `json:"goals,omitempty"`
}
