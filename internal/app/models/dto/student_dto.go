package dto

import (
	"strings"
	"time"

	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/pkg/helpers"
)

// StudentRequest represents a student record as submitted by the form.
// Optional fields are pointers; blank strings are treated as absent.
type StudentRequest struct {
	StudentID     string  `json:"studentId" validate:"required,studentid"`
	Name          string  `json:"name" validate:"required,max=100"`
	Gender        *string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Age           *int    `json:"age" validate:"omitempty,gt=0,lt=150"`
	Email         *string `json:"email" validate:"omitempty,email,max=100"`
	Contact       *string `json:"contact" validate:"omitempty,contact"`
	AdmissionDate *string `json:"admissionDate" validate:"omitempty,datetime=2006-01-02"`
	RoomNo        *string `json:"roomNo" validate:"omitempty,roomno"`
}

// Normalize trims every field and turns blank optionals into nil.
func (r *StudentRequest) Normalize() {
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.Name = strings.TrimSpace(r.Name)
	r.Gender = helpers.NullIfEmpty(r.Gender)
	r.Email = helpers.NullIfEmpty(r.Email)
	if r.Email != nil {
		lower := strings.ToLower(*r.Email)
		r.Email = &lower
	}
	r.Contact = helpers.NullIfEmpty(r.Contact)
	r.AdmissionDate = helpers.NullIfEmpty(r.AdmissionDate)
	r.RoomNo = helpers.NullIfEmpty(r.RoomNo)
}

// ToModel converts a validated request into a student model
func (r *StudentRequest) ToModel() (*models.Student, error) {
	student := &models.Student{
		StudentID: r.StudentID,
		Name:      r.Name,
		Gender:    r.Gender,
		Age:       r.Age,
		Email:     r.Email,
		Contact:   r.Contact,
		RoomNo:    r.RoomNo,
	}
	if r.AdmissionDate != nil {
		d, err := helpers.ParseDate(*r.AdmissionDate)
		if err != nil {
			return nil, err
		}
		student.AdmissionDate = &d
	}
	return student, nil
}

// StudentResponse represents a student with calendar dates as strings
type StudentResponse struct {
	StudentID     string  `json:"studentId"`
	Name          string  `json:"name"`
	Gender        *string `json:"gender"`
	Age           *int    `json:"age"`
	Email         *string `json:"email"`
	Contact       *string `json:"contact"`
	AdmissionDate *string `json:"admissionDate" copier:"-"`
	RoomNo        *string `json:"roomNo"`
}

// NewStudentResponse maps a student model onto its public shape
func NewStudentResponse(student *models.Student) StudentResponse {
	var resp StudentResponse
	if student == nil {
		return resp
	}
	copyFields(&resp, student)
	resp.AdmissionDate = formatDatePtr(student.AdmissionDate)
	return resp
}

// NewStudentResponses maps a slice of students, never returning nil
func NewStudentResponses(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s))
	}
	return out
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := helpers.FormatDate(*t)
	return &s
}
