package dto

import (
	"strings"

	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/pkg/helpers"
)

// CreatePaymentRequest represents a payment to record
type CreatePaymentRequest struct {
	StudentID   string               `json:"studentId" validate:"required"`
	Amount      float64              `json:"amount" validate:"required,gt=0"`
	PaymentDate string               `json:"paymentDate" validate:"required,datetime=2006-01-02"`
	Method      models.PaymentMethod `json:"method" validate:"omitempty,oneof=Cash UPI Card Other"`
}

// Normalize trims input and applies the default method.
func (r *CreatePaymentRequest) Normalize() {
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.PaymentDate = strings.TrimSpace(r.PaymentDate)
	if r.Method == "" {
		r.Method = models.PaymentCash
	}
}

// ToModel converts a validated request into a payment model
func (r *CreatePaymentRequest) ToModel() (*models.Payment, error) {
	date, err := helpers.ParseDate(r.PaymentDate)
	if err != nil {
		return nil, err
	}
	studentID := r.StudentID
	return &models.Payment{
		StudentID:   &studentID,
		Amount:      r.Amount,
		PaymentDate: date,
		Method:      r.Method,
	}, nil
}

// PaymentHistoryResponse is one line of the payment history
type PaymentHistoryResponse struct {
	PaymentID   int64                `json:"paymentId"`
	StudentID   *string              `json:"studentId"`
	StudentName *string              `json:"studentName"`
	Amount      float64              `json:"amount"`
	PaymentDate string               `json:"paymentDate"`
	Method      models.PaymentMethod `json:"method"`
}

// NewPaymentHistoryResponses maps history entries, never returning nil
func NewPaymentHistoryResponses(entries []*models.PaymentHistoryEntry) []PaymentHistoryResponse {
	out := make([]PaymentHistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, PaymentHistoryResponse{
			PaymentID:   e.PaymentID,
			StudentID:   e.StudentID,
			StudentName: e.StudentName,
			Amount:      e.Amount,
			PaymentDate: helpers.FormatDate(e.PaymentDate),
			Method:      e.Method,
		})
	}
	return out
}
