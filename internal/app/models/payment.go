package models

import "time"

// PaymentMethod enumerates payments.method
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "Cash"
	PaymentUPI   PaymentMethod = "UPI"
	PaymentCard  PaymentMethod = "Card"
	PaymentOther PaymentMethod = "Other"
)

// Valid reports whether m is an accepted method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentCard, PaymentOther:
		return true
	}
	return false
}

// Payment defines the payment model based on the 'payments' table.
// Payments are append-only.
type Payment struct {
	ID          int64         `json:"paymentId" db:"payment_id"`
	StudentID   *string       `json:"studentId" db:"student_id"` // nil once the student is deleted
	Amount      float64       `json:"amount" db:"amount"`
	PaymentDate time.Time     `json:"paymentDate" db:"payment_date"`
	Method      PaymentMethod `json:"method" db:"method"`
}

// PaymentHistoryEntry is a payment joined to the paying student's name
type PaymentHistoryEntry struct {
	PaymentID   int64         `json:"paymentId"`
	StudentID   *string       `json:"studentId"`
	StudentName *string       `json:"studentName"`
	Amount      float64       `json:"amount"`
	PaymentDate time.Time     `json:"paymentDate"`
	Method      PaymentMethod `json:"method"`
}
