package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/repositories"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/validation"
)

// PaymentService records rent payments
type PaymentService struct {
	paymentRepo *repositories.PaymentRepository
	studentRepo *repositories.StudentRepository
	logger      zerolog.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo *repositories.PaymentRepository,
	studentRepo *repositories.StudentRepository,
	logger zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// AddPayment stores a payment and returns its id. Rooms are not touched.
func (s *PaymentService) AddPayment(ctx context.Context, req *dto.CreatePaymentRequest) (int64, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return 0, err
	}

	payment, err := req.ToModel()
	if err != nil {
		return 0, apperrors.NewValidationError(err.Error())
	}

	exists, err := s.studentRepo.ExistsByID(ctx, req.StudentID)
	if err != nil {
		s.logger.Error().Err(err).Str("studentID", req.StudentID).Msg("Error checking student for payment")
		return 0, err
	}
	if !exists {
		return 0, apperrors.ErrStudentNotFound
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		s.logger.Warn().Err(err).Str("studentID", req.StudentID).Msg("Payment not recorded")
		return 0, err
	}

	s.logger.Info().
		Int64("paymentID", payment.ID).
		Str("studentID", req.StudentID).
		Float64("amount", payment.Amount).
		Msg("Payment recorded")
	return payment.ID, nil
}

// ListPayments returns the payment history, newest first
func (s *PaymentService) ListPayments(ctx context.Context) ([]*models.PaymentHistoryEntry, error) {
	entries, err := s.paymentRepo.ListHistory(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing payments")
		return []*models.PaymentHistoryEntry{}, err
	}
	return entries, nil
}
