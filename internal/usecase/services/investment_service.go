package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/invest-account-service/internal/adapter/http/models"
	"github.com/api-sage/invest-account-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/invest-account-service/internal/commons"
	"github.com/api-sage/invest-account-service/internal/domain"
	"github.com/api-sage/invest-account-service/internal/logger"
)

type InvestmentService struct {
	userRepo repo_interfaces.UserRepository
	now      func() time.Time
}

func NewInvestmentService(userRepo repo_interfaces.UserRepository) *InvestmentService {
	return &InvestmentService{userRepo: userRepo, now: time.Now}
}

// WithClock overrides the time source. Accrual math depends on elapsed days,
// so tests pin it.
func (s *InvestmentService) WithClock(now func() time.Time) *InvestmentService {
	s.now = now
	return s
}

// Invest commits funds into a plan: the plan record is appended together with
// one completed ledger transaction debiting the amount.
func (s *InvestmentService) Invest(ctx context.Context, email string, req models.InvestRequest) (commons.Response[models.InvestmentResponse], error) {
	logger.Info("investment service invest request", logger.Fields{
		"email":    email,
		"planName": req.PlanName,
		"amount":   req.Amount,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.InvestmentResponse]("validation failed", err.Error()), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	expectedReturn, _ := decimal.NewFromString(strings.TrimSpace(req.ExpectedReturn))
	planName := strings.TrimSpace(req.PlanName)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.InvestmentResponse]("user not found"), err
		}
		return commons.ErrorResponse[models.InvestmentResponse]("failed to open investment", "Unable to open investment right now"), err
	}

	if user.Balance().LessThan(amount) {
		return commons.ErrorResponse[models.InvestmentResponse]("insufficient balance"), commons.ErrInsufficientBalance
	}

	start := s.now().UTC()
	duration := decimal.NewFromInt(int64(req.DurationDays))
	inv := domain.Investment{
		ID:             uuid.NewString(),
		UserEmail:      user.Email,
		PlanName:       planName,
		Amount:         amount,
		Currency:       user.Currency,
		DurationDays:   req.DurationDays,
		ExpectedReturn: expectedReturn,
		Status:         domain.InvestmentStatusActive,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, req.DurationDays),
		DailyProfit:    amount.Mul(expectedReturn).Div(decimal.NewFromInt(100)).Div(duration).Round(8),
	}

	// The debit goes in first: if the plan append fails after it, the funds
	// stay reserved instead of an active plan running on an overstated balance.
	txn := domain.Transaction{
		ID:          uuid.NewString(),
		UserEmail:   user.Email,
		Kind:        domain.TransactionKindInvestment,
		Amount:      amount,
		Currency:    user.Currency,
		Status:      domain.TransactionStatusCompleted,
		Description: fmt.Sprintf("Investment in %s", planName),
		Details:     map[string]string{"investmentId": inv.ID},
		CreatedAt:   start,
	}
	if _, err := s.userRepo.AppendTransaction(ctx, user.Email, txn); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.InvestmentResponse]("user not found"), err
		}
		return commons.ErrorResponse[models.InvestmentResponse]("failed to open investment", "Unable to open investment right now"), err
	}

	created, err := s.userRepo.AppendInvestment(ctx, user.Email, inv)
	if err != nil {
		return commons.ErrorResponse[models.InvestmentResponse]("failed to open investment", "Unable to open investment right now"), err
	}

	return commons.SuccessResponse("investment opened successfully", models.NewInvestmentResponse(created)), nil
}

func (s *InvestmentService) Investments(ctx context.Context, email string) (commons.Response[[]models.InvestmentResponse], error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.InvestmentResponse]("user not found"), err
		}
		return commons.ErrorResponse[[]models.InvestmentResponse]("failed to list investments", "Unable to list investments right now"), err
	}

	return commons.SuccessResponse("investments fetched successfully", models.NewInvestmentResponses(user.Investments)), nil
}

func (s *InvestmentService) AllInvestments(ctx context.Context) (commons.Response[[]models.InvestmentResponse], error) {
	investments, err := s.userRepo.ListInvestments(ctx)
	if err != nil {
		return commons.ErrorResponse[[]models.InvestmentResponse]("failed to list investments", "Unable to list investments right now"), err
	}

	return commons.SuccessResponse("investments fetched successfully", models.NewInvestmentResponses(investments)), nil
}

// AccrueProfits credits one profit transaction per elapsed unpaid day of each
// active plan, capped at the plan duration, and completes plans whose end
// date has passed. Paid days are reconciled from the ledger itself, so a
// retry after a partial write never re-credits a day.
func (s *InvestmentService) AccrueProfits(ctx context.Context, email string) (commons.Response[models.AccrualResponse], error) {
	logger.Info("investment service accrue profits request", logger.Fields{
		"email": email,
	})

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccrualResponse]("user not found"), err
		}
		return commons.ErrorResponse[models.AccrualResponse]("failed to accrue profits", "Unable to accrue profits right now"), err
	}

	now := s.now().UTC()
	payments := 0
	completed := 0
	accrued := decimal.Zero

	for _, inv := range user.Investments {
		if inv.Status != domain.InvestmentStatusActive {
			continue
		}

		elapsedDays := int(now.Sub(inv.StartDate).Hours() / 24)
		if elapsedDays > inv.DurationDays {
			elapsedDays = inv.DurationDays
		}

		// The stored counter can lag the ledger when a previous run failed
		// between appending a profit row and persisting the watermark.
		if paid := paidProfitDays(user.Transactions, inv.ID); paid > inv.ProfitDaysPaid {
			inv.ProfitDaysPaid = paid
		}

		changed := false
		for day := inv.ProfitDaysPaid + 1; day <= elapsedDays; day++ {
			txn := domain.Transaction{
				ID:          uuid.NewString(),
				UserEmail:   user.Email,
				Kind:        domain.TransactionKindProfit,
				Amount:      inv.DailyProfit,
				Currency:    inv.Currency,
				Status:      domain.TransactionStatusCompleted,
				Description: fmt.Sprintf("Daily profit from %s (day %d of %d)", inv.PlanName, day, inv.DurationDays),
				Details:     map[string]string{"investmentId": inv.ID},
				CreatedAt:   now,
			}
			if _, err := s.userRepo.AppendTransaction(ctx, user.Email, txn); err != nil {
				return commons.ErrorResponse[models.AccrualResponse]("failed to accrue profits", "Unable to accrue profits right now"), err
			}
			inv.ProfitDaysPaid = day
			accrued = accrued.Add(inv.DailyProfit)
			payments++
			changed = true
		}

		if !now.Before(inv.EndDate) {
			inv.Status = domain.InvestmentStatusCompleted
			completed++
			changed = true
		}

		if changed {
			if err := s.userRepo.UpdateInvestment(ctx, user.Email, inv); err != nil {
				return commons.ErrorResponse[models.AccrualResponse]("failed to accrue profits", "Unable to accrue profits right now"), err
			}
		}
	}

	response := models.AccrualResponse{
		ProfitPayments: payments,
		AccruedAmount:  accrued.StringFixed(2),
		CompletedPlans: completed,
	}

	return commons.SuccessResponse("profits accrued successfully", response), nil
}

func paidProfitDays(txns []domain.Transaction, investmentID string) int {
	days := 0
	for _, txn := range txns {
		if txn.Kind == domain.TransactionKindProfit && txn.Details["investmentId"] == investmentID {
			days++
		}
	}
	return days
}
