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

type PaymentService struct {
	userRepo repo_interfaces.UserRepository
}

func NewPaymentService(userRepo repo_interfaces.UserRepository) *PaymentService {
	return &PaymentService{userRepo: userRepo}
}

func (s *PaymentService) Deposit(ctx context.Context, email string, req models.DepositRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("payment service deposit request", logger.Fields{
		"email":  email,
		"amount": req.Amount,
		"method": req.Method,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	method := strings.TrimSpace(req.Method)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("user not found"), err
		}
		return commons.ErrorResponse[models.TransactionResponse]("failed to process deposit", "Unable to process deposit right now"), err
	}

	txn := domain.Transaction{
		ID:          uuid.NewString(),
		UserEmail:   user.Email,
		Kind:        domain.TransactionKindDeposit,
		Amount:      amount,
		Currency:    user.Currency,
		Status:      domain.TransactionStatusCompleted,
		Description: fmt.Sprintf("Deposit via %s", method),
		Details:     req.Details,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.userRepo.AppendTransaction(ctx, user.Email, txn)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("user not found"), err
		}
		return commons.ErrorResponse[models.TransactionResponse]("failed to process deposit", "Unable to process deposit right now"), err
	}

	return commons.SuccessResponse("deposit processed successfully", models.NewTransactionResponse(created)), nil
}

// Withdraw checks the ledger balance before recording the movement; a request
// beyond the available balance fails without appending anything.
func (s *PaymentService) Withdraw(ctx context.Context, email string, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("payment service withdraw request", logger.Fields{
		"email":  email,
		"amount": req.Amount,
		"method": req.Method,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	method := strings.TrimSpace(req.Method)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("user not found"), err
		}
		return commons.ErrorResponse[models.TransactionResponse]("failed to process withdrawal", "Unable to process withdrawal right now"), err
	}

	if user.Balance().LessThan(amount) {
		return commons.ErrorResponse[models.TransactionResponse]("insufficient balance"), commons.ErrInsufficientBalance
	}

	txn := domain.Transaction{
		ID:          uuid.NewString(),
		UserEmail:   user.Email,
		Kind:        domain.TransactionKindWithdrawal,
		Amount:      amount,
		Currency:    user.Currency,
		Status:      domain.TransactionStatusCompleted,
		Description: fmt.Sprintf("Withdrawal via %s", method),
		Details:     req.Details,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.userRepo.AppendTransaction(ctx, user.Email, txn)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("user not found"), err
		}
		return commons.ErrorResponse[models.TransactionResponse]("failed to process withdrawal", "Unable to process withdrawal right now"), err
	}

	return commons.SuccessResponse("withdrawal processed successfully", models.NewTransactionResponse(created)), nil
}

func (s *PaymentService) Transactions(ctx context.Context, email string) (commons.Response[[]models.TransactionResponse], error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.TransactionResponse]("user not found"), err
		}
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}

	return commons.SuccessResponse("transactions fetched successfully", models.NewTransactionResponses(user.Transactions)), nil
}

func (s *PaymentService) AllTransactions(ctx context.Context) (commons.Response[[]models.TransactionResponse], error) {
	transactions, err := s.userRepo.ListTransactions(ctx)
	if err != nil {
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}

	return commons.SuccessResponse("transactions fetched successfully", models.NewTransactionResponses(transactions)), nil
}

func (s *PaymentService) SetTransactionStatus(ctx context.Context, email string, req models.SetTransactionStatusRequest) (commons.Response[models.TransactionStatusResponse], error) {
	logger.Info("payment service set transaction status request", logger.Fields{
		"email":         email,
		"transactionId": req.TransactionID,
		"status":        req.Status,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionStatusResponse]("validation failed", err.Error()), err
	}

	status := domain.TransactionStatus(strings.TrimSpace(req.Status))
	if err := s.userRepo.UpdateTransactionStatus(ctx, email, strings.TrimSpace(req.TransactionID), status); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionStatusResponse]("transaction not found"), err
		}
		return commons.ErrorResponse[models.TransactionStatusResponse]("failed to update transaction", "Unable to update transaction right now"), err
	}

	response := models.TransactionStatusResponse{
		TransactionID: strings.TrimSpace(req.TransactionID),
		Status:        string(status),
	}

	return commons.SuccessResponse("transaction status updated successfully", response), nil
}
