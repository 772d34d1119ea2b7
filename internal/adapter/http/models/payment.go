package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/invest-account-service/internal/domain"
)

type DepositRequest struct {
	Amount  string            `json:"amount"`
	Method  string            `json:"method"`
	Details map[string]string `json:"details,omitempty"`
}

func (r DepositRequest) Validate() error {
	var errs []string

	if err := validateAmount(r.Amount); err != nil {
		errs = append(errs, err.Error())
	}
	if strings.TrimSpace(r.Method) == "" {
		errs = append(errs, "method is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type WithdrawRequest struct {
	Amount  string            `json:"amount"`
	Method  string            `json:"method"`
	Details map[string]string `json:"details,omitempty"`
}

func (r WithdrawRequest) Validate() error {
	var errs []string

	if err := validateAmount(r.Amount); err != nil {
		errs = append(errs, err.Error())
	}
	if strings.TrimSpace(r.Method) == "" {
		errs = append(errs, "method is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type SetTransactionStatusRequest struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

func (r SetTransactionStatusRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.TransactionID) == "" {
		errs = append(errs, "transactionId is required")
	}
	switch domain.TransactionStatus(strings.TrimSpace(r.Status)) {
	case domain.TransactionStatusPending, domain.TransactionStatusCompleted, domain.TransactionStatusFailed:
	default:
		errs = append(errs, "status must be pending, completed or failed")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type TransactionResponse struct {
	ID          string            `json:"id"`
	UserEmail   string            `json:"userEmail"`
	Kind        string            `json:"kind"`
	Amount      string            `json:"amount"`
	Currency    string            `json:"currency"`
	Status      string            `json:"status"`
	Description string            `json:"description"`
	Details     map[string]string `json:"details,omitempty"`
	CreatedAt   string            `json:"createdAt"`
}

type TransactionStatusResponse struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

func NewTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID,
		UserEmail:   txn.UserEmail,
		Kind:        string(txn.Kind),
		Amount:      txn.Amount.StringFixed(2),
		Currency:    txn.Currency,
		Status:      string(txn.Status),
		Description: txn.Description,
		Details:     txn.Details,
		CreatedAt:   txn.CreatedAt.Format(time.RFC3339),
	}
}

func NewTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, NewTransactionResponse(txn))
	}
	return out
}

func validateAmount(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return errors.New("amount is required")
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return errors.New("amount must be a decimal number")
	}
	if !amount.IsPositive() {
		return errors.New("amount must be greater than zero")
	}
	return nil
}
