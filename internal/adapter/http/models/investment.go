package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/invest-account-service/internal/domain"
)

type InvestRequest struct {
	PlanName       string `json:"planName"`
	Amount         string `json:"amount"`
	DurationDays   int    `json:"durationDays"`
	ExpectedReturn string `json:"expectedReturn"`
}

func (r InvestRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.PlanName) == "" {
		errs = append(errs, "planName is required")
	}
	if err := validateAmount(r.Amount); err != nil {
		errs = append(errs, err.Error())
	}
	if r.DurationDays <= 0 {
		errs = append(errs, "durationDays must be greater than zero")
	}
	ret := strings.TrimSpace(r.ExpectedReturn)
	if ret == "" {
		errs = append(errs, "expectedReturn is required")
	} else if parsed, err := decimal.NewFromString(ret); err != nil || !parsed.IsPositive() {
		errs = append(errs, "expectedReturn must be a positive percentage")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type InvestmentResponse struct {
	ID             string `json:"id"`
	UserEmail      string `json:"userEmail"`
	PlanName       string `json:"planName"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	DurationDays   int    `json:"durationDays"`
	ExpectedReturn string `json:"expectedReturn"`
	Status         string `json:"status"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	DailyProfit    string `json:"dailyProfit"`
	ProfitDaysPaid int    `json:"profitDaysPaid"`
}

type AccrualResponse struct {
	ProfitPayments int    `json:"profitPayments"`
	AccruedAmount  string `json:"accruedAmount"`
	CompletedPlans int    `json:"completedPlans"`
}

func NewInvestmentResponse(inv domain.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:             inv.ID,
		UserEmail:      inv.UserEmail,
		PlanName:       inv.PlanName,
		Amount:         inv.Amount.StringFixed(2),
		Currency:       inv.Currency,
		DurationDays:   inv.DurationDays,
		ExpectedReturn: inv.ExpectedReturn.String(),
		Status:         string(inv.Status),
		StartDate:      inv.StartDate.Format(time.RFC3339),
		EndDate:        inv.EndDate.Format(time.RFC3339),
		DailyProfit:    inv.DailyProfit.StringFixed(2),
		ProfitDaysPaid: inv.ProfitDaysPaid,
	}
}

func NewInvestmentResponses(invs []domain.Investment) []InvestmentResponse {
	out := make([]InvestmentResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, NewInvestmentResponse(inv))
	}
	return out
}
