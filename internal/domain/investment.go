package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvestmentStatus string

const (
	InvestmentStatusActive    InvestmentStatus = "active"
	InvestmentStatusCompleted InvestmentStatus = "completed"
	InvestmentStatusCancelled InvestmentStatus = "cancelled"
)

type Investment struct {
	ID             string           `json:"id"`
	UserEmail      string           `json:"userEmail"`
	PlanName       string           `json:"planName"`
	Amount         decimal.Decimal  `json:"amount"`
	Currency       string           `json:"currency"`
	DurationDays   int              `json:"durationDays"`
	ExpectedReturn decimal.Decimal  `json:"expectedReturn"`
	Status         InvestmentStatus `json:"status"`
	StartDate      time.Time        `json:"startDate"`
	EndDate        time.Time        `json:"endDate"`
	DailyProfit    decimal.Decimal  `json:"dailyProfit"`
	ProfitDaysPaid int              `json:"profitDaysPaid"`
}
