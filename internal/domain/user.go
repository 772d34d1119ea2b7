package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

const DefaultCurrency = "EUR"

type VerificationDocuments struct {
	IDDocument     string             `json:"idDocument,omitempty"`
	ProofOfAddress string             `json:"proofOfAddress,omitempty"`
	Status         VerificationStatus `json:"status"`
	SubmittedAt    *time.Time         `json:"submittedAt,omitempty"`
}

type User struct {
	ID                    string                `json:"id"`
	Name                  string                `json:"name"`
	Email                 string                `json:"email"`
	PasswordHash          string                `json:"passwordHash"`
	Currency              string                `json:"currency"`
	IsVerified            bool                  `json:"isVerified"`
	VerificationDocuments VerificationDocuments `json:"verificationDocuments"`
	Country               string                `json:"country,omitempty"`
	Phone                 string                `json:"phone,omitempty"`
	Address               string                `json:"address,omitempty"`
	City                  string                `json:"city,omitempty"`
	PostalCode            string                `json:"postalCode,omitempty"`
	DateOfBirth           string                `json:"dateOfBirth,omitempty"`
	CreatedAt             time.Time             `json:"createdAt"`
	UpdatedAt             time.Time             `json:"updatedAt"`
	Transactions          []Transaction         `json:"transactions"`
	Investments           []Investment          `json:"investments"`
}

// Balance folds the per-user ledger: completed deposits and profits credit,
// completed withdrawals and investments debit. The balance is never stored.
func (u User) Balance() decimal.Decimal {
	balance := decimal.Zero
	for _, txn := range u.Transactions {
		if txn.Status != TransactionStatusCompleted {
			continue
		}
		switch txn.Kind {
		case TransactionKindDeposit, TransactionKindProfit:
			balance = balance.Add(txn.Amount)
		case TransactionKindWithdrawal, TransactionKindInvestment:
			balance = balance.Sub(txn.Amount)
		}
	}
	return balance
}
