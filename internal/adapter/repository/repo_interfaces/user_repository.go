package repo_interfaces

import (
	"context"

	"github.com/api-sage/invest-account-service/internal/domain"
)

// UserRepository owns the persisted collection of users and their embedded
// transactions and investments. Emails are the lookup key and are matched
// case-insensitively. Update replaces the user record last-write-wins; the
// embedded sequences are managed through the append/update methods, and the
// global listings are read models derived from the per-user data.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	AppendTransaction(ctx context.Context, email string, txn domain.Transaction) (domain.Transaction, error)
	AppendInvestment(ctx context.Context, email string, inv domain.Investment) (domain.Investment, error)
	UpdateTransactionStatus(ctx context.Context, email, transactionID string, status domain.TransactionStatus) error
	UpdateInvestment(ctx context.Context, email string, inv domain.Investment) error
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	ListInvestments(ctx context.Context) ([]domain.Investment, error)
}
