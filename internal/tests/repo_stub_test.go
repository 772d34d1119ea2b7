package services_test

import (
	"context"

	"github.com/api-sage/invest-account-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/invest-account-service/internal/domain"
)

// userRepoStub overrides individual repository methods per test and delegates
// the rest to the wrapped repository, so faults can be injected mid-flow
// against otherwise real state.
type userRepoStub struct {
	inner repo_interfaces.UserRepository

	listFn                    func(ctx context.Context) ([]domain.User, error)
	getByEmailFn              func(ctx context.Context, email string) (domain.User, error)
	createFn                  func(ctx context.Context, user domain.User) (domain.User, error)
	updateFn                  func(ctx context.Context, user domain.User) (domain.User, error)
	appendTransactionFn       func(ctx context.Context, email string, txn domain.Transaction) (domain.Transaction, error)
	appendInvestmentFn        func(ctx context.Context, email string, inv domain.Investment) (domain.Investment, error)
	updateTransactionStatusFn func(ctx context.Context, email, transactionID string, status domain.TransactionStatus) error
	updateInvestmentFn        func(ctx context.Context, email string, inv domain.Investment) error
	listTransactionsFn        func(ctx context.Context) ([]domain.Transaction, error)
	listInvestmentsFn         func(ctx context.Context) ([]domain.Investment, error)
}

func (s *userRepoStub) List(ctx context.Context) ([]domain.User, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return s.inner.List(ctx)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return s.inner.GetByEmail(ctx, email)
}

func (s *userRepoStub) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return s.inner.Create(ctx, user)
}

func (s *userRepoStub) Update(ctx context.Context, user domain.User) (domain.User, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return s.inner.Update(ctx, user)
}

func (s *userRepoStub) AppendTransaction(ctx context.Context, email string, txn domain.Transaction) (domain.Transaction, error) {
	if s.appendTransactionFn != nil {
		return s.appendTransactionFn(ctx, email, txn)
	}
	return s.inner.AppendTransaction(ctx, email, txn)
}

func (s *userRepoStub) AppendInvestment(ctx context.Context, email string, inv domain.Investment) (domain.Investment, error) {
	if s.appendInvestmentFn != nil {
		return s.appendInvestmentFn(ctx, email, inv)
	}
	return s.inner.AppendInvestment(ctx, email, inv)
}

func (s *userRepoStub) UpdateTransactionStatus(ctx context.Context, email, transactionID string, status domain.TransactionStatus) error {
	if s.updateTransactionStatusFn != nil {
		return s.updateTransactionStatusFn(ctx, email, transactionID, status)
	}
	return s.inner.UpdateTransactionStatus(ctx, email, transactionID, status)
}

func (s *userRepoStub) UpdateInvestment(ctx context.Context, email string, inv domain.Investment) error {
	if s.updateInvestmentFn != nil {
		return s.updateInvestmentFn(ctx, email, inv)
	}
	return s.inner.UpdateInvestment(ctx, email, inv)
}

func (s *userRepoStub) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	if s.listTransactionsFn != nil {
		return s.listTransactionsFn(ctx)
	}
	return s.inner.ListTransactions(ctx)
}

func (s *userRepoStub) ListInvestments(ctx context.Context) ([]domain.Investment, error) {
	if s.listInvestmentsFn != nil {
		return s.listInvestmentsFn(ctx)
	}
	return s.inner.ListInvestments(ctx)
}
