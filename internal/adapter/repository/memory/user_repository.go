package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/api-sage/invest-account-service/internal/commons"
	"github.com/api-sage/invest-account-service/internal/domain"
)

// UserRepository is the in-memory backend. It is the default for local runs
// and the substitute the service tests inject instead of a real store.
type UserRepository struct {
	mu    sync.RWMutex
	order []string
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.users[key])
	}
	return out, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[normalizeEmail(email)]
	if !ok {
		return domain.User{}, commons.ErrRecordNotFound
	}
	return user, nil
}

func (r *UserRepository) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalizeEmail(user.Email)
	if _, ok := r.users[key]; ok {
		return domain.User{}, commons.ErrDuplicateRecord
	}

	r.order = append(r.order, key)
	r.users[key] = user
	return user, nil
}

func (r *UserRepository) Update(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalizeEmail(user.Email)
	if _, ok := r.users[key]; !ok {
		return domain.User{}, commons.ErrRecordNotFound
	}

	user.UpdatedAt = time.Now().UTC()
	r.users[key] = user
	return user, nil
}

func (r *UserRepository) AppendTransaction(_ context.Context, email string, txn domain.Transaction) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalizeEmail(email)
	user, ok := r.users[key]
	if !ok {
		return domain.Transaction{}, commons.ErrRecordNotFound
	}

	user.Transactions = append(user.Transactions, txn)
	user.UpdatedAt = time.Now().UTC()
	r.users[key] = user
	return txn, nil
}

func (r *UserRepository) AppendInvestment(_ context.Context, email string, inv domain.Investment) (domain.Investment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalizeEmail(email)
	user, ok := r.users[key]
	if !ok {
		return domain.Investment{}, commons.ErrRecordNotFound
	}

	user.Investments = append(user.Investments, inv)
	user.UpdatedAt = time.Now().UTC()
	r.users[key] = user
	return inv, nil
}

func (r *UserRepository) UpdateTransactionStatus(_ context.Context, email, transactionID string, status domain.TransactionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalizeEmail(email)
	user, ok := r.users[key]
	if !ok {
		return commons.ErrRecordNotFound
	}

	for i := range user.Transactions {
		if user.Transactions[i].ID == transactionID {
			user.Transactions[i].Status = status
			user.UpdatedAt = time.Now().UTC()
			r.users[key] = user
			return nil
		}
	}

	return commons.ErrRecordNotFound
}

func (r *UserRepository) UpdateInvestment(_ context.Context, email string, inv domain.Investment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalizeEmail(email)
	user, ok := r.users[key]
	if !ok {
		return commons.ErrRecordNotFound
	}

	for i := range user.Investments {
		if user.Investments[i].ID == inv.ID {
			user.Investments[i] = inv
			user.UpdatedAt = time.Now().UTC()
			r.users[key] = user
			return nil
		}
	}

	return commons.ErrRecordNotFound
}

func (r *UserRepository) ListTransactions(_ context.Context) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Transaction
	for _, key := range r.order {
		out = append(out, r.users[key].Transactions...)
	}
	return out, nil
}

func (r *UserRepository) ListInvestments(_ context.Context) ([]domain.Investment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Investment
	for _, key := range r.order {
		out = append(out, r.users[key].Investments...)
	}
	return out, nil
}
