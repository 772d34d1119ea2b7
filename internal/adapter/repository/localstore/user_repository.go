// Package localstore persists the user collection as one JSON document on
// disk. Every operation reads the whole document, mutates it, and writes the
// whole document back, so a concurrent writer from another process is
// resolved last-write-wins on the full collection.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/api-sage/invest-account-service/internal/commons"
	"github.com/api-sage/invest-account-service/internal/domain"
	"github.com/api-sage/invest-account-service/internal/logger"
)

type document struct {
	RegisteredUsers []domain.User `json:"registeredUsers"`
}

type UserRepository struct {
	mu   sync.Mutex
	path string
}

func NewUserRepository(path string) (*UserRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store file path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory %q: %w", dir, err)
		}
	}
	return &UserRepository{path: path}, nil
}

// load degrades to an empty collection on a missing or unparsable file; the
// failure is logged, never surfaced.
func (r *UserRepository) load() document {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Error("localstore read failed", err, logger.Fields{"path": r.path})
		}
		return document{}
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.Error("localstore parse failed, treating store as empty", err, logger.Fields{"path": r.path})
		return document{}
	}
	return doc
}

func (r *UserRepository) persist(doc document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store document: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o640); err != nil {
		return fmt.Errorf("write store document: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace store document: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (d document) indexOf(email string) int {
	key := normalizeEmail(email)
	for i, user := range d.RegisteredUsers {
		if normalizeEmail(user.Email) == key {
			return i
		}
	}
	return -1
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	out := make([]domain.User, len(doc.RegisteredUsers))
	copy(out, doc.RegisteredUsers)
	return out, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	idx := doc.indexOf(email)
	if idx < 0 {
		return domain.User{}, commons.ErrRecordNotFound
	}
	return doc.RegisteredUsers[idx], nil
}

func (r *UserRepository) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	if doc.indexOf(user.Email) >= 0 {
		return domain.User{}, commons.ErrDuplicateRecord
	}

	doc.RegisteredUsers = append(doc.RegisteredUsers, user)
	if err := r.persist(doc); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Update(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	idx := doc.indexOf(user.Email)
	if idx < 0 {
		return domain.User{}, commons.ErrRecordNotFound
	}

	user.UpdatedAt = time.Now().UTC()
	doc.RegisteredUsers[idx] = user
	if err := r.persist(doc); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *UserRepository) AppendTransaction(_ context.Context, email string, txn domain.Transaction) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	idx := doc.indexOf(email)
	if idx < 0 {
		return domain.Transaction{}, commons.ErrRecordNotFound
	}

	doc.RegisteredUsers[idx].Transactions = append(doc.RegisteredUsers[idx].Transactions, txn)
	doc.RegisteredUsers[idx].UpdatedAt = time.Now().UTC()
	if err := r.persist(doc); err != nil {
		return domain.Transaction{}, err
	}
	return txn, nil
}

func (r *UserRepository) AppendInvestment(_ context.Context, email string, inv domain.Investment) (domain.Investment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	idx := doc.indexOf(email)
	if idx < 0 {
		return domain.Investment{}, commons.ErrRecordNotFound
	}

	doc.RegisteredUsers[idx].Investments = append(doc.RegisteredUsers[idx].Investments, inv)
	doc.RegisteredUsers[idx].UpdatedAt = time.Now().UTC()
	if err := r.persist(doc); err != nil {
		return domain.Investment{}, err
	}
	return inv, nil
}

func (r *UserRepository) UpdateTransactionStatus(_ context.Context, email, transactionID string, status domain.TransactionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	idx := doc.indexOf(email)
	if idx < 0 {
		return commons.ErrRecordNotFound
	}

	for i := range doc.RegisteredUsers[idx].Transactions {
		if doc.RegisteredUsers[idx].Transactions[i].ID == transactionID {
			doc.RegisteredUsers[idx].Transactions[i].Status = status
			doc.RegisteredUsers[idx].UpdatedAt = time.Now().UTC()
			return r.persist(doc)
		}
	}

	return commons.ErrRecordNotFound
}

func (r *UserRepository) UpdateInvestment(_ context.Context, email string, inv domain.Investment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	idx := doc.indexOf(email)
	if idx < 0 {
		return commons.ErrRecordNotFound
	}

	for i := range doc.RegisteredUsers[idx].Investments {
		if doc.RegisteredUsers[idx].Investments[i].ID == inv.ID {
			doc.RegisteredUsers[idx].Investments[i] = inv
			doc.RegisteredUsers[idx].UpdatedAt = time.Now().UTC()
			return r.persist(doc)
		}
	}

	return commons.ErrRecordNotFound
}

func (r *UserRepository) ListTransactions(_ context.Context) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	var out []domain.Transaction
	for _, user := range doc.RegisteredUsers {
		out = append(out, user.Transactions...)
	}
	return out, nil
}

func (r *UserRepository) ListInvestments(_ context.Context) ([]domain.Investment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	var out []domain.Investment
	for _, user := range doc.RegisteredUsers {
		out = append(out, user.Investments...)
	}
	return out, nil
}
