package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/invest-account-service/internal/commons"
	"github.com/api-sage/invest-account-service/internal/domain"
)

func newTestRepo(t *testing.T) (*UserRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registered_users.json")
	repo, err := NewUserRepository(path)
	require.NoError(t, err)
	return repo, path
}

func testUser(email string) domain.User {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return domain.User{
		ID:           "u-" + email,
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Currency:     domain.DefaultCurrency,
		VerificationDocuments: domain.VerificationDocuments{
			Status: domain.VerificationStatusPending,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMissingFileListsEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	repo, path := newTestRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o640))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = repo.GetByEmail(context.Background(), "ada@example.com")
	assert.ErrorIs(t, err, commons.ErrRecordNotFound)
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Create(context.Background(), testUser("ada@example.com"))
	require.NoError(t, err)

	got, err := repo.GetByEmail(context.Background(), "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-ada@example.com", got.ID)
	assert.Equal(t, "Test User", got.Name)
	assert.Equal(t, domain.VerificationStatusPending, got.VerificationDocuments.Status)
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Create(context.Background(), testUser("ada@example.com"))
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), testUser("Ada@Example.com"))
	assert.ErrorIs(t, err, commons.ErrDuplicateRecord)
}

func TestUpdateReplacesFullRecord(t *testing.T) {
	repo, _ := newTestRepo(t)

	user := testUser("ada@example.com")
	_, err := repo.Create(context.Background(), user)
	require.NoError(t, err)

	user.Name = "Renamed"
	user.City = "London"
	_, err = repo.Update(context.Background(), user)
	require.NoError(t, err)

	got, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "London", got.City)
}

func TestUpdateUnknownUser(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Update(context.Background(), testUser("nobody@example.com"))
	assert.ErrorIs(t, err, commons.ErrRecordNotFound)
}

func TestAppendTransactionPersistsInOrder(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Create(context.Background(), testUser("ada@example.com"))
	require.NoError(t, err)

	for i, id := range []string{"t-1", "t-2"} {
		_, err := repo.AppendTransaction(context.Background(), "ada@example.com", domain.Transaction{
			ID:        id,
			UserEmail: "ada@example.com",
			Kind:      domain.TransactionKindDeposit,
			Amount:    decimal.NewFromInt(int64(100 * (i + 1))),
			Currency:  domain.DefaultCurrency,
			Status:    domain.TransactionStatusCompleted,
			CreatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	got, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Len(t, got.Transactions, 2)
	assert.Equal(t, "t-1", got.Transactions[0].ID)
	assert.Equal(t, "t-2", got.Transactions[1].ID)
	assert.Equal(t, "300", got.Balance().String())
}

func TestUpdateTransactionStatus(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Create(context.Background(), testUser("ada@example.com"))
	require.NoError(t, err)
	_, err = repo.AppendTransaction(context.Background(), "ada@example.com", domain.Transaction{
		ID:        "t-1",
		UserEmail: "ada@example.com",
		Kind:      domain.TransactionKindDeposit,
		Amount:    decimal.NewFromInt(100),
		Currency:  domain.DefaultCurrency,
		Status:    domain.TransactionStatusCompleted,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateTransactionStatus(context.Background(), "ada@example.com", "t-1", domain.TransactionStatusFailed))

	got, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusFailed, got.Transactions[0].Status)
	assert.True(t, got.Balance().IsZero())

	err = repo.UpdateTransactionStatus(context.Background(), "ada@example.com", "t-missing", domain.TransactionStatusFailed)
	assert.ErrorIs(t, err, commons.ErrRecordNotFound)
}

func TestGlobalListingsSpanUsers(t *testing.T) {
	repo, _ := newTestRepo(t)

	for _, email := range []string{"ada@example.com", "grace@example.com"} {
		_, err := repo.Create(context.Background(), testUser(email))
		require.NoError(t, err)
		_, err = repo.AppendTransaction(context.Background(), email, domain.Transaction{
			ID:        "t-" + email,
			UserEmail: email,
			Kind:      domain.TransactionKindDeposit,
			Amount:    decimal.NewFromInt(50),
			Currency:  domain.DefaultCurrency,
			Status:    domain.TransactionStatusCompleted,
			CreatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
		_, err = repo.AppendInvestment(context.Background(), email, domain.Investment{
			ID:           "i-" + email,
			UserEmail:    email,
			PlanName:     "Starter",
			Amount:       decimal.NewFromInt(25),
			Currency:     domain.DefaultCurrency,
			DurationDays: 30,
			Status:       domain.InvestmentStatusActive,
			StartDate:    time.Now().UTC(),
			EndDate:      time.Now().UTC().AddDate(0, 0, 30),
		})
		require.NoError(t, err)
	}

	txns, err := repo.ListTransactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, txns, 2)

	invs, err := repo.ListInvestments(context.Background())
	require.NoError(t, err)
	assert.Len(t, invs, 2)
}

func TestPersistenceSurvivesReopen(t *testing.T) {
	repo, path := newTestRepo(t)

	_, err := repo.Create(context.Background(), testUser("ada@example.com"))
	require.NoError(t, err)

	reopened, err := NewUserRepository(path)
	require.NoError(t, err)

	got, err := reopened.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-ada@example.com", got.ID)
}
