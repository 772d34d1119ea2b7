package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/invest-account-service/internal/adapter/http/models"
	"github.com/api-sage/invest-account-service/internal/adapter/repository/memory"
	"github.com/api-sage/invest-account-service/internal/commons"
	"github.com/api-sage/invest-account-service/internal/usecase/services"
)

func newPaymentFixture(t *testing.T) (*services.PaymentService, *memory.UserRepository) {
	t.Helper()
	userSvc, repo, _ := newUserService()
	registerTestUser(t, userSvc, "ada@example.com")
	return services.NewPaymentService(repo), repo
}

func TestPaymentServiceDepositAppendsCompletedTransaction(t *testing.T) {
	svc, repo := newPaymentFixture(t)

	resp, err := svc.Deposit(context.Background(), "ada@example.com", models.DepositRequest{
		Amount: "250.00",
		Method: "bank_transfer",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data == nil || resp.Data.Kind != "deposit" || resp.Data.Status != "completed" {
		t.Fatal("expected a completed deposit transaction")
	}

	user, err := repo.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("expected stored user, got %v", err)
	}
	if len(user.Transactions) != 1 {
		t.Fatalf("expected exactly one transaction, got %d", len(user.Transactions))
	}
	if user.Balance().StringFixed(2) != "250.00" {
		t.Fatalf("expected ledger balance 250.00, got %s", user.Balance().StringFixed(2))
	}
	if user.Transactions[0].Description != "Deposit via bank_transfer" {
		t.Fatalf("unexpected description %q", user.Transactions[0].Description)
	}
}

func TestPaymentServiceDepositRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newPaymentFixture(t)

	for _, amount := range []string{"0", "-10", "abc", ""} {
		if _, err := svc.Deposit(context.Background(), "ada@example.com", models.DepositRequest{
			Amount: amount,
			Method: "card",
		}); err == nil {
			t.Fatalf("expected validation error for amount %q", amount)
		}
	}
}

func TestPaymentServiceWithdrawInsufficientBalance(t *testing.T) {
	svc, repo := newPaymentFixture(t)

	_, err := svc.Withdraw(context.Background(), "ada@example.com", models.WithdrawRequest{
		Amount: "100.00",
		Method: "bank_transfer",
	})
	if !errors.Is(err, commons.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance error, got %v", err)
	}

	user, err := repo.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("expected stored user, got %v", err)
	}
	if len(user.Transactions) != 0 {
		t.Fatalf("expected no transaction after rejected withdrawal, got %d", len(user.Transactions))
	}
}

func TestPaymentServiceWithdrawDebitsLedger(t *testing.T) {
	svc, repo := newPaymentFixture(t)

	if _, err := svc.Deposit(context.Background(), "ada@example.com", models.DepositRequest{
		Amount: "300.00",
		Method: "bank_transfer",
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	resp, err := svc.Withdraw(context.Background(), "ada@example.com", models.WithdrawRequest{
		Amount: "120.50",
		Method: "bank_transfer",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data == nil || resp.Data.Kind != "withdrawal" {
		t.Fatal("expected a withdrawal transaction")
	}

	user, err := repo.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("expected stored user, got %v", err)
	}
	if user.Balance().StringFixed(2) != "179.50" {
		t.Fatalf("expected ledger balance 179.50, got %s", user.Balance().StringFixed(2))
	}
}

func TestPaymentServiceWithdrawUnknownUser(t *testing.T) {
	svc := services.NewPaymentService(memory.NewUserRepository())

	_, err := svc.Withdraw(context.Background(), "nobody@example.com", models.WithdrawRequest{
		Amount: "10.00",
		Method: "card",
	})
	if !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected record not found error, got %v", err)
	}
}

func TestPaymentServicePendingTransactionsDoNotMoveFunds(t *testing.T) {
	svc, repo := newPaymentFixture(t)

	resp, err := svc.Deposit(context.Background(), "ada@example.com", models.DepositRequest{
		Amount: "200.00",
		Method: "bank_transfer",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if _, err := svc.SetTransactionStatus(context.Background(), "ada@example.com", models.SetTransactionStatusRequest{
		TransactionID: resp.Data.ID,
		Status:        "pending",
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	user, err := repo.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("expected stored user, got %v", err)
	}
	if !user.Balance().IsZero() {
		t.Fatalf("expected pending deposit to be excluded from balance, got %s", user.Balance())
	}
}

func TestPaymentServiceSetTransactionStatusNotFound(t *testing.T) {
	svc, _ := newPaymentFixture(t)

	_, err := svc.SetTransactionStatus(context.Background(), "ada@example.com", models.SetTransactionStatusRequest{
		TransactionID: "missing-id",
		Status:        "failed",
	})
	if !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected record not found error, got %v", err)
	}
}

func TestPaymentServiceAllTransactionsSpansUsers(t *testing.T) {
	userSvc, repo, _ := newUserService()
	registerTestUser(t, userSvc, "ada@example.com")
	registerTestUser(t, userSvc, "grace@example.com")
	svc := services.NewPaymentService(repo)

	for _, email := range []string{"ada@example.com", "grace@example.com"} {
		if _, err := svc.Deposit(context.Background(), email, models.DepositRequest{
			Amount: "50.00",
			Method: "card",
		}); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}

	resp, err := svc.AllTransactions(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data == nil || len(*resp.Data) != 2 {
		t.Fatal("expected the derived global listing to contain both deposits")
	}
}
