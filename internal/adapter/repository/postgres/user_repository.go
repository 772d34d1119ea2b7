package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/api-sage/invest-account-service/internal/commons"
	"github.com/api-sage/invest-account-service/internal/domain"
	"github.com/api-sage/invest-account-service/internal/logger"
)

type UserRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, currency, is_verified,
	verification_id_document, verification_proof_of_address, verification_status, verification_submitted_at,
	country, phone, address, city, postal_code, date_of_birth, created_at, updated_at`

const transactionColumns = `id, user_email, kind, amount, currency, status, description, details, created_at`

const investmentColumns = `id, user_email, plan_name, amount, currency, duration_days, expected_return,
	status, start_date, end_date, daily_profit, profit_days_paid`

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY seq`)
	if err != nil {
		logger.Error("user repository list failed", err, nil)
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	for i := range users {
		if err := r.loadChildren(ctx, &users[i]); err != nil {
			return nil, err
		}
	}

	return users, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE lower(email) = lower($1)`

	var user domain.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, email), &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, commons.ErrRecordNotFound
		}
		logger.Error("user repository get by email failed", err, logger.Fields{"email": email})
		return domain.User{}, fmt.Errorf("get user by email: %w", err)
	}

	if err := r.loadChildren(ctx, &user); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	logger.Info("user repository create", logger.Fields{"email": user.Email})

	const query = `
INSERT INTO users (
	id, name, email, password_hash, currency, is_verified,
	verification_id_document, verification_proof_of_address, verification_status, verification_submitted_at,
	country, phone, address, city, postal_code, date_of_birth, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
RETURNING ` + userColumns

	var created domain.User
	if err := scanUser(r.db.QueryRowContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Currency,
		user.IsVerified,
		user.VerificationDocuments.IDDocument,
		user.VerificationDocuments.ProofOfAddress,
		user.VerificationDocuments.Status,
		user.VerificationDocuments.SubmittedAt,
		user.Country,
		user.Phone,
		user.Address,
		user.City,
		user.PostalCode,
		user.DateOfBirth,
		user.CreatedAt,
		user.UpdatedAt,
	), &created); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, commons.ErrDuplicateRecord
		}
		logger.Error("user repository create failed", err, logger.Fields{"email": user.Email})
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	const query = `
UPDATE users
SET name = $2,
	password_hash = $3,
	currency = $4,
	is_verified = $5,
	verification_id_document = $6,
	verification_proof_of_address = $7,
	verification_status = $8,
	verification_submitted_at = $9,
	country = $10,
	phone = $11,
	address = $12,
	city = $13,
	postal_code = $14,
	date_of_birth = $15,
	updated_at = NOW()
WHERE lower(email) = lower($1)
RETURNING ` + userColumns

	var updated domain.User
	if err := scanUser(r.db.QueryRowContext(
		ctx,
		query,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.Currency,
		user.IsVerified,
		user.VerificationDocuments.IDDocument,
		user.VerificationDocuments.ProofOfAddress,
		user.VerificationDocuments.Status,
		user.VerificationDocuments.SubmittedAt,
		user.Country,
		user.Phone,
		user.Address,
		user.City,
		user.PostalCode,
		user.DateOfBirth,
	), &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, commons.ErrRecordNotFound
		}
		logger.Error("user repository update failed", err, logger.Fields{"email": user.Email})
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}

	if err := r.loadChildren(ctx, &updated); err != nil {
		return domain.User{}, err
	}

	return updated, nil
}

func (r *UserRepository) AppendTransaction(ctx context.Context, email string, txn domain.Transaction) (domain.Transaction, error) {
	details, err := json.Marshal(txn.Details)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("encode transaction details: %w", err)
	}

	const query = `
INSERT INTO transactions (id, user_email, kind, amount, currency, status, description, details, created_at)
SELECT $2, email, $3, $4, $5, $6, $7, $8, $9
FROM users
WHERE lower(email) = lower($1)
RETURNING ` + transactionColumns

	var created domain.Transaction
	if err := scanTransaction(r.db.QueryRowContext(
		ctx,
		query,
		email,
		txn.ID,
		txn.Kind,
		txn.Amount,
		txn.Currency,
		txn.Status,
		txn.Description,
		details,
		txn.CreatedAt,
	), &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, commons.ErrRecordNotFound
		}
		logger.Error("user repository append transaction failed", err, logger.Fields{"email": email})
		return domain.Transaction{}, fmt.Errorf("append transaction: %w", err)
	}

	return created, nil
}

func (r *UserRepository) AppendInvestment(ctx context.Context, email string, inv domain.Investment) (domain.Investment, error) {
	const query = `
INSERT INTO investments (id, user_email, plan_name, amount, currency, duration_days, expected_return,
	status, start_date, end_date, daily_profit, profit_days_paid)
SELECT $2, email, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
FROM users
WHERE lower(email) = lower($1)
RETURNING ` + investmentColumns

	var created domain.Investment
	if err := scanInvestment(r.db.QueryRowContext(
		ctx,
		query,
		email,
		inv.ID,
		inv.PlanName,
		inv.Amount,
		inv.Currency,
		inv.DurationDays,
		inv.ExpectedReturn,
		inv.Status,
		inv.StartDate,
		inv.EndDate,
		inv.DailyProfit,
		inv.ProfitDaysPaid,
	), &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Investment{}, commons.ErrRecordNotFound
		}
		logger.Error("user repository append investment failed", err, logger.Fields{"email": email})
		return domain.Investment{}, fmt.Errorf("append investment: %w", err)
	}

	return created, nil
}

func (r *UserRepository) UpdateTransactionStatus(ctx context.Context, email, transactionID string, status domain.TransactionStatus) error {
	const query = `
UPDATE transactions
SET status = $3
WHERE id = $2 AND lower(user_email) = lower($1)`

	res, err := r.db.ExecContext(ctx, query, email, transactionID, status)
	if err != nil {
		logger.Error("user repository update transaction status failed", err, logger.Fields{
			"email":         email,
			"transactionId": transactionID,
		})
		return fmt.Errorf("update transaction status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if affected == 0 {
		return commons.ErrRecordNotFound
	}

	return nil
}

func (r *UserRepository) UpdateInvestment(ctx context.Context, email string, inv domain.Investment) error {
	const query = `
UPDATE investments
SET status = $3,
	daily_profit = $4,
	profit_days_paid = $5
WHERE id = $2 AND lower(user_email) = lower($1)`

	res, err := r.db.ExecContext(ctx, query, email, inv.ID, inv.Status, inv.DailyProfit, inv.ProfitDaysPaid)
	if err != nil {
		logger.Error("user repository update investment failed", err, logger.Fields{
			"email":        email,
			"investmentId": inv.ID,
		})
		return fmt.Errorf("update investment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update investment: %w", err)
	}
	if affected == 0 {
		return commons.ErrRecordNotFound
	}

	return nil
}

func (r *UserRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return r.queryTransactions(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY seq`)
}

func (r *UserRepository) ListInvestments(ctx context.Context) ([]domain.Investment, error) {
	return r.queryInvestments(ctx, `SELECT `+investmentColumns+` FROM investments ORDER BY seq`)
}

func (r *UserRepository) loadChildren(ctx context.Context, user *domain.User) error {
	transactions, err := r.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE lower(user_email) = lower($1) ORDER BY seq`, user.Email)
	if err != nil {
		return err
	}
	user.Transactions = transactions

	investments, err := r.queryInvestments(ctx,
		`SELECT `+investmentColumns+` FROM investments WHERE lower(user_email) = lower($1) ORDER BY seq`, user.Email)
	if err != nil {
		return err
	}
	user.Investments = investments

	return nil
}

func (r *UserRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("user repository query transactions failed", err, nil)
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		if err := scanTransaction(rows, &txn); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}

	return out, nil
}

func (r *UserRepository) queryInvestments(ctx context.Context, query string, args ...any) ([]domain.Investment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("user repository query investments failed", err, nil)
		return nil, fmt.Errorf("query investments: %w", err)
	}
	defer rows.Close()

	var out []domain.Investment
	for rows.Next() {
		var inv domain.Investment
		if err := scanInvestment(rows, &inv); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query investments: %w", err)
	}

	return out, nil
}

func scanUser(row rowScanner, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Currency,
		&user.IsVerified,
		&user.VerificationDocuments.IDDocument,
		&user.VerificationDocuments.ProofOfAddress,
		&user.VerificationDocuments.Status,
		&user.VerificationDocuments.SubmittedAt,
		&user.Country,
		&user.Phone,
		&user.Address,
		&user.City,
		&user.PostalCode,
		&user.DateOfBirth,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func scanTransaction(row rowScanner, txn *domain.Transaction) error {
	var details []byte
	if err := row.Scan(
		&txn.ID,
		&txn.UserEmail,
		&txn.Kind,
		&txn.Amount,
		&txn.Currency,
		&txn.Status,
		&txn.Description,
		&details,
		&txn.CreatedAt,
	); err != nil {
		return err
	}

	if len(details) > 0 {
		if err := json.Unmarshal(details, &txn.Details); err != nil {
			return fmt.Errorf("decode transaction details: %w", err)
		}
	}

	return nil
}

func scanInvestment(row rowScanner, inv *domain.Investment) error {
	return row.Scan(
		&inv.ID,
		&inv.UserEmail,
		&inv.PlanName,
		&inv.Amount,
		&inv.Currency,
		&inv.DurationDays,
		&inv.ExpectedReturn,
		&inv.Status,
		&inv.StartDate,
		&inv.EndDate,
		&inv.DailyProfit,
		&inv.ProfitDaysPaid,
	)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
