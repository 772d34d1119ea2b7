package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/invest-account-service/internal/domain"
)

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Country     string `json:"country,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

func (r RegisterRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !strings.Contains(email, "@") {
		errs = append(errs, "email must be a valid address")
	}
	if len(r.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if dob := strings.TrimSpace(r.DateOfBirth); dob != "" {
		if _, err := time.Parse("2006-01-02", dob); err != nil {
			errs = append(errs, "dateOfBirth must be in YYYY-MM-DD format")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	Country     *string `json:"country,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	PostalCode  *string `json:"postalCode,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	var errs []string

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if r.DateOfBirth != nil && strings.TrimSpace(*r.DateOfBirth) != "" {
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(*r.DateOfBirth)); err != nil {
			errs = append(errs, "dateOfBirth must be in YYYY-MM-DD format")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type SubmitVerificationRequest struct {
	RequestedStatus string `json:"requestedStatus,omitempty"`
	IDDocument      string `json:"idDocument,omitempty"`
	ProofOfAddress  string `json:"proofOfAddress,omitempty"`
}

func (r SubmitVerificationRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.IDDocument) == "" && strings.TrimSpace(r.ProofOfAddress) == "" {
		errs = append(errs, "at least one document reference is required")
	}
	if status := strings.TrimSpace(r.RequestedStatus); status != "" {
		switch domain.VerificationStatus(status) {
		case domain.VerificationStatusPending, domain.VerificationStatusApproved, domain.VerificationStatusRejected:
		default:
			errs = append(errs, "requestedStatus must be pending, approved or rejected")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type VerificationResponse struct {
	Email       string `json:"email"`
	Status      string `json:"status"`
	IsVerified  bool   `json:"isVerified"`
	SubmittedAt string `json:"submittedAt"`
}

type ProfileResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Balance     string `json:"balance"`
	Currency    string `json:"currency"`
	IsVerified  bool   `json:"isVerified"`
	Country     string `json:"country,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

func NewProfileResponse(user domain.User) ProfileResponse {
	return ProfileResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Balance:     user.Balance().StringFixed(2),
		Currency:    user.Currency,
		IsVerified:  user.IsVerified,
		Country:     user.Country,
		Phone:       user.Phone,
		Address:     user.Address,
		City:        user.City,
		PostalCode:  user.PostalCode,
		DateOfBirth: user.DateOfBirth,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
	}
}
