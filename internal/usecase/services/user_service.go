package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/api-sage/invest-account-service/internal/adapter/http/models"
	"github.com/api-sage/invest-account-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/invest-account-service/internal/auth"
	"github.com/api-sage/invest-account-service/internal/commons"
	"github.com/api-sage/invest-account-service/internal/domain"
	"github.com/api-sage/invest-account-service/internal/logger"
)

type UserService struct {
	userRepo repo_interfaces.UserRepository
	tokens   *auth.TokenManager
}

func NewUserService(userRepo repo_interfaces.UserRepository, tokens *auth.TokenManager) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (commons.Response[models.ProfileResponse], error) {
	logger.Info("user service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.ProfileResponse]("validation failed", err.Error()), err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return commons.ErrorResponse[models.ProfileResponse]("failed to register user", "failed to hash password"), fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		Currency:     domain.DefaultCurrency,
		VerificationDocuments: domain.VerificationDocuments{
			Status: domain.VerificationStatusPending,
		},
		Country:     strings.TrimSpace(req.Country),
		Phone:       strings.TrimSpace(req.Phone),
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		PostalCode:  strings.TrimSpace(req.PostalCode),
		DateOfBirth: strings.TrimSpace(req.DateOfBirth),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, commons.ErrDuplicateRecord) {
			return commons.ErrorResponse[models.ProfileResponse]("email already registered"), err
		}
		return commons.ErrorResponse[models.ProfileResponse]("failed to register user", "Unable to register right now"), err
	}

	return commons.SuccessResponse("user registered successfully", models.NewProfileResponse(created)), nil
}

// Login verifies the credential and issues a session token. A wrong email and
// a wrong password surface the same error so the endpoint does not reveal
// which accounts exist.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("user service login request", logger.Fields{
		"email": req.Email,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoginResponse]("validation failed", err.Error()), err
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.LoginResponse]("invalid credentials"), commons.ErrInvalidCredentials
		}
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return commons.ErrorResponse[models.LoginResponse]("invalid credentials"), commons.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	response := models.LoginResponse{
		Token:   token,
		Profile: models.NewProfileResponse(user),
	}

	return commons.SuccessResponse("login successful", response), nil
}

func (s *UserService) GetProfile(ctx context.Context, email string) (commons.Response[models.ProfileResponse], error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ProfileResponse]("user not found"), err
		}
		return commons.ErrorResponse[models.ProfileResponse]("failed to get profile", "Unable to load profile right now"), err
	}

	return commons.SuccessResponse("profile fetched successfully", models.NewProfileResponse(user)), nil
}

func (s *UserService) ListUsers(ctx context.Context) (commons.Response[[]models.ProfileResponse], error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return commons.ErrorResponse[[]models.ProfileResponse]("failed to list users", "Unable to list users right now"), err
	}

	out := make([]models.ProfileResponse, 0, len(users))
	for _, user := range users {
		out = append(out, models.NewProfileResponse(user))
	}

	return commons.SuccessResponse("users fetched successfully", out), nil
}

// UpdateProfile merges the provided fields into the stored record. Absent
// fields keep their persisted values.
func (s *UserService) UpdateProfile(ctx context.Context, email string, req models.UpdateProfileRequest) (commons.Response[models.ProfileResponse], error) {
	logger.Info("user service update profile request", logger.Fields{
		"email":   email,
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.ProfileResponse]("validation failed", err.Error()), err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ProfileResponse]("user not found"), err
		}
		return commons.ErrorResponse[models.ProfileResponse]("failed to update profile", "Unable to update profile right now"), err
	}

	applyIfSet := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	applyIfSet(&user.Name, req.Name)
	applyIfSet(&user.Country, req.Country)
	applyIfSet(&user.Phone, req.Phone)
	applyIfSet(&user.Address, req.Address)
	applyIfSet(&user.City, req.City)
	applyIfSet(&user.PostalCode, req.PostalCode)
	applyIfSet(&user.DateOfBirth, req.DateOfBirth)

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ProfileResponse]("user not found"), err
		}
		return commons.ErrorResponse[models.ProfileResponse]("failed to update profile", "Unable to update profile right now"), err
	}

	return commons.SuccessResponse("profile updated successfully", models.NewProfileResponse(updated)), nil
}

// SubmitVerification stores the submitted document references. Submission is
// auto-approved: the stored status becomes approved and the account is marked
// verified regardless of the requested status.
func (s *UserService) SubmitVerification(ctx context.Context, email string, req models.SubmitVerificationRequest) (commons.Response[models.VerificationResponse], error) {
	logger.Info("user service submit verification request", logger.Fields{
		"email":           email,
		"requestedStatus": req.RequestedStatus,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.VerificationResponse]("validation failed", err.Error()), err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.VerificationResponse]("user not found"), err
		}
		return commons.ErrorResponse[models.VerificationResponse]("failed to submit verification", "Unable to submit verification right now"), err
	}

	now := time.Now().UTC()
	if doc := strings.TrimSpace(req.IDDocument); doc != "" {
		user.VerificationDocuments.IDDocument = doc
	}
	if doc := strings.TrimSpace(req.ProofOfAddress); doc != "" {
		user.VerificationDocuments.ProofOfAddress = doc
	}
	user.VerificationDocuments.Status = domain.VerificationStatusApproved
	user.VerificationDocuments.SubmittedAt = &now
	user.IsVerified = true

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.VerificationResponse]("user not found"), err
		}
		return commons.ErrorResponse[models.VerificationResponse]("failed to submit verification", "Unable to submit verification right now"), err
	}

	response := models.VerificationResponse{
		Email:       updated.Email,
		Status:      string(updated.VerificationDocuments.Status),
		IsVerified:  updated.IsVerified,
		SubmittedAt: updated.VerificationDocuments.SubmittedAt.Format(time.RFC3339),
	}

	return commons.SuccessResponse("verification submitted successfully", response), nil
}
