package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/invest-account-service/internal/adapter/http/middleware"
	"github.com/api-sage/invest-account-service/internal/adapter/http/models"
	"github.com/api-sage/invest-account-service/internal/commons"
	"github.com/api-sage/invest-account-service/internal/logger"
)

type InvestmentService interface {
	Invest(ctx context.Context, email string, req models.InvestRequest) (commons.Response[models.InvestmentResponse], error)
	Investments(ctx context.Context, email string) (commons.Response[[]models.InvestmentResponse], error)
	AllInvestments(ctx context.Context) (commons.Response[[]models.InvestmentResponse], error)
	AccrueProfits(ctx context.Context, email string) (commons.Response[models.AccrualResponse], error)
}

type InvestmentController struct {
	service InvestmentService
}

func NewInvestmentController(service InvestmentService) *InvestmentController {
	return &InvestmentController{service: service}
}

func (c *InvestmentController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"/invest":          c.invest,
		"/investments":     c.investments,
		"/all-investments": c.allInvestments,
		"/accrue-profits":  c.accrueProfits,
	}
	for path, handler := range routes {
		if authMiddleware != nil {
			mux.Handle(path, authMiddleware(handler))
			continue
		}
		mux.Handle(path, handler)
	}
}

func (c *InvestmentController) invest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.InvestmentResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response := commons.ErrorResponse[models.InvestmentResponse]("unauthorized")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return
	}

	var req models.InvestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.InvestmentResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Invest(r.Context(), email, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *InvestmentController) investments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[[]models.InvestmentResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response := commons.ErrorResponse[[]models.InvestmentResponse]("unauthorized")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return
	}

	response, err := c.service.Investments(r.Context(), email)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *InvestmentController) allInvestments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[[]models.InvestmentResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	response, err := c.service.AllInvestments(r.Context())
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *InvestmentController) accrueProfits(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.AccrualResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response := commons.ErrorResponse[models.AccrualResponse]("unauthorized")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return
	}

	response, err := c.service.AccrueProfits(r.Context(), email)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
