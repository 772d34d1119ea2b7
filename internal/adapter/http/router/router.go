package router

import "net/http"

type UserRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type PaymentRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type InvestmentRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	userController UserRouteRegistrar,
	paymentController PaymentRouteRegistrar,
	investmentController InvestmentRouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	if userController != nil {
		userController.RegisterRoutes(mux, authMiddleware)
	}
	if paymentController != nil {
		paymentController.RegisterRoutes(mux, authMiddleware)
	}
	if investmentController != nil {
		investmentController.RegisterRoutes(mux, authMiddleware)
	}

	return mux
}
