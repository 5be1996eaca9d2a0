package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"retailorders/internal/identity"
)

type ProductHandler interface {
	HandleListProducts(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	ListOrders(w http.ResponseWriter, r *http.Request)
	CreateOrder(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
	UpdateOrder(w http.ResponseWriter, r *http.Request)
	DeleteOrder(w http.ResponseWriter, r *http.Request)
}

type StaffHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
	ChangeStatus(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

func NewRouter(products ProductHandler, orders OrderHandler, staff StaffHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(identity.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.With(identity.RequireUser).Get("/products", products.HandleListProducts)

	r.Route("/orders", func(r chi.Router) {
		r.Use(identity.RequireUser)
		r.Get("/", orders.ListOrders)
		r.Post("/", orders.CreateOrder)
		r.Get("/{id}", orders.GetOrder)
		r.Put("/{id}", orders.UpdateOrder)
		r.Delete("/{id}", orders.DeleteOrder)
	})

	r.Route("/staff/orders", func(r chi.Router) {
		r.Use(identity.RequireStaff)
		r.Get("/", staff.Dashboard)
		r.Post("/{id}/status", staff.ChangeStatus)
		r.Get("/{id}/history", staff.History)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("requestId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
