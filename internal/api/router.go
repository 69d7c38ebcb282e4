package api

import (
	"net/http"
	"time"

	_ "github.com/AlexZinkM/devnet-session/docs"
	"github.com/AlexZinkM/devnet-session/internal/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// SetupRouter sets up router with handlers
func SetupRouter(sessionHandler *handler.SessionHandler, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Session endpoints
	mux.HandleFunc("/session", sessionHandler.Session)
	mux.HandleFunc("/provider/detect", sessionHandler.DetectProvider)
	mux.HandleFunc("/wallet/connect", sessionHandler.Connect)
	mux.HandleFunc("/wallet/disconnect", sessionHandler.Disconnect)
	mux.HandleFunc("/account", sessionHandler.CreateAccount)
	mux.HandleFunc("/account/balance", sessionHandler.RefreshBalance)
	mux.HandleFunc("/account/airdrop", sessionHandler.Airdrop)
	mux.HandleFunc("/account/transactions", sessionHandler.TransactionHistory)
	mux.HandleFunc("/transfer", sessionHandler.Transfer)
	mux.HandleFunc("/transfer/dismiss", sessionHandler.DismissResult)

	return accessLog(mux, logger)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func accessLog(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)),
		)
	})
}
