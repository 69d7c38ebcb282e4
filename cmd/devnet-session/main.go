// Devnet session service: a local Solana devnet account, faucet airdrops and a
// fixed transfer to a keystore-backed wallet provider, served over HTTP.
// Usage: PROVIDER_FILE_PATH=phantom.cwt go run ./cmd/devnet-session
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/AlexZinkM/devnet-session/internal/api"
	"github.com/AlexZinkM/devnet-session/internal/client"
	"github.com/AlexZinkM/devnet-session/internal/config"
	"github.com/AlexZinkM/devnet-session/internal/handler"
	"github.com/AlexZinkM/devnet-session/internal/metrics"
	"github.com/AlexZinkM/devnet-session/internal/provider"
	"github.com/AlexZinkM/devnet-session/solana"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg := config.Get()

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("service stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// Without a password the provider still shows up, but every connect is a rejection
	if config.GetProviderFilePath() != "" {
		if err := config.PromptForPassword(); err != nil {
			logger.Warn("keystore password not set", zap.Error(err))
		}
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RPCRateLimit), cfg.RPCBurst)
	chain := client.NewSolanaClient(config.GetSolanaRPCURL(), limiter, config.GetConfirmPollInterval(), logger)

	session := solana.NewManager(chain, detectKeystore(logger), logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.MustRegister(reg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", config.GetPort()),
		Handler:           api.SetupRouter(handler.NewSessionHandler(session, logger), reg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("rpc", config.GetSolanaRPCURL()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// detectKeystore probes the configured keystore. The same keystore is handed
// back while its address is unchanged so its connection survives a re-probe.
func detectKeystore(logger *zap.Logger) solana.DetectFunc {
	var (
		mu      sync.Mutex
		current *provider.Keystore
	)
	return func() (provider.Provider, bool) {
		mu.Lock()
		defer mu.Unlock()

		ks, ok := provider.Detect(config.GetProviderFilePath(), config.GetProviderPasswordBytes, logger)
		if !ok {
			current = nil
			return nil, false
		}
		if current == nil || !current.Address().Equals(ks.Address()) {
			current = ks
		}
		return current, true
	}
}
