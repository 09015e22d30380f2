package server

import (
	"context"
	"time"

	"crypto-rates-checker/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ReportService interface {
	Check(ctx context.Context, amount decimal.Decimal) (*domain.Report, error)
}

type FiberServer struct {
	*fiber.App

	checker ReportService
	logger  *zap.Logger

	// ctx outlives every request and is cancelled on shutdown, which stops
	// the checks websocket clients are still waiting on.
	ctx    context.Context
	cancel context.CancelFunc
}

func New(checker ReportService, logger *zap.Logger) *FiberServer {
	ctx, cancel := context.WithCancel(context.Background())
	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader: "crypto-rates-checker",
			AppName:      "crypto-rates-checker",
		}),

		checker: checker,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}

	return server
}

func (s *FiberServer) Shutdown() error {
	s.cancel()
	return s.App.Shutdown()
}

func (s *FiberServer) ShutdownWithTimeout(timeout time.Duration) error {
	s.cancel()
	return s.App.ShutdownWithTimeout(timeout)
}

func (s *FiberServer) ShutdownWithContext(ctx context.Context) error {
	s.cancel()
	return s.App.ShutdownWithContext(ctx)
}
