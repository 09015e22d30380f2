package arbitrage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"crypto-rates-checker/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChecker struct {
	mu      sync.Mutex
	calls   int
	report  *domain.Report
	err     error
	onCheck func()
}

func (f *fakeChecker) Check(ctx context.Context, amount decimal.Decimal) (*domain.Report, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.onCheck != nil {
		f.onCheck()
	}
	return f.report, f.err
}

func (f *fakeChecker) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeAlerter struct {
	alerts []*domain.Report
}

func (f *fakeAlerter) Alert(ctx context.Context, report *domain.Report) error {
	f.alerts = append(f.alerts, report)
	return nil
}

func reportWithRate(rate string) *domain.Report {
	return &domain.Report{
		ID:        uuid.New(),
		Amount:    d("100"),
		BuySource: "b2mn",
		Labels:    map[domain.SourceID]string{domain.Ripio: "ripio"},
		Rows: []domain.ArbitrageRow{{
			Symbol:         "BTC",
			SourceExchange: "b2mn",
			UnitsAcquired:  d("0.01"),
			Results: []domain.SellResult{
				{Exchange: domain.Buenbit},
				{Exchange: domain.Ripio, Quoted: true, Net: d(rate).Mul(d("100")), EffectiveRate: d(rate)},
			},
		}},
	}
}

func TestWatchAlertsAtThreshold(t *testing.T) {
	tests := []struct {
		name      string
		rate      string
		alertRate string
		alerter   bool
		alerts    int
	}{
		{"above threshold", "161", "160", true, 1},
		{"at threshold", "160", "160", true, 1},
		{"below threshold", "159.99", "160", true, 0},
		{"alerts disabled", "500", "0", true, 0},
		{"no alerter", "500", "160", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerter := &fakeAlerter{}
			watcher := NewArbitrageWatcher(&fakeChecker{report: reportWithRate(tt.rate)}, nil, "@every 1m", d("100"), d(tt.alertRate), domain.OnDemand, zap.NewNop())
			if tt.alerter {
				watcher.Alerter = alerter
			}

			report := watcher.Watch(context.Background())
			require.NotNil(t, report)
			assert.Len(t, alerter.alerts, tt.alerts)
		})
	}
}

func TestWatchLogsCheckerErrors(t *testing.T) {
	alerter := &fakeAlerter{}
	watcher := NewArbitrageWatcher(&fakeChecker{err: errors.New("boom")}, alerter, "@every 1m", d("100"), d("1"), domain.OnDemand, zap.NewNop())

	assert.Nil(t, watcher.Watch(context.Background()))
	assert.Empty(t, alerter.alerts)
}

func TestStartOnDemandRunsOnce(t *testing.T) {
	checker := &fakeChecker{report: reportWithRate("1")}
	watcher := NewArbitrageWatcher(checker, nil, "not a schedule", d("100"), decimal.Zero, domain.OnDemand, zap.NewNop())

	require.NoError(t, watcher.Start(context.Background()))
	assert.Equal(t, 1, checker.Calls())
}

func TestStartScheduledRunsImmediatelyAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	checker := &fakeChecker{report: reportWithRate("1"), onCheck: cancel}
	watcher := NewArbitrageWatcher(checker, nil, "@every 1h", d("100"), decimal.Zero, domain.Scheduled, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- watcher.Start(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
	assert.Equal(t, 1, checker.Calls())
}

func TestStartRejectsBadSchedule(t *testing.T) {
	checker := &fakeChecker{report: reportWithRate("1")}
	watcher := NewArbitrageWatcher(checker, nil, "every minute please", d("100"), decimal.Zero, domain.Scheduled, zap.NewNop())

	assert.Error(t, watcher.Start(context.Background()))
	assert.Zero(t, checker.Calls())
}
