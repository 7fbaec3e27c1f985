package service

import (
	"account_ledger/internal/domain"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservers_FanOut(t *testing.T) {
	ctx := context.Background()
	a, b := newRecordingObserver(), newRecordingObserver()
	obs := Observers{a, NopObserver{}, b}

	obs.BeforeOperation(ctx, OpDeposit)
	obs.AfterOperation(ctx, Outcome{Operation: OpDeposit})
	obs.BalanceChanged(ctx, "0001", 3, dec("9.99"))

	for _, r := range []*recordingObserver{a, b} {
		assert.Equal(t, []string{OpDeposit}, r.started)
		require.Len(t, r.outcomes, 1)
		assert.True(t, r.balances[3].Equal(dec("9.99")))
	}
}

func TestLogObserver_Levels(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantLevel   string
		wantOutcome string
	}{
		{name: "success", err: nil, wantLevel: "INFO", wantOutcome: "ok"},
		{name: "rejection", err: fmt.Errorf("withdraw: %w", domain.ErrInsufficientFunds), wantLevel: "WARN", wantOutcome: "insufficient_funds"},
		{name: "failure", err: errors.New("storage offline"), wantLevel: "ERROR", wantOutcome: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			obs := NewLogObserver(logger)

			obs.AfterOperation(context.Background(), Outcome{
				Operation: OpWithdraw,
				Err:       tt.err,
				Duration:  time.Millisecond,
			})

			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			assert.Equal(t, tt.wantLevel, record["level"])
			assert.Equal(t, OpWithdraw, record["operation"])
			assert.Equal(t, tt.wantOutcome, record["outcome"])
			if tt.err != nil {
				assert.Equal(t, tt.err.Error(), record["error"])
			}
		})
	}
}
