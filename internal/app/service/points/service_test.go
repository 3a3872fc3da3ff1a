package points

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLedger struct {
	total        int
	incrementErr error
	readErr      error
	writeErr     error
	increments   int
	writes       int
	reads        int
}

func (f *fakeLedger) IncrementTotal(_ context.Context, _ string, amount int) error {
	f.increments++
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.total += amount
	return nil
}

func (f *fakeLedger) ReadTotal(_ context.Context, _ string) (int, error) {
	f.reads++
	if f.readErr != nil {
		return 0, f.readErr
	}
	return f.total, nil
}

func (f *fakeLedger) WriteTotal(_ context.Context, _ string, total int) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	f.total = total
	return nil
}

func newTestService(ledger Ledger) *Service {
	return NewService(zap.NewNop().Sugar(), ledger, nil, nil)
}

func TestAward_AtomicPath(t *testing.T) {
	ledger := &fakeLedger{}
	svc := newTestService(ledger)

	require.NoError(t, svc.Award(context.Background(), "user-1", 10))
	require.Equal(t, 10, ledger.total)
	require.Equal(t, 1, ledger.increments)
	require.Zero(t, ledger.writes)
}

func TestAward_FallbackOnAtomicUnavailable(t *testing.T) {
	ledger := &fakeLedger{total: 30, incrementErr: ErrAtomicUnavailable}
	svc := newTestService(ledger)

	require.NoError(t, svc.Award(context.Background(), "user-1", 10))
	require.Equal(t, 40, ledger.total)
	require.Equal(t, 1, ledger.reads)
	require.Equal(t, 1, ledger.writes)
}

func TestAward_OtherErrorDoesNotFallBack(t *testing.T) {
	ledger := &fakeLedger{incrementErr: errors.New("connection refused")}
	svc := newTestService(ledger)

	err := svc.Award(context.Background(), "user-1", 10)
	require.ErrorIs(t, err, ErrPointAwardFailed)
	require.Zero(t, ledger.reads)
	require.Zero(t, ledger.writes)
}

func TestAward_FallbackWriteFailure(t *testing.T) {
	ledger := &fakeLedger{incrementErr: ErrAtomicUnavailable, writeErr: errors.New("write refused")}
	svc := newTestService(ledger)

	err := svc.Award(context.Background(), "user-1", 10)
	require.ErrorIs(t, err, ErrPointAwardFailed)
}

func TestAward_NonPositiveAmountIsNoOp(t *testing.T) {
	ledger := &fakeLedger{}
	svc := newTestService(ledger)

	require.NoError(t, svc.Award(context.Background(), "user-1", 0))
	require.NoError(t, svc.Award(context.Background(), "user-1", -5))
	require.Zero(t, ledger.increments)
}

func TestTotal(t *testing.T) {
	ledger := &fakeLedger{total: 120}
	svc := newTestService(ledger)

	total, err := svc.Total(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, 120, total)
}
