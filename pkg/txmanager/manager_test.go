package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "github.com/sbmarket/SBM-SchedulingService/internal/infra/storage/booking"
	"github.com/sbmarket/SBM-SchedulingService/pkg/dbmetrics"
)

// --- fakes ---

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	begun      int
	lastOpts   *sql.TxOptions
	commitErrs []error // ошибка коммита для n-й транзакции
}

func (d *fakeDB) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	d.begun++
	d.lastOpts = opts

	tx := &fakeTx{}
	if d.begun <= len(d.commitErrs) {
		tx.commitErr = d.commitErrs[d.begun-1]
	}
	return tx, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001"}
}

// repositoryStyleError собирает ошибку так, как она реально доезжает
// до менеджера: драйверная ошибка, завёрнутая сентинелами репозитория
// и use case
func repositoryStyleError(driverErr error) error {
	storageErr := fmt.Errorf("%w: FindOverlapping - execute query: %w", bookingRepo.ErrExecQuery, driverErr)
	return fmt.Errorf("internal error: failed to check overlaps: %w", storageErr)
}

// --- DoSerializable ---

func TestDoSerializable_RetriesStatementSerializationFailure(t *testing.T) {
	db := &fakeDB{}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return repositoryStyleError(serializationFailure())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts, "wrapped 40001 from a statement must be retried")
	require.NotNil(t, db.lastOpts)
	assert.Equal(t, sql.LevelSerializable, db.lastOpts.Isolation)
}

func TestDoSerializable_ExhaustsRetries(t *testing.T) {
	db := &fakeDB{}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		return repositoryStyleError(serializationFailure())
	})

	require.Error(t, err)
	assert.Equal(t, maxSerializableRetries, attempts)
	assert.ErrorIs(t, err, bookingRepo.ErrExecQuery)
}

func TestDoSerializable_BusinessErrorNotRetried(t *testing.T) {
	db := &fakeDB{}
	m := NewTransactionManager(db)

	errBusiness := errors.New("slot is not available")

	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	assert.Equal(t, 1, attempts)
}

func TestDoSerializable_CommitSerializationFailureRetried(t *testing.T) {
	// 40001 может прилететь и на коммите сериализуемой транзакции
	db := &fakeDB{commitErrs: []error{serializationFailure(), nil}}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 2, db.begun)
}

// --- IsRetryable ---

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "raw serialization failure", err: &pq.Error{Code: "40001"}, want: true},
		{name: "raw deadlock", err: &pq.Error{Code: "40P01"}, want: true},
		{name: "repository-wrapped serialization failure", err: repositoryStyleError(serializationFailure()), want: true},
		{name: "other pq error", err: &pq.Error{Code: "23P01"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{
			// %v вместо %w обрывает цепочку — такая ошибка уже не повторяется
			name: "chain severed by %v formatting",
			err:  fmt.Errorf("execute query: %v", serializationFailure()),
			want: false,
		},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
