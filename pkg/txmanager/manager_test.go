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

	"github.com/m04kA/RentEase-BookingService/pkg/dbmetrics"
)

// fakeTx транзакция, возвращающая заданные ошибки на коммите
type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
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

// fakeTxBeginner выдает по одной транзакции из очереди на каждый BeginTx
type fakeTxBeginner struct {
	txs    []*fakeTx
	begins int
}

func (b *fakeTxBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.begins >= len(b.txs) {
		return nil, errors.New("no more transactions")
	}
	tx := b.txs[b.begins]
	b.begins++
	return tx, nil
}

func serializationErr() *pq.Error {
	return &pq.Error{Code: "40001"}
}

func TestDoSerializable_RetriesAfterCommitSerializationFailure(t *testing.T) {
	// Первый коммит падает с 40001, второй проходит:
	// функция должна быть вызвана заново с новой транзакцией
	beginner := &fakeTxBeginner{txs: []*fakeTx{
		{commitErr: serializationErr()},
		{},
	}}
	m := NewTransactionManager(beginner)

	fnCalls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		fnCalls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, fnCalls)
	assert.Equal(t, 2, beginner.begins)
	assert.True(t, beginner.txs[0].committed)
	assert.True(t, beginner.txs[1].committed)
}

func TestDoSerializable_RetriesAfterFnSerializationFailure(t *testing.T) {
	// Ошибка 40001 из функции (например, из SELECT FOR UPDATE) тоже повторяется,
	// даже если репозиторий обернул её своим sentinel-ом
	beginner := &fakeTxBeginner{txs: []*fakeTx{{}, {}}}
	m := NewTransactionManager(beginner)

	repoSentinel := errors.New("repo: failed to execute query")
	fnCalls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		fnCalls++
		if fnCalls == 1 {
			return fmt.Errorf("%w: execute query: %w", repoSentinel, serializationErr())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, fnCalls)
	assert.True(t, beginner.txs[0].rolledBack)
	assert.True(t, beginner.txs[1].committed)
}

func TestDoSerializable_NonRetriableErrorReturnsImmediately(t *testing.T) {
	beginner := &fakeTxBeginner{txs: []*fakeTx{{}, {}, {}}}
	m := NewTransactionManager(beginner)

	boom := errors.New("constraint violation")
	fnCalls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		fnCalls++
		return boom
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, fnCalls)
	assert.Equal(t, 1, beginner.begins)
}

func TestDoSerializable_ExhaustedRetriesKeepCause(t *testing.T) {
	// После исчерпания повторов ошибка остается распознаваемой
	// как сбой сериализации, чтобы вызывающая сторона вернула конфликт
	beginner := &fakeTxBeginner{txs: []*fakeTx{
		{commitErr: serializationErr()},
		{commitErr: serializationErr()},
		{commitErr: serializationErr()},
	}}
	m := NewTransactionManager(beginner)

	fnCalls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		fnCalls++
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTxFailed)
	assert.True(t, IsSerializationFailure(err))
	assert.Equal(t, maxSerializableRetries, fnCalls)
}

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "голая ошибка 40001",
			err:  &pq.Error{Code: "40001"},
			want: true,
		},
		{
			name: "дедлок 40P01",
			err:  &pq.Error{Code: "40P01"},
			want: true,
		},
		{
			name: "40001 обернутая на коммите",
			err:  fmt.Errorf("%w: commit: %w", ErrTxFailed, &pq.Error{Code: "40001"}),
			want: true,
		},
		{
			name: "40001 обернутая репозиторием и use case",
			err: fmt.Errorf("internal error: failed to get bookings: %w",
				fmt.Errorf("failed to execute query: %w", &pq.Error{Code: "40001"})),
			want: true,
		},
		{
			name: "другой код pq",
			err:  &pq.Error{Code: "23P01"},
			want: false,
		},
		{
			name: "не pq-ошибка",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSerializationFailure(tt.err))
		})
	}
}
