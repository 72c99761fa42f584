package dbmetrics

import "context"

type ctxKey struct{}

// WithExecutor кладет исполнитель транзакции в context.
// Используется transaction manager'ами, чтобы репозитории выполняли
// запросы в рамках активной транзакции.
func WithExecutor(ctx context.Context, executor DBExecutor) context.Context {
	return context.WithValue(ctx, ctxKey{}, executor)
}

// GetExecutor возвращает исполнитель из context, если транзакция активна,
// иначе fallback (обычно это db репозитория)
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if executor, ok := ctx.Value(ctxKey{}).(DBExecutor); ok {
		return executor
	}
	return fallback
}

// IsInTransaction сообщает, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(ctxKey{}).(DBExecutor)
	return ok
}
