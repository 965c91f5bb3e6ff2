// log переносит request-scoped *slog.Logger через context.
//
// HTTP-мидлвар кладёт логгер с request_id в контекст запроса; нижележащие
// слои достают его через From и пишут в общий поток с тем же id, не зная
// ничего про транспорт.
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into возвращает контекст с привязанным логгером.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From возвращает логгер из контекста.
// Если там пусто, мусор или nil-логгер — slog.Default(): вызывающий код
// всегда получает рабочий логгер.
func From(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}

	return slog.Default()
}
