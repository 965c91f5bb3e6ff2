package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout навешивает на запрос общий дедлайн timeouts.service: он накрывает
// и сервисную логику, и Mongo-операции, так что запрос не живёт дольше d
// даже если транзакция зависла. Уже установленный дедлайн (например, от
// вышестоящего гейтвея) не перекрывается.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		// d<=0 — дедлайн выключен, отдаём handler без обёртки.
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
