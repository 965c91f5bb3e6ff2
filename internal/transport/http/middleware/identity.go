package middleware

import (
	"context"
	"net/http"
	"strconv"
)

type ctxKey int

// ctxUserID — ключ контекста с идентификатором вызывающего пользователя.
const ctxUserID ctxKey = iota

// Identity извлекает идентификатор пользователя из X-User-Id и кладёт его
// в контекст. Заголовок проставляет внешний гейтвей после проверки токена;
// сам сервис токены не разбирает. Отсутствие или мусор в заголовке — не
// ошибка на этом уровне: анонимные чтения легальны, обязательность
// идентификации решает хендлер.
func Identity() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if v := r.Header.Get("X-User-Id"); v != "" {
				if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
					ctx := context.WithValue(r.Context(), ctxUserID, id)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserID возвращает идентификатор пользователя из контекста.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxUserID).(int64)
	return id, ok
}
