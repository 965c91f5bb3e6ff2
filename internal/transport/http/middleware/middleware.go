package middleware

import (
	"net/http"
)

// Middleware — обёртка над http.Handler; роутер polls-service навешивает
// их через chi.Use, Chain нужен для сборки цепочек в тестах.
type Middleware func(http.Handler) http.Handler

// Chain оборачивает h мидлварами; первый из mws оказывается внешним.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// statusWriter перехватывает статус и объём ответа для access-лога.
// До первого WriteHeader/Write статус считается нулевым; Write без
// явного WriteHeader фиксирует 200, как это делает net/http.
type statusWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	count, err := w.ResponseWriter.Write(p)
	w.count += count
	return count, err
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w}
}
