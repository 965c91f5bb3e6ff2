package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	apierrors "github.com/pribylovaa/go-polls-service/internal/errors"
	"github.com/pribylovaa/go-polls-service/internal/service"
	"github.com/pribylovaa/go-polls-service/internal/transport/http/middleware"
)

// Handlers агрегирует зависимости REST-слоя.
type Handlers struct {
	Service *service.Service
}

func NewHandlers(s *service.Service) *Handlers {
	return &Handlers{Service: s}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidArgument — локальная ошибка парсинга запроса.
func errInvalidArgument() error {
	return fmt.Errorf("transport: %w", service.ErrInvalidArgument)
}

// requireUser — обязательная идентификация: мутации без X-User-Id не выполняем.
func requireUser(r *http.Request) (int64, error) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		return 0, apierrors.ErrUnauthenticated
	}

	return id, nil
}

// viewerID — опциональная идентификация для read-path.
func viewerID(r *http.Request) *int64 {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		return nil
	}

	return &id
}

// pageParams разбирает page_size/page_token из query.
func pageParams(r *http.Request) (int32, string, error) {
	var size int32

	if v := r.URL.Query().Get("page_size"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			return 0, "", errInvalidArgument()
		}

		size = int32(n)
	}

	return size, r.URL.Query().Get("page_token"), nil
}
