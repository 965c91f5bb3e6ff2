package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-polls-service/internal/service"
	"github.com/pribylovaa/go-polls-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(s *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Identity(),           // вынимаем X-User-Id в контекст
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := NewHandlers(s)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *Handlers) {
	// polls
	r.Post("/polls", h.CreatePoll)
	r.Get("/polls", h.ListPolls)
	r.Get("/polls/search", h.ListPolls) // алиас листинга с ?q=
	r.Get("/polls/{id}", h.PollByID)
	r.Patch("/polls/{id}", h.UpdatePoll)
	r.Delete("/polls/{id}", h.DeletePoll)

	// options (текст варианта уходит в теле: в нём легальны пробелы и слэши)
	r.Post("/polls/{id}/options", h.AddOption)
	r.Delete("/polls/{id}/options", h.DelOption)

	// votes / shares / bookmarks
	r.Post("/polls/{id}/vote", h.VoteAdd)
	r.Patch("/polls/{id}/vote", h.VoteUpdate)
	r.Delete("/polls/{id}/vote", h.VoteDelete)
	r.Post("/polls/{id}/share", h.Share)
	r.Delete("/polls/{id}/share", h.Unshare)
	r.Post("/polls/{id}/bookmark", h.Bookmark)
	r.Delete("/polls/{id}/bookmark", h.Unbookmark)

	// comments
	r.Post("/polls/{id}/comments", h.CreateComment)
	r.Get("/polls/{id}/comments", h.ListComments)
	r.Get("/comments/{id}", h.CommentByID)
	r.Patch("/comments/{id}", h.UpdateComment)
	r.Delete("/comments/{id}", h.DeleteComment)
}
