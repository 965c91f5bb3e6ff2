package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-polls-service/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrOptionNotFound — в опросе нет варианта с таким текстом.
	ErrOptionNotFound = errors.New("option not found")
	// ErrConflict — конфликт уникальности или состояния
	// (повторный голос/репост/закладка, снятие несуществующей отметки).
	ErrConflict = errors.New("conflict")
	// ErrInvalidCursor — битый/чужой page_token.
	ErrInvalidCursor = errors.New("invalid cursor")
)

// PollUpdate — частичное обновление опроса.
// nil-поле означает «не трогать»; AddOptions/DelOptions применяются
// в той же транзакции, что и изменение полей.
type PollUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Privacy     *models.Privacy
	AddOptions  []models.Option
	DelOptions  []string
}

// ListFilter — единый фильтр видимости для всех листинговых выборок.
// ViewerID == nil — анонимный зритель (видит только публичные опросы);
// OwnerID != nil — дополнительное сужение по владельцу;
// Query — полнотекстовый поиск по title+description+category.
type ListFilter struct {
	ViewerID *int64
	OwnerID  *int64
	Query    string
}

// Storage описывает операции polls-сервиса над документным хранилищем.
//
// Контракт по транзакциям: каждая операция, затрагивающая более одного
// документа (парные обновления счётчиков, каскадное удаление), выполняется
// в одной транзакции — либо применяются обе записи, либо ни одной.
type Storage interface {
	// CreatePoll вставляет новый опрос. Игнорируемые/вычисляемые поля:
	// ID, CreatedAt, Voters, счётчики.
	CreatePoll(ctx context.Context, poll models.Poll) (*models.Poll, error)

	// PollByID возвращает опрос по hex-идентификатору.
	// Некорректный формат id трактуется как ErrNotFound.
	PollByID(ctx context.Context, id string) (*models.Poll, error)

	// UpdatePoll в одной транзакции применяет изменение полей,
	// добавление и удаление вариантов. Возвращает обновлённый опрос.
	// Уникальность добавляемых текстов контролирует вызывающая сторона.
	UpdatePoll(ctx context.Context, id string, upd PollUpdate) (*models.Poll, error)

	// DeletePoll в одной транзакции удаляет опрос, его комментарии
	// и все записи user_actions по нему.
	DeletePoll(ctx context.Context, id string) error

	// AddOption — атомарный push одного варианта (одна запись, без транзакции).
	AddOption(ctx context.Context, pollID string, opt models.Option) error

	// DelOption — атомарный pull варианта по тексту (одна запись, без транзакции).
	// Если вариант не найден — ErrOptionNotFound.
	DelOption(ctx context.Context, pollID string, optionText string) error

	// ListPolls возвращает страницу опросов по фильтру видимости.
	// Сортировка: created_at DESC, _id DESC. При битом page_token — ErrInvalidCursor.
	ListPolls(ctx context.Context, f ListFilter, p models.ListParams) (*models.PollPage, error)

	// UserAction возвращает запись действий пары (poll, user).
	// Если записи нет — ErrNotFound.
	UserAction(ctx context.Context, pollID string, userID int64) (*models.UserAction, error)

	// CreateUserAction вставляет пустую запись действий.
	// Повторная вставка по той же паре — ErrConflict (уникальный индекс).
	CreateUserAction(ctx context.Context, pollID string, userID int64) (*models.UserAction, error)

	// InsertVote в одной транзакции проставляет has_voted (upsert),
	// добавляет пользователя в voters, инкрементирует votes_counter
	// и votes выбранного варианта.
	// Повторный голос — ErrConflict; неизвестный вариант — ErrOptionNotFound.
	InsertVote(ctx context.Context, pollID string, userID int64, option string) error

	// UpdateVote в одной транзакции меняет has_voted.vote и перекладывает
	// голос со старого варианта на новый. Если текущий голос не oldOption — ErrConflict.
	UpdateVote(ctx context.Context, pollID string, userID int64, newOption, oldOption string) error

	// DeleteVote в одной транзакции снимает has_voted, убирает пользователя
	// из voters, декрементирует votes_counter и votes варианта.
	// Если голоса нет — ErrConflict.
	DeleteVote(ctx context.Context, pollID string, userID int64, oldOption string) error

	// SetShared/UnsetShared — парное обновление has_shared и shares_counter.
	SetShared(ctx context.Context, pollID string, userID int64) error
	UnsetShared(ctx context.Context, pollID string, userID int64) error

	// SetBookmarked/UnsetBookmarked — парное обновление has_bookmarked и bookmarks_counter.
	SetBookmarked(ctx context.Context, pollID string, userID int64) error
	UnsetBookmarked(ctx context.Context, pollID string, userID int64) error

	// CreateComment вставляет комментарий и инкрементирует comments_counter
	// опроса в одной транзакции.
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)

	// CommentByID возвращает комментарий по идентификатору.
	CommentByID(ctx context.Context, id string) (*models.Comment, error)

	// UpdateComment меняет текст комментария (одна запись, без счётчиков).
	UpdateComment(ctx context.Context, id string, content string) (*models.Comment, error)

	// DeleteComment удаляет комментарий и декрементирует comments_counter
	// опроса в одной транзакции.
	DeleteComment(ctx context.Context, id string, pollID string) error

	// ListCommentsByPoll возвращает страницу комментариев опроса.
	// Сортировка: created_at DESC, _id DESC. При битом page_token — ErrInvalidCursor.
	ListCommentsByPoll(ctx context.Context, pollID string, p models.ListParams) (*models.CommentPage, error)

	// Close закрывает соединения/ресурсы хранилища.
	Close(ctx context.Context) error
}
