// service содержит бизнес-логику polls-сервиса.
package service

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-polls-service/internal/config"
	"github.com/pribylovaa/go-polls-service/internal/models"
	"github.com/pribylovaa/go-polls-service/internal/storage"
)

var (
	// ErrInvalidArgument — неверные входные параметры запроса к сервису
	// (битый id, нарушенные границы полей, неизвестный вариант и т.п.).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied — операция доступна только владельцу, либо
	// приватный опрос читает не владелец.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrAlreadyExists — повторный голос/репост/закладка или дубль текста варианта.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCursor — битый/чужой page_token.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrInternal — внутренняя ошибка (сторадж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
)

// ProfileProvider — внешний сервис профилей: карточка владельца для выдачи.
// Недоступность профилей не валит read-path — декорация опциональна.
type ProfileProvider interface {
	OwnerSummary(ctx context.Context, userID int64) (*models.OwnerSummary, error)
}

// Service — описывает бизнес-логику polls-service.
type Service struct {
	storage  storage.Storage
	profiles ProfileProvider
	cfg      config.Config
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, profiles ProfileProvider, cfg config.Config) *Service {
	return &Service{
		storage:  storage,
		profiles: profiles,
		cfg:      cfg,
	}
}

// isPollID проверяет внешний формат идентификатора: ровно 24 символа
// шестнадцатеричного алфавита в нижнем регистре. Отбраковываем до любого
// обращения к хранилищу.
func isPollID(id string) bool {
	if len(id) != 24 {
		return false
	}

	for _, c := range id {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}

	return true
}
