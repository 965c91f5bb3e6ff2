// profiles содержит реализации service.ProfileProvider.
//
// Боевой вариант — клиент к внешнему сервису аккаунтов; для локальных
// запусков и тестов достаточно статического провайдера в памяти.
package profiles

import (
	"context"
	"sync"

	"github.com/pribylovaa/go-polls-service/internal/models"
)

// Static — in-process провайдер карточек владельцев.
// Неизвестный пользователь — не ошибка: выдача просто идёт без карточки.
type Static struct {
	mu   sync.RWMutex
	byID map[int64]models.OwnerSummary
}

// NewStatic создает пустой статический провайдер.
func NewStatic() *Static {
	return &Static{byID: make(map[int64]models.OwnerSummary)}
}

// Put добавляет/заменяет карточку пользователя.
func (s *Static) Put(owner models.OwnerSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[owner.UserID] = owner
}

// OwnerSummary реализует service.ProfileProvider.
func (s *Static) OwnerSummary(_ context.Context, userID int64) (*models.OwnerSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owner, ok := s.byID[userID]
	if !ok {
		return nil, nil
	}

	return &owner, nil
}
