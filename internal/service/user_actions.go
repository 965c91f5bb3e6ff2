package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/go-polls-service/internal/models"
	"github.com/pribylovaa/go-polls-service/internal/pkg/log"
	"github.com/pribylovaa/go-polls-service/internal/storage"
)

// Операции над действиями пользователя (голос/репост/закладка).
//
// Общая схема: проверили видимость опроса -> загрузили текущую запись
// действий -> проверили предусловие -> выполнили парную запись в хранилище.
// Сервисная проверка «уже голосовал» закрывает UX-ошибки; гонку двух
// одновременных запросов одного пользователя закрывает уникальный индекс
// (poll_id, user_id) на уровне хранилища.

// VoteAdd — первый голос пользователя в опросе.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — битый id, пустой/неизвестный вариант;
//   - ErrPermissionDenied — приватный опрос не владельца;
//   - ErrAlreadyExists — голос уже есть (в т.ч. проигранная гонка);
//   - ErrInternal — прочие ошибки стораджа.
func (s *Service) VoteAdd(ctx context.Context, pollID string, userID int64, option string) error {
	const op = "service/user_actions/VoteAdd"

	pollID = strings.TrimSpace(pollID)
	option = strings.TrimSpace(option)
	lg := log.From(ctx).With("op", op, "poll_id", pollID, "user_id", userID)

	poll, ua, err := s.loadPollAndAction(ctx, op, pollID, userID)
	if err != nil {
		return err
	}

	if option == "" || poll.OptionByText(option) == nil {
		lg.Warn("unknown option", "option", option)
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if ua != nil && ua.Voted != nil {
		lg.Warn("already voted")
		return fmt.Errorf("%s: already voted: %w", op, ErrAlreadyExists)
	}

	if ua == nil {
		// Ленивое создание пустой записи действий. Проигрыш гонки за вставку
		// не страшен: дальше работаем апдейтами по естественному ключу.
		if _, err := s.storage.CreateUserAction(ctx, pollID, userID); err != nil && !errors.Is(err, storage.ErrConflict) {
			lg.Error("storage error on CreateUserAction", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if err := s.storage.InsertVote(ctx, pollID, userID, option); err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("already voted (storage)")
			return fmt.Errorf("%s: already voted: %w", op, ErrAlreadyExists)
		case errors.Is(err, storage.ErrOptionNotFound):
			lg.Warn("option vanished before vote")
			return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("poll not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on InsertVote", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}

// VoteUpdate — смена голоса на другой вариант.
// Требует существующего голоса; голос за тот же вариант — no-op.
func (s *Service) VoteUpdate(ctx context.Context, pollID string, userID int64, option string) error {
	const op = "service/user_actions/VoteUpdate"

	pollID = strings.TrimSpace(pollID)
	option = strings.TrimSpace(option)
	lg := log.From(ctx).With("op", op, "poll_id", pollID, "user_id", userID)

	poll, ua, err := s.loadPollAndAction(ctx, op, pollID, userID)
	if err != nil {
		return err
	}

	if option == "" || poll.OptionByText(option) == nil {
		lg.Warn("unknown option", "option", option)
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if ua == nil || ua.Voted == nil {
		lg.Warn("no existing vote")
		return fmt.Errorf("%s: no vote to update: %w", op, ErrInvalidArgument)
	}

	// Переголосование за тот же вариант не меняет состояние.
	if ua.Voted.Vote == option {
		return nil
	}

	if err := s.storage.UpdateVote(ctx, pollID, userID, option, ua.Voted.Vote); err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("vote changed concurrently")
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		case errors.Is(err, storage.ErrOptionNotFound):
			lg.Warn("option vanished before revote")
			return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("poll not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on UpdateVote", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}

// VoteDelete — снятие голоса. Требует существующего голоса.
func (s *Service) VoteDelete(ctx context.Context, pollID string, userID int64) error {
	const op = "service/user_actions/VoteDelete"

	pollID = strings.TrimSpace(pollID)
	lg := log.From(ctx).With("op", op, "poll_id", pollID, "user_id", userID)

	_, ua, err := s.loadPollAndAction(ctx, op, pollID, userID)
	if err != nil {
		return err
	}

	if ua == nil || ua.Voted == nil {
		lg.Warn("no existing vote")
		return fmt.Errorf("%s: no vote to delete: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.DeleteVote(ctx, pollID, userID, ua.Voted.Vote); err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("vote changed concurrently")
			return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("poll not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DeleteVote", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}

// Share — отметка «поделился». Повторный репост — ErrAlreadyExists.
func (s *Service) Share(ctx context.Context, pollID string, userID int64) error {
	const op = "service/user_actions/Share"

	return s.setMark(ctx, op, pollID, userID,
		func(ua *models.UserAction) bool { return ua != nil && ua.Shared != nil },
		s.storage.SetShared)
}

// Unshare — снятие отметки «поделился». Отсутствующая отметка — ErrInvalidArgument.
func (s *Service) Unshare(ctx context.Context, pollID string, userID int64) error {
	const op = "service/user_actions/Unshare"

	return s.unsetMark(ctx, op, pollID, userID,
		func(ua *models.UserAction) bool { return ua != nil && ua.Shared != nil },
		s.storage.UnsetShared)
}

// Bookmark — добавление в закладки. Повтор — ErrAlreadyExists.
func (s *Service) Bookmark(ctx context.Context, pollID string, userID int64) error {
	const op = "service/user_actions/Bookmark"

	return s.setMark(ctx, op, pollID, userID,
		func(ua *models.UserAction) bool { return ua != nil && ua.Bookmarked != nil },
		s.storage.SetBookmarked)
}

// Unbookmark — удаление из закладок. Отсутствующая отметка — ErrInvalidArgument.
func (s *Service) Unbookmark(ctx context.Context, pollID string, userID int64) error {
	const op = "service/user_actions/Unbookmark"

	return s.unsetMark(ctx, op, pollID, userID,
		func(ua *models.UserAction) bool { return ua != nil && ua.Bookmarked != nil },
		s.storage.UnsetBookmarked)
}

// setMark — общий сценарий «поставить отметку»: видимость опроса, проверка
// «ещё не стоит», ленивый шелл, парная запись.
func (s *Service) setMark(ctx context.Context, op, pollID string, userID int64,
	marked func(*models.UserAction) bool,
	apply func(context.Context, string, int64) error,
) error {
	pollID = strings.TrimSpace(pollID)
	lg := log.From(ctx).With("op", op, "poll_id", pollID, "user_id", userID)

	_, ua, err := s.loadPollAndAction(ctx, op, pollID, userID)
	if err != nil {
		return err
	}

	if marked(ua) {
		lg.Warn("mark already set")
		return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	}

	if ua == nil {
		if _, err := s.storage.CreateUserAction(ctx, pollID, userID); err != nil && !errors.Is(err, storage.ErrConflict) {
			lg.Error("storage error on CreateUserAction", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if err := apply(ctx, pollID, userID); err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("mark already set (storage)")
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("poll not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on set mark", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}

// unsetMark — общий сценарий «снять отметку»: требует существующей отметки.
func (s *Service) unsetMark(ctx context.Context, op, pollID string, userID int64,
	marked func(*models.UserAction) bool,
	apply func(context.Context, string, int64) error,
) error {
	pollID = strings.TrimSpace(pollID)
	lg := log.From(ctx).With("op", op, "poll_id", pollID, "user_id", userID)

	_, ua, err := s.loadPollAndAction(ctx, op, pollID, userID)
	if err != nil {
		return err
	}

	if !marked(ua) {
		lg.Warn("mark not set")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := apply(ctx, pollID, userID); err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("mark removed concurrently")
			return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("poll not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on unset mark", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}

// loadPollAndAction — общая прелюдия операций над действиями: видимый опрос
// плюс текущая запись действий (nil, если её ещё нет).
func (s *Service) loadPollAndAction(ctx context.Context, op, pollID string, userID int64) (*models.Poll, *models.UserAction, error) {
	lg := log.From(ctx).With("op", op, "poll_id", pollID, "user_id", userID)

	if userID <= 0 {
		lg.Warn("invalid argument: empty user_id")
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	poll, err := s.loadVisiblePoll(ctx, op, pollID, &userID)
	if err != nil {
		return nil, nil, err
	}

	ua, err := s.storage.UserAction(ctx, pollID, userID)
	switch {
	case err == nil:
		return poll, ua, nil
	case errors.Is(err, storage.ErrNotFound):
		return poll, nil, nil
	default:
		lg.Error("storage error on UserAction", "err", err)
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}
}
