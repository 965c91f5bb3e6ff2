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

// Максимальная длина текста комментария.
const maxCommentLen = 1000

// CreateComment — комментарий к опросу.
//
// Валидация:
//   - userID > 0;
//   - content нормализуется (TrimSpace), непустой, ограничен по длине;
//   - опрос существует и видим автору (приватный — только владельцу).
//
// comments_counter опроса инкрементируется транзакционно на стороне хранилища.
func (s *Service) CreateComment(ctx context.Context, pollID string, userID int64, content string) (*models.Comment, error) {
	const op = "service/comments/CreateComment"

	pollID = strings.TrimSpace(pollID)
	lg := log.From(ctx).With("op", op, "poll_id", pollID, "user_id", userID)

	if userID <= 0 {
		lg.Warn("invalid argument: empty user_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxCommentLen {
		lg.Warn("invalid argument: bad content")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if _, err := s.loadVisiblePoll(ctx, op, pollID, &userID); err != nil {
		return nil, err
	}

	result, err := s.storage.CreateComment(ctx, models.Comment{
		PollID:  pollID,
		UserID:  userID,
		Content: content,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("poll not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on CreateComment", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// CommentByID — получить комментарий по ID.
func (s *Service) CommentByID(ctx context.Context, id string) (*models.Comment, error) {
	const op = "service/comments/CommentByID"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if !isPollID(id) {
		lg.Warn("invalid argument: bad comment id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.storage.CommentByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on CommentByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// UpdateComment — правка текста. Только автор комментария.
func (s *Service) UpdateComment(ctx context.Context, id string, userID int64, content string) (*models.Comment, error) {
	const op = "service/comments/UpdateComment"

	lg := log.From(ctx).With("op", op, "id", id, "user_id", userID)

	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxCommentLen {
		lg.Warn("invalid argument: bad content")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	comment, err := s.CommentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if comment.UserID != userID {
		lg.Warn("author-only operation")
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	result, err := s.storage.UpdateComment(ctx, comment.ID, content)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on UpdateComment", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// DeleteComment — удаление комментария автором. comments_counter опроса
// декрементируется транзакционно на стороне хранилища.
func (s *Service) DeleteComment(ctx context.Context, id string, userID int64) error {
	const op = "service/comments/DeleteComment"

	lg := log.From(ctx).With("op", op, "id", id, "user_id", userID)

	comment, err := s.CommentByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		lg.Warn("author-only operation")
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	if err := s.storage.DeleteComment(ctx, comment.ID, comment.PollID); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DeleteComment", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}

// ListComments — страница комментариев опроса (сначала новые).
// Видимость опроса проверяется до выборки.
func (s *Service) ListComments(ctx context.Context, pollID string, viewerID *int64, p models.ListParams) (*models.CommentPage, error) {
	const op = "service/comments/ListComments"

	pollID = strings.TrimSpace(pollID)
	lg := log.From(ctx).With("op", op, "poll_id", pollID)

	if _, err := s.loadVisiblePoll(ctx, op, pollID, viewerID); err != nil {
		return nil, err
	}

	page, err := s.storage.ListCommentsByPoll(ctx, pollID, p)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidCursor):
			lg.Warn("invalid cursor")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
		default:
			lg.Error("storage error on ListCommentsByPoll", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return page, nil
}
