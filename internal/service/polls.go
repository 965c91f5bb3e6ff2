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

// Границы полей опроса. Лимит в 2–18 вариантов действует при создании и
// полном обновлении; одиночный DelOption может опустить опрос ниже минимума —
// осознанно сохранённое поведение (см. DESIGN.md).
const (
	minOptions = 2
	maxOptions = 18

	maxTitleLen       = 140
	maxDescriptionLen = 2000
	maxCategoryLen    = 64
	maxOptionLen      = 100
)

// Входные структуры сервисного слоя.

// CreatePollInput — создание опроса владельцем.
type CreatePollInput struct {
	OwnerID     int64
	Title       string
	Description string
	Category    string
	Privacy     models.Privacy
	Options     []string
}

// UpdatePollInput — частичное обновление опроса владельцем.
// nil-поле — «не трогать»; AddOptions/DelOptions — диф списка вариантов.
type UpdatePollInput struct {
	Title       *string
	Description *string
	Category    *string
	Privacy     *models.Privacy
	AddOptions  []string
	DelOptions  []string
}

// ListPollsInput — параметры постраничной выдачи опросов.
// ViewerID == nil — анонимный зритель; Query — полнотекстовый поиск.
type ListPollsInput struct {
	ViewerID  *int64
	OwnerID   *int64
	Query     string
	PageSize  int32
	PageToken string
}

// CreatePoll — бизнес-операция создания опроса.
//
// Валидация:
//   - OwnerID > 0;
//   - Title/Description/Category нормализуются (TrimSpace) и ограничены по длине,
//     Title обязателен;
//   - Privacy из допустимого набора;
//   - вариантов от 2 до 18, тексты непустые и уникальные.
//
// Варианты создаются с votes=0 и owner_user_id владельца опроса.
func (s *Service) CreatePoll(ctx context.Context, in CreatePollInput) (*models.Poll, error) {
	const op = "service/polls/CreatePoll"

	lg := log.From(ctx).With("op", op, "owner_id", in.OwnerID)

	if in.OwnerID <= 0 {
		lg.Warn("invalid argument: empty owner_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || len(in.Title) > maxTitleLen {
		lg.Warn("invalid argument: bad title")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Description = strings.TrimSpace(in.Description)
	if len(in.Description) > maxDescriptionLen {
		lg.Warn("invalid argument: description too long")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Category = strings.TrimSpace(in.Category)
	if len(in.Category) > maxCategoryLen {
		lg.Warn("invalid argument: category too long")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if !in.Privacy.Valid() {
		lg.Warn("invalid argument: bad privacy")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	texts, err := normalizeOptionTexts(in.Options)
	if err != nil {
		lg.Warn("invalid argument: bad options", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if len(texts) < minOptions || len(texts) > maxOptions {
		lg.Warn("invalid argument: options count out of range", "count", len(texts))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	opts := make([]models.Option, 0, len(texts))
	for _, t := range texts {
		opts = append(opts, models.Option{OwnerID: in.OwnerID, Text: t})
	}

	poll := models.Poll{
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Privacy:     in.Privacy,
		Options:     opts,
	}

	result, err := s.storage.CreatePoll(ctx, poll)
	if err != nil {
		lg.Error("storage error on CreatePoll", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return result, nil
}

// PollByID — получить опрос по ID с декорацией.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — id не 24-символьный hex;
//   - ErrNotFound — опроса нет;
//   - ErrPermissionDenied — приватный опрос читает не владелец;
//   - карточка владельца подтягивается из сервиса профилей, его недоступность
//     не валит чтение — поле просто отсутствует;
//   - для авторизованного зрителя прикладывается проекция его действий.
func (s *Service) PollByID(ctx context.Context, id string, viewerID *int64) (*models.PollView, error) {
	const op = "service/polls/PollByID"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "poll_id", id)

	poll, err := s.loadVisiblePoll(ctx, op, id, viewerID)
	if err != nil {
		return nil, err
	}

	view := &models.PollView{Poll: *poll}

	if owner, err := s.profiles.OwnerSummary(ctx, poll.OwnerID); err != nil {
		// Декорация опциональна: фиксируем и продолжаем без карточки.
		lg.Warn("owner summary unavailable", "owner_id", poll.OwnerID, "err", err)
	} else {
		view.Owner = owner
	}

	if viewerID != nil {
		ua, err := s.storage.UserAction(ctx, poll.ID, *viewerID)
		switch {
		case err == nil:
			view.Viewer = ua.Summary()
		case errors.Is(err, storage.ErrNotFound):
			view.Viewer = (*models.UserAction)(nil).Summary()
		default:
			lg.Error("storage error on UserAction", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return view, nil
}

// UpdatePoll — частичное обновление опроса. Только владелец.
//
// Диф вариантов проверяется на текущем состоянии: добавляемые тексты не должны
// коллидировать с существующими (ErrAlreadyExists), удаляемые должны
// существовать, итоговое число вариантов остаётся в [2, 18].
func (s *Service) UpdatePoll(ctx context.Context, id string, userID int64, in UpdatePollInput) (*models.Poll, error) {
	const op = "service/polls/UpdatePoll"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "poll_id", id, "user_id", userID)

	poll, err := s.loadOwnedPoll(ctx, op, id, userID)
	if err != nil {
		return nil, err
	}

	upd := storage.PollUpdate{}

	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" || len(t) > maxTitleLen {
			lg.Warn("invalid argument: bad title")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		upd.Title = &t
	}

	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if len(d) > maxDescriptionLen {
			lg.Warn("invalid argument: description too long")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		upd.Description = &d
	}

	if in.Category != nil {
		c := strings.TrimSpace(*in.Category)
		if len(c) > maxCategoryLen {
			lg.Warn("invalid argument: category too long")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		upd.Category = &c
	}

	if in.Privacy != nil {
		if !in.Privacy.Valid() {
			lg.Warn("invalid argument: bad privacy")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		upd.Privacy = in.Privacy
	}

	addTexts, err := normalizeOptionTexts(in.AddOptions)
	if err != nil {
		lg.Warn("invalid argument: bad add_options", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	existing := make(map[string]struct{}, len(poll.Options))
	for _, o := range poll.Options {
		existing[o.Text] = struct{}{}
	}

	for _, t := range addTexts {
		if _, ok := existing[t]; ok {
			lg.Warn("option text already exists", "option", t)
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
	}

	for _, t := range in.DelOptions {
		if _, ok := existing[strings.TrimSpace(t)]; !ok {
			lg.Warn("option to delete not found", "option", t)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
	}

	total := len(poll.Options) + len(addTexts) - len(in.DelOptions)
	if total < minOptions || total > maxOptions {
		lg.Warn("invalid argument: options count out of range", "count", total)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	for _, t := range addTexts {
		// Добавляемые при полном обновлении варианты принадлежат владельцу.
		upd.AddOptions = append(upd.AddOptions, models.Option{OwnerID: userID, Text: t})
	}
	for _, t := range in.DelOptions {
		upd.DelOptions = append(upd.DelOptions, strings.TrimSpace(t))
	}

	result, err := s.storage.UpdatePoll(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("poll not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on UpdatePoll", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// DeletePoll — удаление опроса владельцем. Вместе с опросом транзакционно
// удаляются его комментарии и записи user_actions.
func (s *Service) DeletePoll(ctx context.Context, id string, userID int64) error {
	const op = "service/polls/DeletePoll"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "poll_id", id, "user_id", userID)

	if _, err := s.loadOwnedPoll(ctx, op, id, userID); err != nil {
		return err
	}

	if err := s.storage.DeletePoll(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("poll not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DeletePoll", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}

// AddOption — добавление одного варианта.
//
// Правила:
//   - к приватному опросу вариант добавляет только владелец;
//   - не-владелец может иметь не больше одного своего варианта в опросе;
//   - текст не должен совпадать с существующим (ErrAlreadyExists).
//
// Новый вариант получает votes=0 и owner_user_id автора.
func (s *Service) AddOption(ctx context.Context, pollID string, userID int64, optionText string) (*models.Poll, error) {
	const op = "service/polls/AddOption"

	pollID = strings.TrimSpace(pollID)
	lg := log.From(ctx).With("op", op, "poll_id", pollID, "user_id", userID)

	poll, err := s.loadVisiblePoll(ctx, op, pollID, &userID)
	if err != nil {
		return nil, err
	}

	optionText = strings.TrimSpace(optionText)
	if optionText == "" || len(optionText) > maxOptionLen {
		lg.Warn("invalid argument: bad option text")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if userID != poll.OwnerID {
		// Не-владелец добавляет не больше одного варианта.
		for _, o := range poll.Options {
			if o.OwnerID == userID {
				lg.Warn("non-owner already has an option")
				return nil, fmt.Errorf("%s: you can only add one option: %w", op, ErrPermissionDenied)
			}
		}
	}

	if poll.OptionByText(optionText) != nil {
		lg.Warn("option text already exists", "option", optionText)
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	}

	opt := models.Option{OwnerID: userID, Text: optionText}
	if err := s.storage.AddOption(ctx, pollID, opt); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("poll not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on AddOption", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	poll.Options = append(poll.Options, opt)
	return poll, nil
}

// DelOption — удаление варианта. Только владелец опроса: не-владелец не может
// удалить даже свой вариант (асимметрия с AddOption сохранена осознанно).
func (s *Service) DelOption(ctx context.Context, pollID string, userID int64, optionText string) error {
	const op = "service/polls/DelOption"

	pollID = strings.TrimSpace(pollID)
	lg := log.From(ctx).With("op", op, "poll_id", pollID, "user_id", userID)

	poll, err := s.loadOwnedPoll(ctx, op, pollID, userID)
	if err != nil {
		return err
	}

	optionText = strings.TrimSpace(optionText)
	if poll.OptionByText(optionText) == nil {
		lg.Warn("option not found", "option", optionText)
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if err := s.storage.DelOption(ctx, pollID, optionText); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrOptionNotFound):
			lg.Warn("option not found on delete")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DelOption", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}

// ListPolls — страница опросов. Фильтрация по видимости выполняется
// на стороне хранилища единым предикатом для всех листинговых путей.
func (s *Service) ListPolls(ctx context.Context, in ListPollsInput) (*models.PollPage, error) {
	const op = "service/polls/ListPolls"

	lg := log.From(ctx).With("op", op)

	f := storage.ListFilter{
		ViewerID: in.ViewerID,
		OwnerID:  in.OwnerID,
		Query:    strings.TrimSpace(in.Query),
	}

	page, err := s.storage.ListPolls(ctx, f, models.ListParams{
		PageSize:  in.PageSize,
		PageToken: in.PageToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidCursor):
			lg.Warn("invalid cursor")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
		default:
			lg.Error("storage error on ListPolls", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return page, nil
}

// loadVisiblePoll валидирует формат id, загружает опрос и применяет правило
// приватности: приватный опрос виден только владельцу.
func (s *Service) loadVisiblePoll(ctx context.Context, op, id string, viewerID *int64) (*models.Poll, error) {
	lg := log.From(ctx).With("op", op, "poll_id", id)

	if !isPollID(id) {
		lg.Warn("invalid argument: bad poll id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	poll, err := s.storage.PollByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("poll not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on PollByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if poll.Privacy == models.PrivacyPrivate {
		if viewerID == nil || *viewerID != poll.OwnerID {
			lg.Warn("private poll access denied")
			return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
		}
	}

	return poll, nil
}

// loadOwnedPoll загружает опрос и требует, чтобы вызывающий был владельцем.
func (s *Service) loadOwnedPoll(ctx context.Context, op, id string, userID int64) (*models.Poll, error) {
	lg := log.From(ctx).With("op", op, "poll_id", id, "user_id", userID)

	poll, err := s.loadVisiblePoll(ctx, op, id, &userID)
	if err != nil {
		return nil, err
	}

	if poll.OwnerID != userID {
		lg.Warn("owner-only operation")
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	return poll, nil
}

// normalizeOptionTexts нормализует и проверяет список текстов вариантов:
// TrimSpace, непустые, ограничение длины, без дублей.
func normalizeOptionTexts(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			return nil, fmt.Errorf("empty option text")
		}

		if len(t) > maxOptionLen {
			return nil, fmt.Errorf("option text too long")
		}

		if _, ok := seen[t]; ok {
			return nil, fmt.Errorf("duplicate option text %q", t)
		}

		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out, nil
}
