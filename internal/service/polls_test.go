package service

// Тесты сервисного слоя опросов (internal/service/polls.go).
//
//  Проверяем:
//  - валидацию входов (границы полей, число вариантов, privacy);
//  - маппинг ошибок storage -> service (NotFound / PermissionDenied / AlreadyExists / InvalidCursor / Internal);
//  - правила видимости (приватный опрос — только владельцу) и владения;
//  - happy-path каждого метода.
//
// Подготовка окружения:
//   # 1) Сгенерировать моки интерфейса хранилища:
//   mockgen -source=./internal/storage/storage.go -destination=./mocks/storage.go -package=mocks
//
//   # 2) Запустить тесты:
//   go test ./internal/service -v -race -count=1

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/go-polls-service/internal/models"
	"github.com/pribylovaa/go-polls-service/internal/storage"
	"github.com/pribylovaa/go-polls-service/mocks"
	"github.com/stretchr/testify/require"
)

const (
	testPollID    = "507f1f77bcf86cd799439011"
	testCommentID = "64f0c5e2a7b3d94c1e8f0a21"
)

// stubProfiles — подменный сервис профилей для тестов.
type stubProfiles struct {
	owner *models.OwnerSummary
	err   error
}

func (p stubProfiles) OwnerSummary(_ context.Context, _ int64) (*models.OwnerSummary, error) {
	return p.owner, p.err
}

// newServiceWithMocks — поднимает сервис с моками стораджа.
func newServiceWithMocks(t *testing.T) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	s := &Service{storage: ms, profiles: stubProfiles{}}
	return s, ms, ctrl
}

// mustPoll — быстрый хелпер для сборки опроса с двумя вариантами владельца.
func mustPoll(ownerID int64, privacy models.Privacy) *models.Poll {
	return &models.Poll{
		ID:      testPollID,
		OwnerID: ownerID,
		Title:   "favorite season",
		Privacy: privacy,
		Options: []models.Option{
			{OwnerID: ownerID, Text: "summer"},
			{OwnerID: ownerID, Text: "winter"},
		},
		Voters:    []int64{},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func ptrI64(v int64) *int64 { return &v }
func ptrStr(v string) *string { return &v }

// Валидация: пустой owner, пустой title, слишком длинный title, битая privacy,
// мало/много/дублирующиеся варианты.
func TestService_CreatePoll_Validation(t *testing.T) {
	s, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ok := CreatePollInput{
		OwnerID: 1, Title: "t", Privacy: models.PrivacyPublic,
		Options: []string{"a", "b"},
	}

	// empty owner
	in := ok
	in.OwnerID = 0
	_, err := s.CreatePoll(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// title -> TrimSpace -> пусто
	in = ok
	in.Title = "   "
	_, err = s.CreatePoll(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// title за пределом длины
	in = ok
	in.Title = strings.Repeat("x", maxTitleLen+1)
	_, err = s.CreatePoll(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// битая privacy
	in = ok
	in.Privacy = models.Privacy("friends-only")
	_, err = s.CreatePoll(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// один вариант
	in = ok
	in.Options = []string{"a"}
	_, err = s.CreatePoll(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// вариантов больше максимума
	in = ok
	in.Options = nil
	for i := 0; i < maxOptions+1; i++ {
		in.Options = append(in.Options, strings.Repeat("o", i+1))
	}
	_, err = s.CreatePoll(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// дубль текста варианта
	in = ok
	in.Options = []string{"a", " a "}
	_, err = s.CreatePoll(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// Маппинг: любая ошибка стораджа на создании -> ErrInternal.
func TestService_CreatePoll_StorageError(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().
		CreatePoll(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	_, err := s.CreatePoll(context.Background(), CreatePollInput{
		OwnerID: 1, Title: "t", Privacy: models.PrivacyPublic,
		Options: []string{"a", "b"},
	})
	require.ErrorIs(t, err, ErrInternal)
}

// Happy-path: проверяем TrimSpace полей и сборку вариантов (votes=0, владелец).
func TestService_CreatePoll_OK(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	want := mustPoll(7, models.PrivacyPublic)

	ms.EXPECT().
		CreatePoll(gomock.Any(), gomock.AssignableToTypeOf(models.Poll{})).
		DoAndReturn(func(_ context.Context, p models.Poll) (*models.Poll, error) {
			require.EqualValues(t, 7, p.OwnerID)
			require.Equal(t, "favorite season", p.Title)
			require.Equal(t, models.PrivacyPublic, p.Privacy)
			require.Len(t, p.Options, 2)
			require.Equal(t, "summer", p.Options[0].Text)
			require.Equal(t, "winter", p.Options[1].Text)
			for _, o := range p.Options {
				require.EqualValues(t, 7, o.OwnerID)
				require.Zero(t, o.Votes)
			}
			return want, nil
		})

	got, err := s.CreatePoll(context.Background(), CreatePollInput{
		OwnerID: 7,
		Title:   "  favorite season  ",
		Privacy: models.PrivacyPublic,
		Options: []string{" summer ", "winter"},
	})
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// Валидация: id не 24-символьный hex -> ErrInvalidArgument без похода в сторадж.
func TestService_PollByID_InvalidArgument(t *testing.T) {
	s, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	for _, id := range []string{"", "short", "507F1F77BCF86CD799439011", "zzzf1f77bcf86cd799439011"} {
		_, err := s.PollByID(context.Background(), id, nil)
		require.ErrorIs(t, err, ErrInvalidArgument, "id=%q", id)
	}
}

// Маппинг: storage.ErrNotFound -> ErrNotFound; прочее -> ErrInternal.
func TestService_PollByID_Mapping(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(nil, storage.ErrNotFound)
	_, err := s.PollByID(context.Background(), testPollID, nil)
	require.ErrorIs(t, err, ErrNotFound)

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(nil, errors.New("db down"))
	_, err = s.PollByID(context.Background(), testPollID, nil)
	require.ErrorIs(t, err, ErrInternal)
}

// Приватный опрос: аноним и не-владелец получают ErrPermissionDenied, владелец читает.
func TestService_PollByID_Privacy(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	private := mustPoll(7, models.PrivacyPrivate)

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(private, nil)
	_, err := s.PollByID(context.Background(), testPollID, nil)
	require.ErrorIs(t, err, ErrPermissionDenied)

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(private, nil)
	_, err = s.PollByID(context.Background(), testPollID, ptrI64(8))
	require.ErrorIs(t, err, ErrPermissionDenied)

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(private, nil)
	ms.EXPECT().UserAction(gomock.Any(), testPollID, int64(7)).Return(nil, storage.ErrNotFound)
	view, err := s.PollByID(context.Background(), testPollID, ptrI64(7))
	require.NoError(t, err)
	require.Equal(t, *private, view.Poll)
}

// Декорация: недоступный сервис профилей не валит чтение — карточки просто нет.
func TestService_PollByID_ProfilesDown(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	s.profiles = stubProfiles{err: errors.New("profiles down")}

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(mustPoll(7, models.PrivacyPublic), nil)

	view, err := s.PollByID(context.Background(), testPollID, nil)
	require.NoError(t, err)
	require.Nil(t, view.Owner)
	require.Nil(t, view.Viewer) // аноним — без проекции действий
}

// Happy-path: карточка владельца и проекция действий зрителя на месте.
func TestService_PollByID_OK(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	owner := &models.OwnerSummary{UserID: 7, Username: "alice"}
	s.profiles = stubProfiles{owner: owner}

	poll := mustPoll(7, models.PrivacyPublic)
	ua := &models.UserAction{
		PollID: testPollID, UserID: 9,
		Voted: &models.VoteMark{Vote: "summer", VotedAt: time.Now().UTC()},
	}

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(poll, nil)
	ms.EXPECT().UserAction(gomock.Any(), testPollID, int64(9)).Return(ua, nil)

	view, err := s.PollByID(context.Background(), testPollID, ptrI64(9))
	require.NoError(t, err)
	require.Equal(t, owner, view.Owner)
	require.NotNil(t, view.Viewer)
	require.Equal(t, ua.Voted, view.Viewer.Voted)
	require.Nil(t, view.Viewer.Shared)
}

// Зритель без записи действий получает пустую проекцию, не ошибку.
func TestService_PollByID_NoViewerAction(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(mustPoll(7, models.PrivacyPublic), nil)
	ms.EXPECT().UserAction(gomock.Any(), testPollID, int64(9)).Return(nil, storage.ErrNotFound)

	view, err := s.PollByID(context.Background(), testPollID, ptrI64(9))
	require.NoError(t, err)
	require.NotNil(t, view.Viewer)
	require.Nil(t, view.Viewer.Voted)
	require.Nil(t, view.Viewer.Shared)
	require.Nil(t, view.Viewer.Bookmarked)
}

// Обновление доступно только владельцу.
func TestService_UpdatePoll_OwnerOnly(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(mustPoll(7, models.PrivacyPublic), nil)

	_, err := s.UpdatePoll(context.Background(), testPollID, 8, UpdatePollInput{Title: ptrStr("new")})
	require.ErrorIs(t, err, ErrPermissionDenied)
}

// Диф вариантов: добавление существующего текста -> ErrAlreadyExists,
// удаление отсутствующего -> ErrInvalidArgument, выход за [2, 18] -> ErrInvalidArgument.
func TestService_UpdatePoll_OptionsDiff(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(mustPoll(7, models.PrivacyPublic), nil)
	_, err := s.UpdatePoll(context.Background(), testPollID, 7, UpdatePollInput{AddOptions: []string{"summer"}})
	require.ErrorIs(t, err, ErrAlreadyExists)

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(mustPoll(7, models.PrivacyPublic), nil)
	_, err = s.UpdatePoll(context.Background(), testPollID, 7, UpdatePollInput{DelOptions: []string{"spring"}})
	require.ErrorIs(t, err, ErrInvalidArgument)

	// 2 - 1 = 1 < minOptions
	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(mustPoll(7, models.PrivacyPublic), nil)
	_, err = s.UpdatePoll(context.Background(), testPollID, 7, UpdatePollInput{DelOptions: []string{"winter"}})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// Happy-path: собранный PollUpdate уходит в сторадж как есть.
func TestService_UpdatePoll_OK(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	current := mustPoll(7, models.PrivacyPublic)
	want := mustPoll(7, models.PrivacyPrivate)

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(current, nil)
	ms.EXPECT().
		UpdatePoll(gomock.Any(), testPollID, gomock.AssignableToTypeOf(storage.PollUpdate{})).
		DoAndReturn(func(_ context.Context, _ string, upd storage.PollUpdate) (*models.Poll, error) {
			require.NotNil(t, upd.Title)
			require.Equal(t, "new title", *upd.Title)
			require.NotNil(t, upd.Privacy)
			require.Equal(t, models.PrivacyPrivate, *upd.Privacy)
			require.Len(t, upd.AddOptions, 1)
			require.Equal(t, "spring", upd.AddOptions[0].Text)
			require.EqualValues(t, 7, upd.AddOptions[0].OwnerID)
			require.Equal(t, []string{"winter"}, upd.DelOptions)
			return want, nil
		})

	privacy := models.PrivacyPrivate
	got, err := s.UpdatePoll(context.Background(), testPollID, 7, UpdatePollInput{
		Title:      ptrStr("  new title  "),
		Privacy:    &privacy,
		AddOptions: []string{" spring "},
		DelOptions: []string{"winter"},
	})
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// Удаление доступно только владельцу.
func TestService_DeletePoll_OwnerOnly(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(mustPoll(7, models.PrivacyPublic), nil)

	err := s.DeletePoll(context.Background(), testPollID, 8)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

// Happy-path: успешное удаление владельцем.
func TestService_DeletePoll_OK(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(mustPoll(7, models.PrivacyPublic), nil)
	ms.EXPECT().DeletePoll(gomock.Any(), testPollID).Return(nil)

	require.NoError(t, s.DeletePoll(context.Background(), testPollID, 7))
}

// Не-владелец добавляет не больше одного своего варианта.
func TestService_AddOption_NonOwnerLimit(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	poll := mustPoll(7, models.PrivacyPublic)
	poll.Options = append(poll.Options, models.Option{OwnerID: 9, Text: "spring"})

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(poll, nil)

	_, err := s.AddOption(context.Background(), testPollID, 9, "autumn")
	require.ErrorIs(t, err, ErrPermissionDenied)
}

// Дубль текста варианта -> ErrAlreadyExists.
func TestService_AddOption_Duplicate(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(mustPoll(7, models.PrivacyPublic), nil)

	_, err := s.AddOption(context.Background(), testPollID, 7, " summer ")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

// Happy-path: не-владелец добавляет первый свой вариант, результат содержит его.
func TestService_AddOption_OK(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(mustPoll(7, models.PrivacyPublic), nil)
	ms.EXPECT().
		AddOption(gomock.Any(), testPollID, gomock.AssignableToTypeOf(models.Option{})).
		DoAndReturn(func(_ context.Context, _ string, o models.Option) error {
			require.EqualValues(t, 9, o.OwnerID)
			require.Equal(t, "spring", o.Text)
			require.Zero(t, o.Votes)
			return nil
		})

	got, err := s.AddOption(context.Background(), testPollID, 9, " spring ")
	require.NoError(t, err)
	require.NotNil(t, got.OptionByText("spring"))
	require.Len(t, got.Options, 3)
}

// Удалять варианты может только владелец опроса — даже свой вариант
// не-владелец снять не может.
func TestService_DelOption_OwnerOnly(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	poll := mustPoll(7, models.PrivacyPublic)
	poll.Options = append(poll.Options, models.Option{OwnerID: 9, Text: "spring"})

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(poll, nil)

	err := s.DelOption(context.Background(), testPollID, 9, "spring")
	require.ErrorIs(t, err, ErrPermissionDenied)
}

// Отсутствующий вариант -> ErrNotFound.
func TestService_DelOption_NotFound(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(mustPoll(7, models.PrivacyPublic), nil)

	err := s.DelOption(context.Background(), testPollID, 7, "spring")
	require.ErrorIs(t, err, ErrNotFound)
}

// Happy-path: удаление существующего варианта владельцем.
func TestService_DelOption_OK(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().PollByID(gomock.Any(), testPollID).Return(mustPoll(7, models.PrivacyPublic), nil)
	ms.EXPECT().DelOption(gomock.Any(), testPollID, "winter").Return(nil)

	require.NoError(t, s.DelOption(context.Background(), testPollID, 7, " winter "))
}

// Маппинг: storage.ErrInvalidCursor -> ErrInvalidCursor; прочее -> ErrInternal.
func TestService_ListPolls_Mapping(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().
		ListPolls(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, storage.ErrInvalidCursor)
	_, err := s.ListPolls(context.Background(), ListPollsInput{PageToken: "bad"})
	require.ErrorIs(t, err, ErrInvalidCursor)

	ms.EXPECT().
		ListPolls(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))
	_, err = s.ListPolls(context.Background(), ListPollsInput{})
	require.ErrorIs(t, err, ErrInternal)
}

// Happy-path: фильтр и параметры страницы прокидываются корректно.
func TestService_ListPolls_OK(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	want := &models.PollPage{
		Items:         []models.Poll{*mustPoll(7, models.PrivacyPublic)},
		NextPageToken: "t2",
	}

	ms.EXPECT().
		ListPolls(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f storage.ListFilter, p models.ListParams) (*models.PollPage, error) {
			require.NotNil(t, f.ViewerID)
			require.EqualValues(t, 9, *f.ViewerID)
			require.NotNil(t, f.OwnerID)
			require.EqualValues(t, 7, *f.OwnerID)
			require.Equal(t, "season", f.Query)
			require.EqualValues(t, 25, p.PageSize)
			require.Equal(t, "t1", p.PageToken)
			return want, nil
		})

	got, err := s.ListPolls(context.Background(), ListPollsInput{
		ViewerID:  ptrI64(9),
		OwnerID:   ptrI64(7),
		Query:     " season ",
		PageSize:  25,
		PageToken: "t1",
	})
	require.NoError(t, err)
	require.Equal(t, want, got)
}
