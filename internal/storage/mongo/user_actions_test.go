package mongo

import (
	"testing"

	"github.com/pribylovaa/go-polls-service/internal/models"
	"github.com/pribylovaa/go-polls-service/internal/storage"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateUserAction_And_Get(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))
	ctx := testCtx(t)

	poll := seedPoll(t, m, 1, models.PrivacyPublic, "summer", "winter")

	created, err := m.CreateUserAction(ctx, poll.ID, 9)
	require.NoError(t, err)
	require.Equal(t, poll.ID, created.PollID)
	require.EqualValues(t, 9, created.UserID)
	require.Nil(t, created.Voted)
	require.Nil(t, created.Shared)
	require.Nil(t, created.Bookmarked)

	got, err := m.UserAction(ctx, poll.ID, 9)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	// Повторная вставка по той же паре упирается в уникальный индекс.
	_, err = m.CreateUserAction(ctx, poll.ID, 9)
	require.ErrorIs(t, err, storage.ErrConflict)

	_, err = m.UserAction(ctx, poll.ID, 777)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestInsertVote_CountersAndMark(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))
	ctx := testCtx(t)

	poll := seedPoll(t, m, 1, models.PrivacyPublic, "summer", "winter")

	require.NoError(t, m.InsertVote(ctx, poll.ID, 9, "summer"))

	got, err := m.PollByID(ctx, poll.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.VotesCount)
	require.EqualValues(t, 1, optionVotes(t, got, "summer"))
	require.EqualValues(t, 0, optionVotes(t, got, "winter"))
	require.Contains(t, got.Voters, int64(9))

	ua, err := m.UserAction(ctx, poll.ID, 9)
	require.NoError(t, err)
	require.NotNil(t, ua.Voted)
	require.Equal(t, "summer", ua.Voted.Vote)
	require.False(t, ua.Voted.VotedAt.IsZero())
}

func TestInsertVote_Duplicate(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))
	ctx := testCtx(t)

	poll := seedPoll(t, m, 1, models.PrivacyPublic, "summer", "winter")

	require.NoError(t, m.InsertVote(ctx, poll.ID, 9, "summer"))
	require.ErrorIs(t, m.InsertVote(ctx, poll.ID, 9, "winter"), storage.ErrConflict)

	// Счётчики не задвоились.
	got, err := m.PollByID(ctx, poll.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.VotesCount)
}

func TestInsertVote_UnknownOption_RollsBack(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))
	ctx := testCtx(t)

	poll := seedPoll(t, m, 1, models.PrivacyPublic, "summer", "winter")

	require.ErrorIs(t, m.InsertVote(ctx, poll.ID, 9, "no-such-option"), storage.ErrOptionNotFound)

	// Транзакция откатила и запись действий: отметки has_voted не осталось.
	_, err := m.UserAction(ctx, poll.ID, 9)
	require.ErrorIs(t, err, storage.ErrNotFound)

	got, err := m.PollByID(ctx, poll.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, got.VotesCount)
	require.Empty(t, got.Voters)
}

func TestInsertVote_PollMissing(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))

	err := m.InsertVote(testCtx(t), primitive.NewObjectID().Hex(), 9, "summer")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateVote_MovesCounters(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))
	ctx := testCtx(t)

	poll := seedPoll(t, m, 1, models.PrivacyPublic, "summer", "winter")
	require.NoError(t, m.InsertVote(ctx, poll.ID, 9, "summer"))

	require.NoError(t, m.UpdateVote(ctx, poll.ID, 9, "winter", "summer"))

	got, err := m.PollByID(ctx, poll.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.VotesCount)
	require.EqualValues(t, 0, optionVotes(t, got, "summer"))
	require.EqualValues(t, 1, optionVotes(t, got, "winter"))

	ua, err := m.UserAction(ctx, poll.ID, 9)
	require.NoError(t, err)
	require.NotNil(t, ua.Voted)
	require.Equal(t, "winter", ua.Voted.Vote)
}

func TestUpdateVote_WrongCurrentOption(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))
	ctx := testCtx(t)

	poll := seedPoll(t, m, 1, models.PrivacyPublic, "summer", "winter")
	require.NoError(t, m.InsertVote(ctx, poll.ID, 9, "summer"))

	// Реальный голос не "winter" — конфликт состояния.
	require.ErrorIs(t, m.UpdateVote(ctx, poll.ID, 9, "summer", "winter"), storage.ErrConflict)

	// И без голоса вовсе.
	require.ErrorIs(t, m.UpdateVote(ctx, poll.ID, 42, "winter", "summer"), storage.ErrConflict)
}

func TestDeleteVote_RestoresCounters(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))
	ctx := testCtx(t)

	poll := seedPoll(t, m, 1, models.PrivacyPublic, "summer", "winter")
	require.NoError(t, m.InsertVote(ctx, poll.ID, 9, "summer"))

	require.NoError(t, m.DeleteVote(ctx, poll.ID, 9, "summer"))

	got, err := m.PollByID(ctx, poll.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, got.VotesCount)
	require.EqualValues(t, 0, optionVotes(t, got, "summer"))
	require.Empty(t, got.Voters)

	ua, err := m.UserAction(ctx, poll.ID, 9)
	require.NoError(t, err)
	require.Nil(t, ua.Voted)

	// Голоса уже нет — повторное снятие конфликтует.
	require.ErrorIs(t, m.DeleteVote(ctx, poll.ID, 9, "summer"), storage.ErrConflict)
}

func TestShareMark_RoundTrip(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))
	ctx := testCtx(t)

	poll := seedPoll(t, m, 1, models.PrivacyPublic, "summer", "winter")

	require.NoError(t, m.SetShared(ctx, poll.ID, 9))

	got, err := m.PollByID(ctx, poll.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.SharesCount)

	ua, err := m.UserAction(ctx, poll.ID, 9)
	require.NoError(t, err)
	require.NotNil(t, ua.Shared)

	// Повторная отметка не задваивает счётчик.
	require.ErrorIs(t, m.SetShared(ctx, poll.ID, 9), storage.ErrConflict)

	require.NoError(t, m.UnsetShared(ctx, poll.ID, 9))

	got, err = m.PollByID(ctx, poll.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, got.SharesCount)

	ua, err = m.UserAction(ctx, poll.ID, 9)
	require.NoError(t, err)
	require.Nil(t, ua.Shared)

	// Снятие отсутствующей отметки — конфликт состояния.
	require.ErrorIs(t, m.UnsetShared(ctx, poll.ID, 9), storage.ErrConflict)
}

func TestBookmarkMark_IndependentOfVote(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))
	ctx := testCtx(t)

	poll := seedPoll(t, m, 1, models.PrivacyPublic, "summer", "winter")

	require.NoError(t, m.InsertVote(ctx, poll.ID, 9, "summer"))
	require.NoError(t, m.SetBookmarked(ctx, poll.ID, 9))

	ua, err := m.UserAction(ctx, poll.ID, 9)
	require.NoError(t, err)
	require.NotNil(t, ua.Voted)
	require.NotNil(t, ua.Bookmarked)
	require.Nil(t, ua.Shared)

	// Снятие закладки не трогает голос.
	require.NoError(t, m.UnsetBookmarked(ctx, poll.ID, 9))

	ua, err = m.UserAction(ctx, poll.ID, 9)
	require.NoError(t, err)
	require.NotNil(t, ua.Voted)
	require.Nil(t, ua.Bookmarked)

	got, err := m.PollByID(ctx, poll.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.VotesCount)
	require.EqualValues(t, 0, got.BookmarksCount)
}

func TestSetMark_PollMissing_RollsBack(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))
	ctx := testCtx(t)

	missing := primitive.NewObjectID().Hex()

	require.ErrorIs(t, m.SetBookmarked(ctx, missing, 9), storage.ErrNotFound)

	// Откат: записи действий не осталось.
	_, err := m.UserAction(ctx, missing, 9)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
