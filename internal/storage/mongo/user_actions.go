package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/go-polls-service/internal/models"
	"github.com/pribylovaa/go-polls-service/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// voteMarkDoc/shareMarkDoc/bookmarkMarkDoc — под-документы отметок.
type voteMarkDoc struct {
	Vote    string    `bson:"vote"`
	VotedAt time.Time `bson:"voted_at"`
}

type shareMarkDoc struct {
	SharedAt time.Time `bson:"shared_at"`
}

type bookmarkMarkDoc struct {
	BookmarkedAt time.Time `bson:"bookmarked_at"`
}

// userActionDoc — документ коллекции user_actions.
// Пара (poll_id, user_id) уникальна (см. ensureIndexes); каждая из трёх
// отметок независимо присутствует или отсутствует.
type userActionDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	PollID     primitive.ObjectID `bson:"poll_id"`
	UserID     int64              `bson:"user_id"`
	Voted      *voteMarkDoc       `bson:"has_voted,omitempty"`
	Shared     *shareMarkDoc      `bson:"has_shared,omitempty"`
	Bookmarked *bookmarkMarkDoc   `bson:"has_bookmarked,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d userActionDoc) toModel() models.UserAction {
	out := models.UserAction{
		ID:        d.ID.Hex(),
		PollID:    d.PollID.Hex(),
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt.UTC(),
	}

	if d.Voted != nil {
		out.Voted = &models.VoteMark{Vote: d.Voted.Vote, VotedAt: d.Voted.VotedAt.UTC()}
	}
	if d.Shared != nil {
		out.Shared = &models.ShareMark{SharedAt: d.Shared.SharedAt.UTC()}
	}
	if d.Bookmarked != nil {
		out.Bookmarked = &models.BookmarkMark{BookmarkedAt: d.Bookmarked.BookmarkedAt.UTC()}
	}

	return out
}

// actionKey — фильтр по естественному ключу (poll_id, user_id).
func actionKey(pollOID primitive.ObjectID, userID int64) bson.D {
	return bson.D{
		{Key: "poll_id", Value: pollOID},
		{Key: "user_id", Value: userID},
	}
}

// UserAction возвращает запись действий пары (poll, user).
// Если записи нет — storage.ErrNotFound.
func (m *Mongo) UserAction(ctx context.Context, pollID string, userID int64) (*models.UserAction, error) {
	const op = "storage/mongo/UserAction"

	oid, err := pollOID(pollID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var doc userActionDoc
	if err := m.userActions.FindOne(ctx, actionKey(oid, userID)).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// CreateUserAction вставляет пустую запись действий (без отметок).
// Повторная вставка по той же паре упирается в уникальный индекс — storage.ErrConflict.
func (m *Mongo) CreateUserAction(ctx context.Context, pollID string, userID int64) (*models.UserAction, error) {
	const op = "storage/mongo/CreateUserAction"

	oid, err := pollOID(pollID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	doc := userActionDoc{
		PollID:    oid,
		UserID:    userID,
		CreatedAt: toMS(time.Now()),
	}

	res, err := m.userActions.InsertOne(ctx, doc)
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	ioid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	doc.ID = ioid
	out := doc.toModel()
	return &out, nil
}

// InsertVote в одной транзакции:
//  1. проставляет has_voted на записи действий (upsert по ключу с условием
//     «голоса ещё нет»: существующий голос упрётся в уникальный индекс);
//  2. добавляет пользователя в voters ($addToSet — без дублей), инкрементирует
//     votes_counter и votes выбранного варианта.
//
// Обе записи либо применяются, либо откатываются вместе.
func (m *Mongo) InsertVote(ctx context.Context, pollID string, userID int64, option string) error {
	const op = "storage/mongo/InsertVote"

	oid, err := pollOID(pollID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	now := toMS(time.Now())

	txnErr := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		// Фильтр требует отсутствия has_voted: если отметка уже стоит,
		// upsert уйдёт в insert и упрётся в уникальный (poll_id, user_id).
		filter := append(actionKey(oid, userID), bson.E{Key: "has_voted", Value: nil})
		update := bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "has_voted", Value: voteMarkDoc{Vote: option, VotedAt: now}},
			}},
			{Key: "$setOnInsert", Value: bson.D{
				{Key: "created_at", Value: now},
			}},
		}

		if _, err := m.userActions.UpdateOne(sc, filter, update, options.Update().SetUpsert(true)); err != nil {
			if mongodriver.IsDuplicateKeyError(err) {
				return storage.ErrConflict
			}

			return fmt.Errorf("set has_voted: %w", err)
		}

		res, err := m.polls.UpdateOne(sc,
			bson.D{
				{Key: "_id", Value: oid},
				{Key: "options.option_text", Value: option},
			},
			bson.D{
				{Key: "$addToSet", Value: bson.D{{Key: "voters", Value: userID}}},
				{Key: "$inc", Value: bson.D{
					{Key: "votes_counter", Value: 1},
					{Key: "options.$.votes", Value: 1},
				}},
			},
		)
		if err != nil {
			return fmt.Errorf("inc poll counters: %w", err)
		}

		if res.MatchedCount == 0 {
			return m.pollOrOptionMissing(sc, oid)
		}

		return nil
	})

	if txnErr != nil {
		return fmt.Errorf("%s: %w", op, txnErr)
	}

	return nil
}

// UpdateVote в одной транзакции меняет has_voted.vote и перекладывает голос
// со старого варианта на новый (два $inc через arrayFilters).
// Если текущий голос пользователя не oldOption — storage.ErrConflict.
func (m *Mongo) UpdateVote(ctx context.Context, pollID string, userID int64, newOption, oldOption string) error {
	const op = "storage/mongo/UpdateVote"

	oid, err := pollOID(pollID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	now := toMS(time.Now())

	txnErr := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		filter := append(actionKey(oid, userID), bson.E{Key: "has_voted.vote", Value: oldOption})
		res, err := m.userActions.UpdateOne(sc, filter, bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "has_voted.vote", Value: newOption},
				{Key: "has_voted.voted_at", Value: now},
			}},
		})
		if err != nil {
			return fmt.Errorf("set has_voted: %w", err)
		}

		if res.MatchedCount == 0 {
			return storage.ErrConflict
		}

		pres, err := m.polls.UpdateOne(sc,
			bson.D{
				{Key: "_id", Value: oid},
				{Key: "options.option_text", Value: newOption},
			},
			bson.D{
				{Key: "$inc", Value: bson.D{
					{Key: "options.$[newopt].votes", Value: 1},
					{Key: "options.$[oldopt].votes", Value: -1},
				}},
			},
			options.Update().SetArrayFilters(options.ArrayFilters{
				Filters: []interface{}{
					bson.D{{Key: "newopt.option_text", Value: newOption}},
					bson.D{{Key: "oldopt.option_text", Value: oldOption}},
				},
			}),
		)
		if err != nil {
			return fmt.Errorf("move vote: %w", err)
		}

		if pres.MatchedCount == 0 {
			return m.pollOrOptionMissing(sc, oid)
		}

		return nil
	})

	if txnErr != nil {
		return fmt.Errorf("%s: %w", op, txnErr)
	}

	return nil
}

// DeleteVote в одной транзакции снимает has_voted, убирает пользователя из
// voters, декрементирует votes_counter и votes варианта.
// Если голоса за oldOption нет — storage.ErrConflict.
func (m *Mongo) DeleteVote(ctx context.Context, pollID string, userID int64, oldOption string) error {
	const op = "storage/mongo/DeleteVote"

	oid, err := pollOID(pollID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	txnErr := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		filter := append(actionKey(oid, userID), bson.E{Key: "has_voted.vote", Value: oldOption})
		res, err := m.userActions.UpdateOne(sc, filter, bson.D{
			{Key: "$unset", Value: bson.D{{Key: "has_voted", Value: ""}}},
		})
		if err != nil {
			return fmt.Errorf("unset has_voted: %w", err)
		}

		if res.MatchedCount == 0 {
			return storage.ErrConflict
		}

		pres, err := m.polls.UpdateOne(sc,
			bson.D{{Key: "_id", Value: oid}},
			bson.D{
				{Key: "$pull", Value: bson.D{{Key: "voters", Value: userID}}},
				{Key: "$inc", Value: bson.D{
					{Key: "votes_counter", Value: -1},
					{Key: "options.$[opt].votes", Value: -1},
				}},
			},
			options.Update().SetArrayFilters(options.ArrayFilters{
				Filters: []interface{}{
					bson.D{{Key: "opt.option_text", Value: oldOption}},
				},
			}),
		)
		if err != nil {
			return fmt.Errorf("dec poll counters: %w", err)
		}

		if pres.MatchedCount == 0 {
			return storage.ErrNotFound
		}

		return nil
	})

	if txnErr != nil {
		return fmt.Errorf("%s: %w", op, txnErr)
	}

	return nil
}

// SetShared проставляет has_shared и инкрементирует shares_counter (одна транзакция).
func (m *Mongo) SetShared(ctx context.Context, pollID string, userID int64) error {
	return m.setMark(ctx, "storage/mongo/SetShared", pollID, userID, "has_shared",
		shareMarkDoc{SharedAt: toMS(time.Now())}, "shares_counter")
}

// UnsetShared снимает has_shared и декрементирует shares_counter (одна транзакция).
func (m *Mongo) UnsetShared(ctx context.Context, pollID string, userID int64) error {
	return m.unsetMark(ctx, "storage/mongo/UnsetShared", pollID, userID, "has_shared", "shares_counter")
}

// SetBookmarked проставляет has_bookmarked и инкрементирует bookmarks_counter (одна транзакция).
func (m *Mongo) SetBookmarked(ctx context.Context, pollID string, userID int64) error {
	return m.setMark(ctx, "storage/mongo/SetBookmarked", pollID, userID, "has_bookmarked",
		bookmarkMarkDoc{BookmarkedAt: toMS(time.Now())}, "bookmarks_counter")
}

// UnsetBookmarked снимает has_bookmarked и декрементирует bookmarks_counter (одна транзакция).
func (m *Mongo) UnsetBookmarked(ctx context.Context, pollID string, userID int64) error {
	return m.unsetMark(ctx, "storage/mongo/UnsetBookmarked", pollID, userID, "has_bookmarked", "bookmarks_counter")
}

// setMark — общий парный апдейт «поставить отметку + инкремент счётчика».
// Повторная отметка упирается в уникальный индекс (фильтр требует её
// отсутствия, upsert уходит в insert) — storage.ErrConflict.
func (m *Mongo) setMark(ctx context.Context, op, pollID string, userID int64, field string, mark interface{}, counter string) error {
	oid, err := pollOID(pollID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	txnErr := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		filter := append(actionKey(oid, userID), bson.E{Key: field, Value: nil})
		update := bson.D{
			{Key: "$set", Value: bson.D{{Key: field, Value: mark}}},
			{Key: "$setOnInsert", Value: bson.D{{Key: "created_at", Value: toMS(time.Now())}}},
		}

		if _, err := m.userActions.UpdateOne(sc, filter, update, options.Update().SetUpsert(true)); err != nil {
			if mongodriver.IsDuplicateKeyError(err) {
				return storage.ErrConflict
			}

			return fmt.Errorf("set %s: %w", field, err)
		}

		res, err := m.polls.UpdateByID(sc, oid, bson.D{
			{Key: "$inc", Value: bson.D{{Key: counter, Value: 1}}},
		})
		if err != nil {
			return fmt.Errorf("inc %s: %w", counter, err)
		}

		if res.MatchedCount == 0 {
			return storage.ErrNotFound
		}

		return nil
	})

	if txnErr != nil {
		return fmt.Errorf("%s: %w", op, txnErr)
	}

	return nil
}

// unsetMark — общий парный апдейт «снять отметку + декремент счётчика».
// Отсутствующая отметка — storage.ErrConflict: декремент без инкремента
// нарушил бы инвариант счётчика.
func (m *Mongo) unsetMark(ctx context.Context, op, pollID string, userID int64, field, counter string) error {
	oid, err := pollOID(pollID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	txnErr := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		filter := append(actionKey(oid, userID), bson.E{Key: field, Value: bson.D{{Key: "$ne", Value: nil}}})
		res, err := m.userActions.UpdateOne(sc, filter, bson.D{
			{Key: "$unset", Value: bson.D{{Key: field, Value: ""}}},
		})
		if err != nil {
			return fmt.Errorf("unset %s: %w", field, err)
		}

		if res.MatchedCount == 0 {
			return storage.ErrConflict
		}

		pres, err := m.polls.UpdateByID(sc, oid, bson.D{
			{Key: "$inc", Value: bson.D{{Key: counter, Value: -1}}},
		})
		if err != nil {
			return fmt.Errorf("dec %s: %w", counter, err)
		}

		if pres.MatchedCount == 0 {
			return storage.ErrNotFound
		}

		return nil
	})

	if txnErr != nil {
		return fmt.Errorf("%s: %w", op, txnErr)
	}

	return nil
}

// pollOrOptionMissing различает «опроса нет» и «в опросе нет такого варианта»
// после неудачного матча по (_id, options.option_text).
func (m *Mongo) pollOrOptionMissing(ctx context.Context, oid primitive.ObjectID) error {
	n, err := m.polls.CountDocuments(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("check poll: %w", err)
	}

	if n == 0 {
		return storage.ErrNotFound
	}

	return storage.ErrOptionNotFound
}
