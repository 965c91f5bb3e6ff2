package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/go-polls-service/internal/models"
	"github.com/pribylovaa/go-polls-service/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// optionDoc — встроенный вариант ответа в документе опроса.
type optionDoc struct {
	OwnerID int64  `bson:"owner_user_id"`
	Text    string `bson:"option_text"`
	Votes   int64  `bson:"votes"`
}

// pollDoc — документ коллекции polls.
type pollDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID        int64              `bson:"owner_user_id"`
	Title          string             `bson:"title"`
	Description    string             `bson:"description"`
	Category       string             `bson:"category"`
	Privacy        string             `bson:"privacy"`
	CreatedAt      time.Time          `bson:"created_at"`
	Options        []optionDoc        `bson:"options"`
	Voters         []int64            `bson:"voters"`
	VotesCount     int64              `bson:"votes_counter"`
	SharesCount    int64              `bson:"shares_counter"`
	BookmarksCount int64              `bson:"bookmarks_counter"`
	CommentsCount  int64              `bson:"comments_counter"`
}

func toOptionDoc(o models.Option) optionDoc {
	return optionDoc{OwnerID: o.OwnerID, Text: o.Text, Votes: o.Votes}
}

func (d pollDoc) toModel() models.Poll {
	opts := make([]models.Option, 0, len(d.Options))
	for _, o := range d.Options {
		opts = append(opts, models.Option{OwnerID: o.OwnerID, Text: o.Text, Votes: o.Votes})
	}

	return models.Poll{
		ID:             d.ID.Hex(),
		OwnerID:        d.OwnerID,
		Title:          d.Title,
		Description:    d.Description,
		Category:       d.Category,
		Privacy:        models.Privacy(d.Privacy),
		CreatedAt:      d.CreatedAt.UTC(),
		Options:        opts,
		Voters:         d.Voters,
		VotesCount:     d.VotesCount,
		SharesCount:    d.SharesCount,
		BookmarksCount: d.BookmarksCount,
		CommentsCount:  d.CommentsCount,
	}
}

// pollOID парсит hex-идентификатор опроса.
// Некорректный формат трактуется как «нет такой записи».
func pollOID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, storage.ErrNotFound
	}

	return oid, nil
}

// CreatePoll вставляет новый документ опроса.
// Voters и счётчики инициализируются нулевыми: на момент создания
// ни одной записи user_actions по опросу ещё нет.
func (m *Mongo) CreatePoll(ctx context.Context, poll models.Poll) (*models.Poll, error) {
	const op = "storage/mongo/CreatePoll"

	now := toMS(time.Now())

	opts := make([]optionDoc, 0, len(poll.Options))
	for _, o := range poll.Options {
		opts = append(opts, toOptionDoc(o))
	}

	doc := pollDoc{
		OwnerID:     poll.OwnerID,
		Title:       poll.Title,
		Description: poll.Description,
		Category:    poll.Category,
		Privacy:     string(poll.Privacy),
		CreatedAt:   now,
		Options:     opts,
		Voters:      []int64{},
	}

	res, err := m.polls.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		// Mongo всегда возвращает ObjectID.
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	doc.ID = oid
	out := doc.toModel()
	return &out, nil
}

// PollByID возвращает опрос по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
func (m *Mongo) PollByID(ctx context.Context, id string) (*models.Poll, error) {
	const op = "storage/mongo/PollByID"

	oid, err := pollOID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var doc pollDoc
	if err := m.polls.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// UpdatePoll применяет в одной транзакции:
//  1. изменение простых полей ($set);
//  2. добавление вариантов ($push $each);
//  3. удаление вариантов ($pull по option_text).
//
// Либо применяются все три шага, либо ни один.
func (m *Mongo) UpdatePoll(ctx context.Context, id string, upd storage.PollUpdate) (*models.Poll, error) {
	const op = "storage/mongo/UpdatePoll"

	oid, err := pollOID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filter := bson.D{{Key: "_id", Value: oid}}

	set := bson.D{}
	if upd.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *upd.Title})
	}
	if upd.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *upd.Description})
	}
	if upd.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *upd.Category})
	}
	if upd.Privacy != nil {
		set = append(set, bson.E{Key: "privacy", Value: string(*upd.Privacy)})
	}

	var doc pollDoc
	txnErr := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		if len(set) > 0 {
			res, err := m.polls.UpdateOne(sc, filter, bson.D{{Key: "$set", Value: set}})
			if err != nil {
				return fmt.Errorf("set fields: %w", err)
			}

			if res.MatchedCount == 0 {
				return storage.ErrNotFound
			}
		}

		if len(upd.AddOptions) > 0 {
			add := make([]optionDoc, 0, len(upd.AddOptions))
			for _, o := range upd.AddOptions {
				add = append(add, toOptionDoc(o))
			}

			res, err := m.polls.UpdateOne(sc, filter, bson.D{
				{Key: "$push", Value: bson.D{
					{Key: "options", Value: bson.D{{Key: "$each", Value: add}}},
				}},
			})
			if err != nil {
				return fmt.Errorf("push options: %w", err)
			}

			if res.MatchedCount == 0 {
				return storage.ErrNotFound
			}
		}

		if len(upd.DelOptions) > 0 {
			res, err := m.polls.UpdateOne(sc, filter, bson.D{
				{Key: "$pull", Value: bson.D{
					{Key: "options", Value: bson.D{
						{Key: "option_text", Value: bson.D{{Key: "$in", Value: upd.DelOptions}}},
					}},
				}},
			})
			if err != nil {
				return fmt.Errorf("pull options: %w", err)
			}

			if res.MatchedCount == 0 {
				return storage.ErrNotFound
			}
		}

		if err := m.polls.FindOne(sc, filter).Decode(&doc); err != nil {
			if errors.Is(err, mongodriver.ErrNoDocuments) {
				return storage.ErrNotFound
			}

			return fmt.Errorf("reload: %w", err)
		}

		return nil
	})

	if txnErr != nil {
		return nil, fmt.Errorf("%s: %w", op, txnErr)
	}

	out := doc.toModel()
	return &out, nil
}

// DeletePoll удаляет опрос вместе с его комментариями и записями user_actions
// в одной транзакции: успешное удаление не оставляет сирот ни в одной коллекции.
func (m *Mongo) DeletePoll(ctx context.Context, id string) error {
	const op = "storage/mongo/DeletePoll"

	oid, err := pollOID(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	txnErr := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		var doc pollDoc
		if err := m.polls.FindOneAndDelete(sc, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
			if errors.Is(err, mongodriver.ErrNoDocuments) {
				return storage.ErrNotFound
			}

			return fmt.Errorf("delete poll: %w", err)
		}

		if doc.CommentsCount > 0 {
			if _, err := m.comments.DeleteMany(sc, bson.D{{Key: "poll_id", Value: oid}}); err != nil {
				return fmt.Errorf("delete comments: %w", err)
			}
		}

		if _, err := m.userActions.DeleteMany(sc, bson.D{{Key: "poll_id", Value: oid}}); err != nil {
			return fmt.Errorf("delete user actions: %w", err)
		}

		return nil
	})

	if txnErr != nil {
		return fmt.Errorf("%s: %w", op, txnErr)
	}

	return nil
}

// AddOption — одиночный атомарный push варианта, транзакция не нужна.
func (m *Mongo) AddOption(ctx context.Context, pollID string, opt models.Option) error {
	const op = "storage/mongo/AddOption"

	oid, err := pollOID(pollID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := m.polls.UpdateByID(ctx, oid, bson.D{
		{Key: "$push", Value: bson.D{{Key: "options", Value: toOptionDoc(opt)}}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DelOption — одиночный атомарный pull варианта по тексту.
// Если опрос есть, но вариант не удалён — storage.ErrOptionNotFound.
func (m *Mongo) DelOption(ctx context.Context, pollID string, optionText string) error {
	const op = "storage/mongo/DelOption"

	oid, err := pollOID(pollID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := m.polls.UpdateByID(ctx, oid, bson.D{
		{Key: "$pull", Value: bson.D{
			{Key: "options", Value: bson.D{{Key: "option_text", Value: optionText}}},
		}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if res.ModifiedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrOptionNotFound)
	}

	return nil
}

// visibilityFilter — единый предикат видимости для всех листинговых выборок.
// Анонимный зритель видит только публичные опросы; авторизованный — публичные
// и свои приватные. Фильтрация выполняется на стороне хранилища.
func visibilityFilter(viewerID *int64) bson.D {
	if viewerID == nil {
		return bson.D{{Key: "privacy", Value: string(models.PrivacyPublic)}}
	}

	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "privacy", Value: string(models.PrivacyPublic)}},
		bson.D{{Key: "owner_user_id", Value: *viewerID}},
	}}}
}

// ListPolls возвращает страницу опросов по фильтру видимости.
// Сортировка: created_at DESC, _id DESC.
// При некорректном page_token — storage.ErrInvalidCursor.
func (m *Mongo) ListPolls(ctx context.Context, f storage.ListFilter, param models.ListParams) (*models.PollPage, error) {
	const op = "storage/mongo/ListPolls"

	limit := limitOrDefault(m.cfg, param.PageSize)

	// Предикат видимости и курсор оба используют $or, поэтому
	// собираем итоговый фильтр через $and.
	clauses := bson.A{visibilityFilter(f.ViewerID)}
	if f.OwnerID != nil {
		clauses = append(clauses, bson.D{{Key: "owner_user_id", Value: *f.OwnerID}})
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		clauses = append(clauses, bson.D{{Key: "$text", Value: bson.D{{Key: "$search", Value: q}}}})
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	// Курсор "меньше" для DESC сортировки.
	if strings.TrimSpace(param.PageToken) != "" {
		t, oid, decErr := decodeCursor(param.PageToken)
		if decErr != nil {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidCursor)
		}

		clauses = append(clauses, bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "created_at", Value: bson.D{{Key: "$lt", Value: t}}}},
			bson.D{
				{Key: "created_at", Value: t},
				{Key: "_id", Value: bson.D{{Key: "$lt", Value: oid}}},
			},
		}}})
	}

	filter := bson.D{{Key: "$and", Value: clauses}}

	cur, err := m.polls.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []models.Poll
	for cur.Next(ctx) {
		var doc pollDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		items = append(items, doc.toModel())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	var next string
	if n := len(items); n > 0 {
		last := items[n-1]
		// created_at и id всегда проставлены — соберём курсор.
		oid, _ := primitive.ObjectIDFromHex(last.ID)
		next = encodeCursor(last.CreatedAt, oid)
	}

	return &models.PollPage{
		Items:         items,
		NextPageToken: next,
	}, nil
}
