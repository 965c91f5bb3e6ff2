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

// commentDoc — документ коллекции comments.
type commentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PollID    primitive.ObjectID `bson:"poll_id"`
	UserID    int64              `bson:"user_id"`
	Content   string             `bson:"comment"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d commentDoc) toModel() models.Comment {
	return models.Comment{
		ID:        d.ID.Hex(),
		PollID:    d.PollID.Hex(),
		UserID:    d.UserID,
		Content:   d.Content,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// commentOID парсит hex-идентификатор комментария.
// Некорректный формат трактуется как «нет такой записи».
func commentOID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, storage.ErrNotFound
	}

	return oid, nil
}

// CreateComment вставляет комментарий и инкрементирует comments_counter
// опроса в одной транзакции. Отсутствующий опрос — storage.ErrNotFound.
func (m *Mongo) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	const op = "storage/mongo/CreateComment"

	poid, err := pollOID(comment.PollID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := toMS(time.Now())
	doc := commentDoc{
		PollID:    poid,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	txnErr := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		res, err := m.polls.UpdateByID(sc, poid, bson.D{
			{Key: "$inc", Value: bson.D{{Key: "comments_counter", Value: 1}}},
		})
		if err != nil {
			return fmt.Errorf("inc comments_counter: %w", err)
		}

		if res.MatchedCount == 0 {
			return storage.ErrNotFound
		}

		ins, err := m.comments.InsertOne(sc, doc)
		if err != nil {
			return fmt.Errorf("insert: %w", err)
		}

		oid, ok := ins.InsertedID.(primitive.ObjectID)
		if !ok {
			return fmt.Errorf("inserted id type")
		}

		doc.ID = oid
		return nil
	})

	if txnErr != nil {
		return nil, fmt.Errorf("%s: %w", op, txnErr)
	}

	out := doc.toModel()
	return &out, nil
}

// CommentByID возвращает комментарий по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
func (m *Mongo) CommentByID(ctx context.Context, id string) (*models.Comment, error) {
	const op = "storage/mongo/CommentByID"

	oid, err := commentOID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var doc commentDoc
	if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// UpdateComment меняет текст комментария. Счётчики не затрагиваются —
// одна запись, транзакция не нужна.
func (m *Mongo) UpdateComment(ctx context.Context, id string, content string) (*models.Comment, error) {
	const op = "storage/mongo/UpdateComment"

	oid, err := commentOID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var doc commentDoc
	after := options.After
	err = m.comments.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "comment", Value: content},
			{Key: "updated_at", Value: toMS(time.Now())},
		}}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&doc)

	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// DeleteComment удаляет комментарий и декрементирует comments_counter
// опроса в одной транзакции. Нет комментария или нет опроса —
// storage.ErrNotFound, транзакция откатывается целиком.
func (m *Mongo) DeleteComment(ctx context.Context, id string, pollID string) error {
	const op = "storage/mongo/DeleteComment"

	oid, err := commentOID(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	poid, err := pollOID(pollID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	txnErr := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		res, err := m.comments.DeleteOne(sc, bson.D{
			{Key: "_id", Value: oid},
			{Key: "poll_id", Value: poid},
		})
		if err != nil {
			return fmt.Errorf("delete: %w", err)
		}

		if res.DeletedCount == 0 {
			return storage.ErrNotFound
		}

		pres, err := m.polls.UpdateByID(sc, poid, bson.D{
			{Key: "$inc", Value: bson.D{{Key: "comments_counter", Value: -1}}},
		})
		if err != nil {
			return fmt.Errorf("dec comments_counter: %w", err)
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

// ListCommentsByPoll возвращает страницу комментариев опроса.
// Сортировка: created_at DESC, _id DESC.
// При некорректном page_token — storage.ErrInvalidCursor.
func (m *Mongo) ListCommentsByPoll(ctx context.Context, pollID string, param models.ListParams) (*models.CommentPage, error) {
	const op = "storage/mongo/ListCommentsByPoll"

	poid, err := pollOID(pollID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	limit := limitOrDefault(m.cfg, param.PageSize)

	filter := bson.D{{Key: "poll_id", Value: poid}}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	// Курсор "меньше" для DESC сортировки.
	if strings.TrimSpace(param.PageToken) != "" {
		t, oid, decErr := decodeCursor(param.PageToken)
		if decErr != nil {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidCursor)
		}

		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "created_at", Value: bson.D{{Key: "$lt", Value: t}}}},
			bson.D{
				{Key: "created_at", Value: t},
				{Key: "_id", Value: bson.D{{Key: "$lt", Value: oid}}},
			},
		}})
	}

	cur, err := m.comments.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []models.Comment
	for cur.Next(ctx) {
		var doc commentDoc
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
		oid, _ := primitive.ObjectIDFromHex(last.ID)
		next = encodeCursor(last.CreatedAt, oid)
	}

	return &models.CommentPage{
		Items:         items,
		NextPageToken: next,
	}, nil
}
