package mongo

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pribylovaa/go-polls-service/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	pollsCollection       = "polls"
	userActionsCollection = "user_actions"
	commentsCollection    = "comments"
	defaultDBName         = "polls"
)

// Mongo - тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	cfg         *config.Config
	client      *mongodriver.Client
	db          *mongodriver.Database
	polls       *mongodriver.Collection
	userActions *mongodriver.Collection
	comments    *mongodriver.Collection
}

// New подключается к MongoDB, проверяет его, подготавливает коллекции и обеспечивает индексацию.
// Ошибка на любом шаге прерывает конструирование: с полупригодным клиентом сервис не стартует.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	dbName := databaseFromURI(cfg.DB.URL)
	db := cli.Database(dbName)

	m := &Mongo{
		cfg:         cfg,
		client:      cli,
		db:          db,
		polls:       db.Collection(pollsCollection),
		userActions: db.Collection(userActionsCollection),
		comments:    db.Collection(commentsCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

// Close закрывает соединение с MongoDB.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создает индексы, необходимые polls-сервису.
//   - Уникальный (poll_id, user_id) на user_actions: закрывает гонку двойного
//     голоса на уровне хранилища, а не только сервисной проверкой.
//   - Текстовый индекс title+description+category для поиска по опросам.
//   - Листинг опросов: privacy + created_at(desc).
//   - Листинг комментариев: poll_id + created_at(desc).
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	actionModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "poll_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetName("uniq_poll_user").SetUnique(true),
		},
	}

	if _, err := m.userActions.Indexes().CreateMany(ctx, actionModels); err != nil {
		return fmt.Errorf("mongo ensure user_actions indexes: %w", err)
	}

	pollModels := []mongodriver.IndexModel{
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "category", Value: "text"},
			},
			Options: options.Index().SetName("polls_text"),
		},
		{
			Keys:    bson.D{{Key: "privacy", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("privacy_created_desc"),
		},
	}

	if _, err := m.polls.Indexes().CreateMany(ctx, pollModels); err != nil {
		return fmt.Errorf("mongo ensure polls indexes: %w", err)
	}

	commentModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "poll_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("poll_created_desc"),
		},
	}

	if _, err := m.comments.Indexes().CreateMany(ctx, commentModels); err != nil {
		return fmt.Errorf("mongo ensure comments indexes: %w", err)
	}

	return nil
}

// withTxn выполняет fn внутри одной транзакции.
// WithTransaction сам коммитит при nil-ошибке и абортит при любой другой;
// отложенный EndSession гарантирует освобождение сессии при любом исходе.
func (m *Mongo) withTxn(ctx context.Context, fn func(sc mongodriver.SessionContext) error) error {
	if d := m.cfg.Timeouts.Transaction; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	sess, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongodriver.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})

	return err
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает разумное значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}

// encodeCursor кодирует пару (created_at, _id) в непрозрачный токен для клиента.
func encodeCursor(t time.Time, id primitive.ObjectID) string {
	raw := fmt.Sprintf("%d|%s", t.UTC().UnixNano(), id.Hex())

	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// decodeCursor декодирует токен обратно в пару ключей.
func decodeCursor(token string) (time.Time, primitive.ObjectID, error) {
	res, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return time.Time{}, primitive.NilObjectID, err
	}

	parts := strings.SplitN(string(res), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, primitive.NilObjectID, fmt.Errorf("bad parts")
	}

	nanos, err := parseInt64(parts[0])
	if err != nil {
		return time.Time{}, primitive.NilObjectID, err
	}

	oid, err := primitive.ObjectIDFromHex(parts[1])
	if err != nil {
		return time.Time{}, primitive.NilObjectID, err
	}

	return time.Unix(0, nanos).UTC(), oid, nil
}

// parseInt64 — локальная маленькая обёртка без импорта strconv везде.
func parseInt64(s string) (int64, error) {
	var x int64
	_, err := fmt.Sscan(s, &x)

	return x, err
}

// limitOrDefault приводит запрошенный размер страницы к [Default, Max].
func limitOrDefault(cfg *config.Config, pageSize int32) int64 {
	lim := pageSize
	if lim <= 0 {
		lim = cfg.Limits.Default
	}

	if lim > cfg.Limits.Max {
		lim = cfg.Limits.Max
	}

	return int64(lim)
}

// toMS приводит время к миллисекундной точности: MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
