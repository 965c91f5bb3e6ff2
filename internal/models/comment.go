package models

import "time"

// Comment — внутренняя доменная модель комментария к опросу (MongoDB).
// Важно:
//   - ID/PollID — ObjectID MongoDB, наружу конвертируются в hex-строки;
//   - UserID — целочисленный идентификатор автора;
//   - Poll.CommentsCount поддерживается хранилищем транзакционно
//     при создании/удалении комментария.
type Comment struct {
	ID        string
	PollID    string
	UserID    int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentPage — результат постраничной выдачи комментариев.
type CommentPage struct {
	Items         []Comment
	NextPageToken string
}
