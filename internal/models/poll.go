// Package models содержит доменные сущности polls-сервиса.
package models

import "time"

// Privacy — видимость опроса.
type Privacy string

const (
	// PrivacyPublic — опрос виден всем.
	PrivacyPublic Privacy = "public"
	// PrivacyPrivate — опрос виден только владельцу.
	PrivacyPrivate Privacy = "private"
)

// Valid сообщает, что значение входит в допустимый набор.
func (p Privacy) Valid() bool {
	return p == PrivacyPublic || p == PrivacyPrivate
}

// Option — один вариант ответа, встроенный в опрос.
// Порядок вариантов в Poll.Options — порядок показа.
// Text уникален в пределах одного опроса (контролируется сервисным слоем).
type Option struct {
	OwnerID int64
	Text    string
	Votes   int64
}

// Poll — внутренняя доменная модель опроса (MongoDB, агрегат).
// Важно:
//   - ID — ObjectID MongoDB; наружу/вовнутрь конвертируется в hex-строку (24 символа);
//   - OwnerID — целочисленный идентификатор владельца из смежного сервиса аккаунтов,
//     неизменен после создания;
//   - Voters — множество проголосовавших (без дублей);
//   - VotesCount/SharesCount/BookmarksCount — денормализованные счётчики,
//     всегда равны числу записей user_actions с заполненным соответствующим полем;
//   - CommentsCount — равен числу документов comments с этим poll_id.
type Poll struct {
	ID             string
	OwnerID        int64
	Title          string
	Description    string
	Category       string
	Privacy        Privacy
	CreatedAt      time.Time
	Options        []Option
	Voters         []int64
	VotesCount     int64
	SharesCount    int64
	BookmarksCount int64
	CommentsCount  int64
}

// OptionByText возвращает вариант по тексту (nil, если такого нет).
func (p *Poll) OptionByText(text string) *Option {
	for i := range p.Options {
		if p.Options[i].Text == text {
			return &p.Options[i]
		}
	}

	return nil
}

// OwnerSummary — денормализованная карточка владельца для выдачи опроса.
// Приходит из внешнего сервиса профилей; отсутствие — не ошибка.
type OwnerSummary struct {
	UserID         int64
	Username       string
	DisplayName    string
	ProfilePicture string
}

// PollView — опрос, обогащённый карточкой владельца и проекцией действий зрителя.
type PollView struct {
	Poll   Poll
	Owner  *OwnerSummary
	Viewer *ActionSummary
}

// ListParams — базовые параметры постраничной выдачи.
type ListParams struct {
	PageSize  int32
	PageToken string
}

// PollPage — результат постраничной выдачи опросов.
type PollPage struct {
	Items         []Poll
	NextPageToken string
}
