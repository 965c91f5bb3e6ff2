package models

import "time"

// UserAction — запись действий одного пользователя по одному опросу.
// Естественный ключ (PollID, UserID) уникален: на пару существует не более
// одного документа, он создаётся лениво при первом действии.
// Каждое из трёх под-полей независимо: пользователь может одновременно
// голосовать, делиться и сохранять в закладки один и тот же опрос.
type UserAction struct {
	ID         string
	PollID     string
	UserID     int64
	Voted      *VoteMark
	Shared     *ShareMark
	Bookmarked *BookmarkMark
	CreatedAt  time.Time
}

// VoteMark — факт голоса: за какой вариант и когда.
type VoteMark struct {
	Vote    string
	VotedAt time.Time
}

// ShareMark — факт репоста.
type ShareMark struct {
	SharedAt time.Time
}

// BookmarkMark — факт добавления в закладки.
type BookmarkMark struct {
	BookmarkedAt time.Time
}

// ActionSummary — проекция действий зрителя для выдачи опроса
// (только сами отметки, без служебных полей).
type ActionSummary struct {
	Voted      *VoteMark
	Shared     *ShareMark
	Bookmarked *BookmarkMark
}

// Summary собирает проекцию для выдачи. Для nil-записи возвращает пустую проекцию.
func (a *UserAction) Summary() *ActionSummary {
	if a == nil {
		return &ActionSummary{}
	}

	return &ActionSummary{
		Voted:      a.Voted,
		Shared:     a.Shared,
		Bookmarked: a.Bookmarked,
	}
}
