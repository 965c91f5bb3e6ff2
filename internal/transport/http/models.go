package http

import (
	"time"

	"github.com/pribylovaa/go-polls-service/internal/models"
)

// JSON-модели REST API. Снаружи время отдаётся в RFC3339 (UTC),
// идентификаторы опросов/комментариев — hex-строки ObjectID.

// CreatePollRequest — тело POST /polls.
type CreatePollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Privacy     string   `json:"privacy"`
	Options     []string `json:"options"`
}

// UpdatePollRequest — тело PATCH /polls/{id}; nil-поле — «не трогать».
type UpdatePollRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Privacy     *string  `json:"privacy,omitempty"`
	AddOptions  []string `json:"add_options,omitempty"`
	DelOptions  []string `json:"del_options,omitempty"`
}

// OptionRequest — тело операций над одним вариантом (добавление/удаление).
type OptionRequest struct {
	Option string `json:"option"`
}

// VoteRequest — тело операций голосования.
type VoteRequest struct {
	Option string `json:"option"`
}

// CommentRequest — тело создания/правки комментария.
type CommentRequest struct {
	Content string `json:"content"`
}

// OptionResponse — вариант ответа в выдаче опроса.
type OptionResponse struct {
	OwnerUserID int64  `json:"owner_user_id"`
	Text        string `json:"text"`
	Votes       int64  `json:"votes"`
}

// PollResponse — опрос в выдаче. Список проголосовавших наружу не отдаётся.
type PollResponse struct {
	ID             string           `json:"id"`
	OwnerUserID    int64            `json:"owner_user_id"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Category       string           `json:"category,omitempty"`
	Privacy        string           `json:"privacy"`
	CreatedAt      time.Time        `json:"created_at"`
	Options        []OptionResponse `json:"options"`
	VotesCount     int64            `json:"votes_count"`
	SharesCount    int64            `json:"shares_count"`
	BookmarksCount int64            `json:"bookmarks_count"`
	CommentsCount  int64            `json:"comments_count"`
}

// OwnerResponse — карточка владельца из сервиса профилей.
type OwnerResponse struct {
	UserID         int64  `json:"user_id"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// ViewerResponse — проекция действий зрителя по опросу.
type ViewerResponse struct {
	Vote         string     `json:"vote,omitempty"`
	VotedAt      *time.Time `json:"voted_at,omitempty"`
	SharedAt     *time.Time `json:"shared_at,omitempty"`
	BookmarkedAt *time.Time `json:"bookmarked_at,omitempty"`
}

// PollViewResponse — GET /polls/{id}: опрос с декорацией.
type PollViewResponse struct {
	Poll   PollResponse    `json:"poll"`
	Owner  *OwnerResponse  `json:"owner,omitempty"`
	Viewer *ViewerResponse `json:"viewer,omitempty"`
}

// PollPageResponse — страница листинга опросов.
type PollPageResponse struct {
	Items         []PollResponse `json:"items"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// CommentResponse — комментарий в выдаче.
type CommentResponse struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentPageResponse — страница комментариев опроса.
type CommentPageResponse struct {
	Items         []CommentResponse `json:"items"`
	NextPageToken string            `json:"next_page_token,omitempty"`
}

func pollResponse(p *models.Poll) PollResponse {
	opts := make([]OptionResponse, 0, len(p.Options))
	for _, o := range p.Options {
		opts = append(opts, OptionResponse{
			OwnerUserID: o.OwnerID,
			Text:        o.Text,
			Votes:       o.Votes,
		})
	}

	return PollResponse{
		ID:             p.ID,
		OwnerUserID:    p.OwnerID,
		Title:          p.Title,
		Description:    p.Description,
		Category:       p.Category,
		Privacy:        string(p.Privacy),
		CreatedAt:      p.CreatedAt,
		Options:        opts,
		VotesCount:     p.VotesCount,
		SharesCount:    p.SharesCount,
		BookmarksCount: p.BookmarksCount,
		CommentsCount:  p.CommentsCount,
	}
}

func pollViewResponse(v *models.PollView) PollViewResponse {
	out := PollViewResponse{Poll: pollResponse(&v.Poll)}

	if v.Owner != nil {
		out.Owner = &OwnerResponse{
			UserID:         v.Owner.UserID,
			Username:       v.Owner.Username,
			DisplayName:    v.Owner.DisplayName,
			ProfilePicture: v.Owner.ProfilePicture,
		}
	}

	if v.Viewer != nil {
		viewer := &ViewerResponse{}
		if v.Viewer.Voted != nil {
			viewer.Vote = v.Viewer.Voted.Vote
			t := v.Viewer.Voted.VotedAt
			viewer.VotedAt = &t
		}
		if v.Viewer.Shared != nil {
			t := v.Viewer.Shared.SharedAt
			viewer.SharedAt = &t
		}
		if v.Viewer.Bookmarked != nil {
			t := v.Viewer.Bookmarked.BookmarkedAt
			viewer.BookmarkedAt = &t
		}
		out.Viewer = viewer
	}

	return out
}

func pollPageResponse(p *models.PollPage) PollPageResponse {
	items := make([]PollResponse, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, pollResponse(&p.Items[i]))
	}

	return PollPageResponse{Items: items, NextPageToken: p.NextPageToken}
}

func commentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		PollID:    c.PollID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func commentPageResponse(p *models.CommentPage) CommentPageResponse {
	items := make([]CommentResponse, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, commentResponse(&p.Items[i]))
	}

	return CommentPageResponse{Items: items, NextPageToken: p.NextPageToken}
}
