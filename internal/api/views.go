package api

import (
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"miniblog/internal/accounts"
	"miniblog/internal/core"
)

const (
	previewLength = 50
	previewSuffix = "...Access the post to read more."
)

type publicationView struct {
	ID           uint64 `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Tag          string `json:"tag"`
	CreatorName  string `json:"creator_name"`
	Views        int64  `json:"views"`
	Likes        int64  `json:"likes"`
	Dislikes     int64  `json:"dislikes"`
	PublishedAt  string `json:"published_at"`
	LastUpdateAt string `json:"last_update_at,omitempty"`
}

// newPublicationView renders the publication, listings pass preview to shorten long descriptions.
func newPublicationView(p core.Publication, preview bool) publicationView {
	view := publicationView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Tag:         p.Tag.String(),
		CreatorName: p.CreatorName,
		Views:       p.Views,
		Likes:       p.Likes,
		Dislikes:    p.Dislikes,
		PublishedAt: humanize.Time(p.PublishedAt),
	}
	if p.LastUpdateAt != nil {
		view.LastUpdateAt = humanize.Time(*p.LastUpdateAt)
	}
	if preview {
		view.Description = shorten(p.Description)
	}
	return view
}

func newPublicationViews(publications []core.Publication) []publicationView {
	return lo.Map(publications, func(p core.Publication, _ int) publicationView {
		return newPublicationView(p, true)
	})
}

func shorten(description string) string {
	if utf8.RuneCountInString(description) <= previewLength {
		return description
	}
	return string([]rune(description)[:previewLength]) + previewSuffix
}

type userView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(u core.User) userView {
	return userView{
		ID:        u.ID,
		Name:      u.Name,
		Nickname:  u.Nickname,
		CreatedAt: u.CreatedAt,
	}
}

type sessionView struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func newSessionView(s accounts.Session) sessionView {
	return sessionView{
		AccessToken: s.Token,
		TokenType:   "bearer",
		ExpiresAt:   s.ExpiresAt,
	}
}
