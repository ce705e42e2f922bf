package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"miniblog/internal/accounts"
	"miniblog/internal/api"
	"miniblog/internal/auth"
	"miniblog/internal/blocking"
	"miniblog/internal/config"
	"miniblog/internal/persistence/blockedtags"
	"miniblog/internal/persistence/persistencetest"
	"miniblog/internal/persistence/publications"
	"miniblog/internal/persistence/reactions"
	"miniblog/internal/persistence/users"
	"miniblog/internal/publishing"
	"miniblog/internal/reacting"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type client struct {
	t       *testing.T
	handler http.Handler
}

func newClient(t *testing.T) *client {
	t.Helper()

	db := persistencetest.New(t)
	logger := slog.New(slog.DiscardHandler)

	server := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() {
		rdb.Close() //nolint:errcheck
	})

	pubs := &publications.Repository{DB: db}
	ledger := &reactions.Ledger{DB: db}
	blocks := &blockedtags.Repository{DB: db}
	userRepo := &users.Repository{DB: db}
	authenticator := &auth.Authenticator{
		Tokens:    &auth.Tokens{Config: &config.Config{JWTSecret: "secret", JWTTTL: time.Hour}},
		Blacklist: auth.NewBlacklist(rdb),
		Users:     userRepo,
	}

	s := &api.Server{
		Logger: logger,
		Accounts: &accounts.Service{
			Logger:        logger,
			DB:            db,
			Users:         userRepo,
			Publications:  pubs,
			Ledger:        ledger,
			Blocks:        blocks,
			Authenticator: authenticator,
		},
		Publishing: &publishing.Service{Logger: logger, DB: db, Publications: pubs, Ledger: ledger},
		Reacting:   &reacting.Service{Logger: logger, DB: db, Publications: pubs, Ledger: ledger},
		Blocking:   &blocking.Service{Logger: logger, DB: db, Blocks: blocks},

		Authenticator: authenticator,
	}

	return &client{t: t, handler: s.Handler()}
}

func (c *client) do(method, path, token string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// signup registers the nickname and returns a bearer token for it.
func (c *client) signup(nickname string) string {
	c.t.Helper()

	rec := c.do(http.MethodPost, "/users", "", map[string]string{
		"name": "Name " + nickname, "nickname": nickname, "password": "password",
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())

	return c.login(nickname)
}

func (c *client) login(nickname string) string {
	c.t.Helper()

	rec := c.do(http.MethodPost, "/users/login", "", map[string]string{
		"nickname": nickname, "password": "password",
	})
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())

	return decode[map[string]any](c.t, rec)["access_token"].(string)
}

func (c *client) publish(token, title, description, tag string) uint64 {
	c.t.Helper()

	rec := c.do(http.MethodPost, "/publications", token, map[string]string{
		"title": title, "description": description, "tag": tag,
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())

	return uint64(decode[map[string]any](c.t, rec)["id"].(float64))
}

type publication struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
	CreatorName string `json:"creator_name"`
	Likes       int64  `json:"likes"`
	Dislikes    int64  `json:"dislikes"`
	PublishedAt string `json:"published_at"`
}

type reaction struct {
	Detail      string      `json:"detail"`
	Outcome     string      `json:"outcome"`
	Publication publication `json:"publication"`
}

func TestReactions(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	author := c.signup("author")
	reader := c.signup("reader")
	id := c.publish(author, "Hello", "World", "News")

	like := fmt.Sprintf("/publications/%d/like", id)
	dislike := fmt.Sprintf("/publications/%d/dislike", id)

	rec := c.do(http.MethodGet, "/publications/liked", reader, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodPost, like, reader, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[reaction](t, rec)
	require.Equal(t, "like_added", result.Outcome)
	require.Equal(t, int64(1), result.Publication.Likes)
	require.Equal(t, "author", result.Publication.CreatorName)

	rec = c.do(http.MethodGet, "/publications/liked", reader, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]publication](t, rec), 1)

	rec = c.do(http.MethodPost, dislike, reader, nil)
	result = decode[reaction](t, rec)
	require.Equal(t, "changed_like_to_dislike", result.Outcome)
	require.Equal(t, "Your like was changed to a dislike.", result.Detail)
	require.Equal(t, int64(0), result.Publication.Likes)
	require.Equal(t, int64(1), result.Publication.Dislikes)

	rec = c.do(http.MethodPost, dislike, reader, nil)
	result = decode[reaction](t, rec)
	require.Equal(t, "dislike_removed", result.Outcome)
	require.Equal(t, int64(0), result.Publication.Dislikes)

	rec = c.do(http.MethodGet, "/publications/disliked", reader, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodPost, fmt.Sprintf("/publications/%d/like", id+1), reader, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodPost, "/publications/abc/like", reader, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = c.do(http.MethodPost, like, "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBlockedTags(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	author := c.signup("author")
	reader := c.signup("reader")
	c.publish(author, "Chips", "Silicon", "Technology")
	c.publish(author, "Goal", "Football", "Sports")

	rec := c.do(http.MethodPost, "/blocks/tags", reader, map[string]string{"tag": "Technology"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	block := decode[map[string]any](t, rec)
	require.Equal(t, true, block["blocked"])
	require.Contains(t, block["detail"], "is now blocked")

	rec = c.do(http.MethodGet, "/publications/latest", reader, nil)
	latest := decode[[]publication](t, rec)
	require.Len(t, latest, 1)
	require.Equal(t, "Sports", latest[0].Tag)

	rec = c.do(http.MethodGet, "/publications/latest", "", nil)
	require.Len(t, decode[[]publication](t, rec), 2)

	rec = c.do(http.MethodGet, "/blocks/tags", reader, nil)
	require.Equal(t, map[string]any{"tags": []any{"Technology"}}, decode[map[string]any](t, rec))

	rec = c.do(http.MethodPost, "/blocks/tags", reader, map[string]string{"tag": "Technology"})
	require.Equal(t, false, decode[map[string]any](t, rec)["blocked"])

	rec = c.do(http.MethodGet, "/publications/tag?tag=Technology", reader, nil)
	require.Len(t, decode[[]publication](t, rec), 1)

	rec = c.do(http.MethodPost, "/blocks/tags", reader, map[string]string{"tag": "Cooking"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPublications(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	author := c.signup("author")
	other := c.signup("other")

	long := strings.Repeat("a", 80)
	id := c.publish(author, "Long read", long, "")
	path := fmt.Sprintf("/publications/%d", id)

	rec := c.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	full := decode[publication](t, rec)
	require.Equal(t, long, full.Description)
	require.Equal(t, "Others", full.Tag)
	require.NotEmpty(t, full.PublishedAt)

	rec = c.do(http.MethodGet, "/publications/latest?limit=5", "", nil)
	listed := decode[[]publication](t, rec)
	require.Len(t, listed, 1)
	require.Equal(t, strings.Repeat("a", 50)+"...Access the post to read more.", listed[0].Description)

	rec = c.do(http.MethodPatch, path, other, map[string]string{"title": "Stolen"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = c.do(http.MethodPatch, path, author, map[string]string{"title": "Edited"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Edited", decode[publication](t, rec).Title)

	rec = c.do(http.MethodGet, "/publications/me", other, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/publications/me", author, nil)
	require.Len(t, decode[[]publication](t, rec), 1)

	rec = c.do(http.MethodGet, "/publications/days?days=1&date_of_post=last", "", nil)
	require.Len(t, decode[[]publication](t, rec), 1)

	rec = c.do(http.MethodGet, "/publications/days?days=1&date_of_post=up", "", nil)
	require.Empty(t, decode[[]publication](t, rec))

	rec = c.do(http.MethodGet, "/publications/days", "", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = c.do(http.MethodDelete, path, other, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = c.do(http.MethodDelete, path, author, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = c.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsers(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	token := c.signup("alice")

	rec := c.do(http.MethodPost, "/users", "", map[string]string{
		"name": "Impostor", "nickname": "alice", "password": "password",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = c.do(http.MethodGet, "/users?nickname=alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Name alice", decode[map[string]any](t, rec)["name"])

	rec = c.do(http.MethodGet, "/users?nickname=bob", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodPatch, "/users", token, map[string]string{"name": "Alice"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Alice", decode[map[string]any](t, rec)["name"])

	rec = c.do(http.MethodPost, "/users/login", "", map[string]string{"nickname": "alice", "password": "nope-nope"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/users/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPatch, "/users", token, map[string]string{"name": "Ghost"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	token = c.login("alice")

	rec = c.do(http.MethodDelete, "/users", token, map[string]string{"password": "wrong-password"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodDelete, "/users", token, map[string]string{"password": "password"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = c.do(http.MethodGet, "/users?nickname=alice", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletedAccountTokens(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	author := c.signup("author")
	id := c.publish(author, "Hello", "World", "News")

	token := c.signup("reader")
	otherSession := c.login("reader")

	rec := c.do(http.MethodDelete, "/users", token, map[string]string{"password": "password"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	for _, bearer := range []string{token, otherSession} {
		rec = c.do(http.MethodPost, fmt.Sprintf("/publications/%d/like", id), bearer, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())

		rec = c.do(http.MethodPost, "/publications", bearer, map[string]string{"title": "Orphan", "description": "x"})
		require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())

		rec = c.do(http.MethodPost, "/blocks/tags", bearer, map[string]string{"tag": "News"})
		require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
	}

	rec = c.do(http.MethodGet, "/publications/latest", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	latest := decode[[]publication](t, rec)
	require.Len(t, latest, 1)
	require.Equal(t, int64(0), latest[0].Likes)
}
