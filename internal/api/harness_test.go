package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"todo_app/internal/db"
	"todo_app/internal/domain"
	"todo_app/internal/middleware"
	"todo_app/internal/notify"
	"todo_app/internal/testutil"
)

const testSecret = "test-secret"

// recordingMailer captures every delivered message.
type recordingMailer struct {
	mu    sync.Mutex
	sent  []notify.Message
	block chan struct{}
}

func (m *recordingMailer) Send(_ context.Context, msg notify.Message) error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) messages() []notify.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Message(nil), m.sent...)
}

type harness struct {
	t        *testing.T
	router   *gin.Engine
	store    *db.GormStore
	mailer   *recordingMailer
	notifier *notify.Notifier
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithRedis(t, nil)
}

func newHarnessWithRedis(t *testing.T, rdb *redis.Client) *harness {
	t.Helper()
	return newHarnessWrapped(t, rdb, func(s db.Store) db.Store { return s })
}

// newHarnessWrapped routes requests through wrap(store) while the harness
// helpers keep reading the underlying store directly.
func newHarnessWrapped(t *testing.T, rdb *redis.Client, wrap func(db.Store) db.Store) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := testutil.NewStore(t)
	mailer := &recordingMailer{}
	notifier := notify.NewNotifier(mailer, time.Second)

	router, err := NewRouter(Dependencies{
		Store:         wrap(store),
		Redis:         rdb,
		Notifier:      notifier,
		SessionSecret: testSecret,
	})
	require.NoError(t, err)

	return &harness{t: t, router: router, store: store, mailer: mailer, notifier: notifier}
}

func (h *harness) do(method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	h.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *harness) signup(username, password string) *httptest.ResponseRecorder {
	h.t.Helper()
	return h.do(http.MethodPost, "/signup", url.Values{"username": {username}, "password": {password}})
}

// loginAs registers and logs in a user, returning the identity cookie.
func (h *harness) loginAs(username, password string) (*http.Cookie, *domain.User) {
	h.t.Helper()
	rec := h.signup(username, password)
	require.Equal(h.t, http.StatusSeeOther, rec.Code)

	rec = h.do(http.MethodPost, "/login", url.Values{"username": {username}, "password": {password}})
	require.Equal(h.t, http.StatusSeeOther, rec.Code)
	cookie := findCookie(rec, middleware.UserCookie)
	require.NotNil(h.t, cookie)

	user, err := h.store.FindUserByUsername(context.Background(), username)
	require.NoError(h.t, err)
	return cookie, user
}

func (h *harness) addTask(cookie *http.Cookie, title, deadline, priority string) *httptest.ResponseRecorder {
	h.t.Helper()
	return h.do(http.MethodPost, "/add", url.Values{
		"title":    {title},
		"deadline": {deadline},
		"priority": {priority},
	}, cookie)
}

func (h *harness) tasksOf(userID uint) []domain.Task {
	h.t.Helper()
	tasks, err := h.store.ListTasks(context.Background(), userID)
	require.NoError(h.t, err)
	return tasks
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func flashOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	c := findCookie(rec, FlashCookie)
	if c == nil {
		return ""
	}
	msg, err := url.QueryUnescape(c.Value)
	require.NoError(t, err)
	return msg
}

func dateFromToday(days int) string {
	return time.Now().AddDate(0, 0, days).Format(domain.DateLayout)
}
