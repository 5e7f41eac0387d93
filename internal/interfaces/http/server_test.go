package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pot-code/skillspark/internal/domain"
	infra "github.com/pot-code/skillspark/internal/infrastructure"
	"github.com/pot-code/skillspark/internal/infrastructure/driver"
	"github.com/pot-code/skillspark/internal/infrastructure/driver/drivertest"
	"github.com/pot-code/skillspark/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubUserUseCase struct {
	users map[string]*domain.UserModel
}

func (su *stubUserUseCase) SignIn(ctx context.Context, post *domain.UserModel) (*domain.UserModel, error) {
	user, ok := su.users[post.Username]
	if !ok || user.Password != post.Password {
		return nil, domain.ErrNoSuchUser
	}
	if user.LoginRetry > 2 {
		return nil, domain.ErrUserTooManyRetry
	}
	return &domain.UserModel{ID: user.ID, Username: user.Username}, nil
}

func (su *stubUserUseCase) SignUp(ctx context.Context, post *domain.UserModel) (*domain.UserModel, error) {
	if _, ok := su.users[post.Username]; ok {
		return nil, domain.ErrDuplicatedUser
	}
	user := &domain.UserModel{ID: "id-" + post.Username, Username: post.Username, Password: post.Password}
	su.users[post.Username] = user
	return &domain.UserModel{ID: user.ID, Username: user.Username}, nil
}

func (su *stubUserUseCase) Exists(ctx context.Context, post *domain.UserModel) (bool, error) {
	_, ok := su.users[post.Username]
	return ok, nil
}

type stubCourseRepository struct{}

func (stubCourseRepository) GetCourse(ctx context.Context, courseID string) (*domain.CourseModel, error) {
	if courseID != "go101" {
		return nil, domain.ErrNoSuchCourse
	}
	return &domain.CourseModel{ID: courseID}, nil
}

func (stubCourseRepository) ListLessons(ctx context.Context, courseID string) ([]*domain.Lesson, error) {
	return []*domain.Lesson{
		{ID: "intro", CourseID: courseID, Ordinal: 1, Type: domain.LessonTypeVideo},
		{ID: "check", CourseID: courseID, Ordinal: 2, Type: domain.LessonTypeQuiz},
		{ID: "wrap", CourseID: courseID, Ordinal: 3, Type: domain.LessonTypeText},
		{ID: "more", CourseID: courseID, Ordinal: 4, Type: domain.LessonTypeText},
	}, nil
}

type testEnv struct {
	server *Server
	kv     *driver.MemoryKV
	db     *drivertest.FakeDB
}

func newTestEnv() *testEnv {
	option := new(infra.AppConfig)
	option.Env = infra.EnvProduction
	option.RequestTimeout = 5 * time.Second
	option.SessionTimeout = time.Hour
	option.SessionRefresh = time.Minute
	option.Security.JWTMethod = "HS256"
	option.Security.JWTSecret = "secret"
	option.Security.TokenName = "token"

	kv := driver.NewMemoryKV()
	db := &drivertest.FakeDB{}
	users := &stubUserUseCase{users: map[string]*domain.UserModel{
		"alice": {ID: "u-alice", Username: "alice", Password: "secret1"},
		"bob":   {ID: "u-bob", Username: "bob", Password: "secret1", LoginRetry: 3},
	}}
	progressUseCase := progress.NewProgressUseCase(stubCourseRepository{}, kv, 10)
	return &testEnv{
		server: NewServer(db, kv, option, users, progressUseCase, zap.NewNop()),
		kv:     kv,
		db:     db,
	}
}

func (env *testEnv) do(method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) login(t *testing.T, username string) *http.Cookie {
	rec := env.do(http.MethodPost, "/api/v1/user/login", `{"username":"`+username+`","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("no token cookie")
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestServer_Healthz(t *testing.T) {
	env := newTestEnv()
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/healthz", "").Code)

	env.db.PingErr = context.DeadlineExceeded
	assert.Equal(t, http.StatusServiceUnavailable, env.do(http.MethodGet, "/healthz", "").Code)
}

func TestServer_SignIn(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"ok", `{"username":"alice","password":"secret1"}`, http.StatusOK},
		{"wrong password", `{"username":"alice","password":"nope"}`, http.StatusUnauthorized},
		{"locked", `{"username":"bob","password":"secret1"}`, http.StatusForbidden},
		{"missing fields", `{"username":"alice"}`, http.StatusBadRequest},
		{"malformed", `{"username":`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/v1/user/login", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestServer_SignUp(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/api/v1/user/sign-up", `{"username":"carol","password":"secret1"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(http.MethodPost, "/api/v1/user/sign-up", `{"username":"carol","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/user/sign-up", `{"username":"x","password":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var verr RESTValidationError
	decode(t, rec, &verr)
	assert.Len(t, verr.InvalidParams, 2)
}

func TestServer_UserExists(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodGet, "/api/v1/user/exists?username=alice", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", strings.TrimSpace(rec.Body.String()))

	rec = env.do(http.MethodGet, "/api/v1/user/exists", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ProgressRequiresToken(t *testing.T) {
	env := newTestEnv()
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/v1/courses/go101/progress", "").Code)
}

func TestServer_ToggleRoundTrip(t *testing.T) {
	env := newTestEnv()
	token := env.login(t, "alice")

	var summary domain.CourseSummary
	rec := env.do(http.MethodGet, "/api/v1/courses/go101/progress", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &summary)
	assert.Equal(t, 0, summary.Progress)
	assert.Equal(t, "intro", summary.NextLesson.ID)

	var result domain.ToggleResult
	rec = env.do(http.MethodPut, "/api/v1/courses/go101/lessons/intro/completion", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &result)
	assert.True(t, result.Record.IsCompleted)
	assert.Equal(t, 25, result.Summary.Progress)

	rec = env.do(http.MethodGet, "/api/v1/courses/go101/progress", "", token)
	decode(t, rec, &summary)
	assert.Equal(t, 25, summary.Progress)
	assert.Equal(t, "check", summary.NextLesson.ID)
	assert.Equal(t, 30, summary.RemainingMinutes)

	raw, err := env.kv.Get(context.Background(), "viewer:u-alice:lesson_progress_intro")
	require.NoError(t, err)
	assert.Contains(t, raw, `"isCompleted":true`)

	var lessons []*domain.LessonStatus
	rec = env.do(http.MethodGet, "/api/v1/courses/go101/lessons", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &lessons)
	require.Len(t, lessons, 4)
	assert.True(t, lessons[0].Completed)
	assert.False(t, lessons[1].Completed)
}

func TestServer_LessonAndQuiz(t *testing.T) {
	env := newTestEnv()
	token := env.login(t, "alice")

	var nav domain.LessonNavigation
	rec := env.do(http.MethodGet, "/api/v1/courses/go101/lessons/intro", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &nav)
	assert.Nil(t, nav.Previous)
	assert.Equal(t, "check", nav.Next.ID)
	assert.Equal(t, "check", nav.NextQuiz.ID)
	assert.True(t, nav.HasAvailableQuiz)

	var quiz domain.Lesson
	rec = env.do(http.MethodGet, "/api/v1/courses/go101/quizzes/next?from=1", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &quiz)
	assert.Equal(t, "check", quiz.ID)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/v1/courses/go101/quizzes/next?from=2", "", token).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/v1/courses/go101/quizzes/next?from=abc", "", token).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/v1/courses/go101/quizzes/next", "", token).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/v1/courses/go101/lessons/nope", "", token).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/v1/courses/rust/progress", "", token).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPut, "/api/v1/courses/go101/lessons/nope/completion", "", token).Code)
}

func TestServer_SignOut(t *testing.T) {
	env := newTestEnv()
	token := env.login(t, "alice")

	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/v1/courses/go101/progress", "", token).Code)
	assert.Equal(t, http.StatusNoContent, env.do(http.MethodPut, "/api/v1/user/sign-out", "", token).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/v1/courses/go101/progress", "", token).Code)
}

func TestServer_ProgressSocket(t *testing.T) {
	env := newTestEnv()
	token := env.login(t, "alice")
	ts := httptest.NewServer(env.server)
	defer ts.Close()

	header := http.Header{}
	header.Set("Cookie", token.Name+"="+token.Value)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/v1/ws/progress", header)
	require.NoError(t, err)
	defer conn.Close()

	var reply struct {
		Type  string              `json:"type"`
		Data  domain.ToggleResult `json:"data"`
		Error *RESTStandardError  `json:"error"`
	}
	require.NoError(t, conn.WriteJSON(map[string]string{"course_id": "go101", "lesson_id": "check"}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "toggle", reply.Type)
	assert.True(t, reply.Data.Record.IsCompleted)
	assert.Equal(t, 25, reply.Data.Summary.Progress)

	reply.Error = nil
	require.NoError(t, conn.WriteJSON(map[string]string{"course_id": "go101", "lesson_id": "nope"}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "error", reply.Type)
	require.NotNil(t, reply.Error)
	assert.Equal(t, http.StatusNotFound, reply.Error.Code)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{oops")))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "error", reply.Type)
	assert.Equal(t, http.StatusUnprocessableEntity, reply.Error.Code)
}

func TestServer_ProgressSocketRequiresToken(t *testing.T) {
	env := newTestEnv()
	ts := httptest.NewServer(env.server)
	defer ts.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/v1/ws/progress", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
