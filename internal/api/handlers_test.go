package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository/memory"
	"alcyxob/exercise-tracker/internal/service"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store := memory.NewStore()
	return NewRouter(Dependencies{
		Logger:          discardLogger(),
		UserService:     service.NewUserService(store.Users()),
		ExerciseService: service.NewExerciseService(store.Users(), store.Exercises()),
		LogService:      service.NewLogService(store.Users(), store.Exercises()),
		Store:           store,
	})
}

func do(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(router, req)
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return do(router, req)
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	return do(router, httptest.NewRequest(http.MethodGet, path, nil))
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func createUser(t *testing.T, router http.Handler, username string) UserResponse {
	t.Helper()
	rr := postForm(router, "/api/users", url.Values{"username": {username}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[UserResponse](t, rr)
}

func TestScenarioCreateAddAndLog(t *testing.T) {
	router := newTestRouter(t)

	bob := createUser(t, router, "bob")
	require.NotEmpty(t, bob.ID)
	require.Equal(t, "bob", bob.Username)

	rr := postForm(router, "/api/users/"+bob.ID+"/exercises", url.Values{
		"description": {"run"},
		"duration":    {"30"},
		"date":        {"2023-01-05"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.JSONEq(t,
		`{"_id":"`+bob.ID+`","username":"bob","description":"run","duration":30,"date":"Thu Jan 05 2023"}`,
		rr.Body.String())

	rr = get(router, "/api/users/"+bob.ID+"/logs")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t,
		`{"_id":"`+bob.ID+`","username":"bob","count":1,"log":[{"description":"run","duration":30,"date":"Thu Jan 05 2023"}]}`,
		rr.Body.String())
}

func TestListUsers(t *testing.T) {
	router := newTestRouter(t)

	rr := get(router, "/api/users")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[]`, rr.Body.String())

	bob := createUser(t, router, "bob")
	anon := createUser(t, router, "")

	users := decode[[]UserResponse](t, get(router, "/api/users"))
	require.Equal(t, []UserResponse{bob, anon}, users)
}

func TestCreateUserAcceptsJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"amy"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := do(router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "amy", decode[UserResponse](t, rr).Username)
}

func TestAddExerciseJSONDuration(t *testing.T) {
	router := newTestRouter(t)
	bob := createUser(t, router, "bob")

	req := httptest.NewRequest(http.MethodPost, "/api/users/"+bob.ID+"/exercises",
		strings.NewReader(`{"description":"row","duration":12.5,"date":"2023-05-10"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := do(router, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decode[ExerciseResponse](t, rr)
	require.Equal(t, 12.5, resp.Duration)
	require.Equal(t, "Wed May 10 2023", resp.Date)
}

func TestCreateUserAcceptsNonStringUsername(t *testing.T) {
	router := newTestRouter(t)

	rr := postJSON(router, "/api/users", `{"username":123}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, "123", decode[UserResponse](t, rr).Username)

	rr = postJSON(router, "/api/users", `{"username":["a"]}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.JSONEq(t, `{"error":"Invalid request body"}`, rr.Body.String())
}

func TestAddExerciseAcceptsSlashAndUnpaddedDates(t *testing.T) {
	router := newTestRouter(t)
	bob := createUser(t, router, "bob")

	for _, date := range []string{"01/05/2023", "1/5/2023", "2023-1-5"} {
		rr := postForm(router, "/api/users/"+bob.ID+"/exercises", url.Values{"duration": {"10"}, "date": {date}})
		require.Equal(t, http.StatusOK, rr.Code, date+": "+rr.Body.String())
		assert.Equal(t, "Thu Jan 05 2023", decode[ExerciseResponse](t, rr).Date, date)
	}
}

func TestAddExerciseJSONBodyErrors(t *testing.T) {
	router := newTestRouter(t)
	bob := createUser(t, router, "bob")
	path := "/api/users/" + bob.ID + "/exercises"

	rr := postJSON(router, path, `{"description":"row","duration":"abc"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.JSONEq(t, `{"error":"Invalid duration"}`, rr.Body.String())

	rr = postJSON(router, path, `{"description":{"x":1},"duration":5}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.JSONEq(t, `{"error":"Invalid request body"}`, rr.Body.String())

	rr = postJSON(router, path, `{"duration":`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.JSONEq(t, `{"error":"Invalid request body"}`, rr.Body.String())

	rr = postJSON(router, path, `{"description":7,"duration":"15","date":null}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decode[ExerciseResponse](t, rr)
	assert.Equal(t, "7", resp.Description)
	assert.Equal(t, 15.0, resp.Duration)

	logs := decode[LogResponse](t, get(router, "/api/users/"+bob.ID+"/logs"))
	require.Equal(t, 1, logs.Count)
}

func TestAddExerciseErrors(t *testing.T) {
	router := newTestRouter(t)
	bob := createUser(t, router, "bob")

	rr := postForm(router, "/api/users/"+primitive.NewObjectID().Hex()+"/exercises", url.Values{"description": {"run"}, "duration": {"30"}})
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.JSONEq(t, `{"error":"User not found"}`, rr.Body.String())

	rr = postForm(router, "/api/users/not-hex/exercises", url.Values{"duration": {"30"}})
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = postForm(router, "/api/users/"+bob.ID+"/exercises", url.Values{"duration": {"30"}, "date": {"31/31/2023"}})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.JSONEq(t, `{"error":"Invalid date format"}`, rr.Body.String())

	rr = postForm(router, "/api/users/"+bob.ID+"/exercises", url.Values{"duration": {"thirty"}})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.JSONEq(t, `{"error":"Invalid duration"}`, rr.Body.String())

	logs := decode[LogResponse](t, get(router, "/api/users/"+bob.ID+"/logs"))
	require.Zero(t, logs.Count)
	require.NotNil(t, logs.Log)
}

func TestGetLogsFiltersAndLimits(t *testing.T) {
	router := newTestRouter(t)
	bob := createUser(t, router, "bob")

	for _, date := range []string{"2022-12-31", "2023-01-01", "2023-01-20", "2023-01-31", "2023-02-01"} {
		rr := postForm(router, "/api/users/"+bob.ID+"/exercises", url.Values{"description": {"lift"}, "duration": {"20"}, "date": {date}})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	window := decode[LogResponse](t, get(router, "/api/users/"+bob.ID+"/logs?from=2023-01-01&to=2023-01-31"))
	require.Equal(t, 3, window.Count)
	require.Len(t, window.Log, 3)
	for _, entry := range window.Log {
		require.Contains(t, entry.Date, "Jan")
		require.Contains(t, entry.Date, "2023")
	}

	limited := decode[LogResponse](t, get(router, "/api/users/"+bob.ID+"/logs?limit=2"))
	require.Equal(t, 2, limited.Count)
	require.Len(t, limited.Log, 2)

	garbage := get(router, "/api/users/"+bob.ID+"/logs?limit=abc")
	omitted := get(router, "/api/users/"+bob.ID+"/logs")
	require.Equal(t, http.StatusOK, garbage.Code)
	require.JSONEq(t, omitted.Body.String(), garbage.Body.String())
	require.Equal(t, 5, decode[LogResponse](t, omitted).Count)
}

func TestGetLogsErrors(t *testing.T) {
	router := newTestRouter(t)
	bob := createUser(t, router, "bob")

	rr := get(router, "/api/users/"+primitive.NewObjectID().Hex()+"/logs")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.JSONEq(t, `{"error":"User not found"}`, rr.Body.String())

	rr = get(router, "/api/users/"+bob.ID+"/logs?from=someday")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.JSONEq(t, `{"error":"Invalid date format"}`, rr.Body.String())
}

type brokenUsers struct{}

func (brokenUsers) ListUsers(context.Context) ([]domain.User, error) {
	return nil, storageFailure()
}
func (brokenUsers) CreateUser(context.Context, string) (*domain.User, error) {
	return nil, storageFailure()
}

type brokenExercises struct{}

func (brokenExercises) AddExercise(context.Context, service.AddExerciseInput) (*service.ExerciseReceipt, error) {
	return nil, storageFailure()
}

type brokenLogs struct{}

func (brokenLogs) GetLogs(context.Context, service.LogQuery) (*domain.ExerciseLog, error) {
	return nil, storageFailure()
}

func storageFailure() error {
	return errors.Join(service.ErrStorage, errors.New("server selection timeout"))
}

func TestStorageFailuresMapTo500(t *testing.T) {
	router := NewRouter(Dependencies{
		Logger:          discardLogger(),
		UserService:     brokenUsers{},
		ExerciseService: brokenExercises{},
		LogService:      brokenLogs{},
	})
	id := primitive.NewObjectID().Hex()

	cases := []struct {
		rr   *httptest.ResponseRecorder
		body string
	}{
		{get(router, "/api/users"), `{"error":"Error fetching users"}`},
		{postForm(router, "/api/users", url.Values{"username": {"bob"}}), `{"error":"Error saving user"}`},
		{postForm(router, "/api/users/"+id+"/exercises", url.Values{"duration": {"1"}}), `{"error":"Error saving exercise"}`},
		{get(router, "/api/users/"+id+"/logs"), `{"error":"Error fetching user logs"}`},
	}
	for _, tc := range cases {
		assert.Equal(t, http.StatusInternalServerError, tc.rr.Code)
		assert.JSONEq(t, tc.body, tc.rr.Body.String())
	}
}

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("no reachable servers") }

func TestHealthz(t *testing.T) {
	rr := get(newTestRouter(t), "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)

	router := NewRouter(Dependencies{Logger: discardLogger(), Store: downStore{}})
	rr = get(router, "/healthz")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRequestIDIsEchoedOrGenerated(t *testing.T) {
	router := newTestRouter(t)

	rr := get(router, "/api/users")
	require.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rr = do(router, req)
	require.Equal(t, "req-123", rr.Header().Get(RequestIDHeader))
}

func TestCORSAllowsAnyOriginByDefault(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Origin", "https://freecodecamp.example")
	rr := do(router, req)

	require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	get(router, "/api/users")

	rr := get(router, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "exercise_tracker_http_requests_total")
}

func TestServesIndexPage(t *testing.T) {
	views := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(views, "index.html"), []byte("<h1>Exercise tracker</h1>"), 0o600))

	store := memory.NewStore()
	router := NewRouter(Dependencies{
		Logger:          discardLogger(),
		UserService:     service.NewUserService(store.Users()),
		ExerciseService: service.NewExerciseService(store.Users(), store.Exercises()),
		LogService:      service.NewLogService(store.Users(), store.Exercises()),
		ViewsDir:        views,
	})

	rr := get(router, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Exercise tracker")
}
