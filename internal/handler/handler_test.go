package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "exercisetracker/internal/errors"
	"exercisetracker/internal/model"
	"exercisetracker/internal/service"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockExerciseService is a mock implementation of service.ExerciseService.
type MockExerciseService struct {
	mock.Mock
}

func (m *MockExerciseService) AddEntry(ctx context.Context, in service.AddEntryInput) (*service.LogEntryView, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LogEntryView), args.Error(1)
}

func (m *MockExerciseService) GetLogs(ctx context.Context, userID string, q service.LogQuery) (*service.LogView, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LogView), args.Error(1)
}

func (m *MockExerciseService) ImportEntries(ctx context.Context, userID string, entries []service.AddEntryInput) (int, error) {
	args := m.Called(ctx, userID, entries)
	return args.Int(0), args.Error(1)
}

// serve runs h through a real echo instance so HTTPErrors are rendered.
func serve(method, target, path, contentType, body string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	e.Add(method, path, h)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestUserHandler_CreateUser(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"json body", echo.MIMEApplicationJSON, `{"username":"alice"}`},
		{"form body", echo.MIMEApplicationForm, url.Values{"username": {"alice"}}.Encode()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			svc.On("CreateUser", mock.Anything, "alice").Return(&model.User{ID: "u1", Username: "alice"}, nil)
			h := NewUserHandler(svc, Responder{SoftNotFound: true})

			rec := serve(http.MethodPost, "/api/users", "/api/users", tt.contentType, tt.body, h.CreateUser)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"id":"u1","username":"alice"}`, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestUserHandler_CreateUser_StoreFailure(t *testing.T) {
	svc := new(MockUserService)
	svc.On("CreateUser", mock.Anything, "alice").Return(nil, errors.New("connection refused"))
	h := NewUserHandler(svc, Responder{SoftNotFound: true})

	rec := serve(http.MethodPost, "/api/users", "/api/users", echo.MIMEApplicationJSON, `{"username":"alice"}`, h.CreateUser)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decode(t, rec)["code"])
}

func TestUserHandler_CreateUser_MalformedBody(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc, Responder{SoftNotFound: true})

	rec := serve(http.MethodPost, "/api/users", "/api/users", echo.MIMEApplicationJSON, `{"username":`, h.CreateUser)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestUserHandler_ListUsers(t *testing.T) {
	svc := new(MockUserService)
	svc.On("ListUsers", mock.Anything).Return([]model.User{
		{ID: "u1", Username: "alice"},
		{ID: "u2", Username: "alice"},
	}, nil)
	h := NewUserHandler(svc, Responder{SoftNotFound: true})

	rec := serve(http.MethodGet, "/api/users", "/api/users", "", "", h.ListUsers)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"u1","username":"alice"},{"id":"u2","username":"alice"}]`, rec.Body.String())
}

func TestExerciseHandler_AddExercise(t *testing.T) {
	view := &service.LogEntryView{Username: "alice", Description: "run", Duration: 30, Date: "Sun Jan 15 2023", ID: "u1"}
	want := service.AddEntryInput{UserID: "u1", Description: "run", Duration: 30, Date: "2023-01-15"}

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"json string duration", echo.MIMEApplicationJSON, `{"description":"run","duration":"30","date":"2023-01-15"}`},
		{"json number duration", echo.MIMEApplicationJSON, `{"description":"run","duration":30,"date":"2023-01-15"}`},
		{"form body", echo.MIMEApplicationForm, url.Values{"description": {"run"}, "duration": {"30"}, "date": {"2023-01-15"}}.Encode()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockExerciseService)
			svc.On("AddEntry", mock.Anything, want).Return(view, nil)
			h := NewExerciseHandler(svc, Responder{SoftNotFound: true})

			rec := serve(http.MethodPost, "/api/users/u1/exercises", "/api/users/:id/exercises", tt.contentType, tt.body, h.AddExercise)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"username":"alice","description":"run","duration":30,"date":"Sun Jan 15 2023","id":"u1"}`, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestExerciseHandler_AddExercise_UserNotFound(t *testing.T) {
	tests := []struct {
		name       string
		soft       bool
		wantStatus int
	}{
		{"soft envelope", true, http.StatusOK},
		{"strict status", false, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockExerciseService)
			svc.On("AddEntry", mock.Anything, mock.Anything).Return(nil, apperrors.ErrUserNotFound)
			h := NewExerciseHandler(svc, Responder{SoftNotFound: tt.soft})

			rec := serve(http.MethodPost, "/api/users/ghost/exercises", "/api/users/:id/exercises",
				echo.MIMEApplicationJSON, `{"description":"run","duration":30}`, h.AddExercise)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, `{"error":"User not found"}`, rec.Body.String())
		})
	}
}

func TestExerciseHandler_AddExercise_BadInput(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode string
	}{
		{"non-numeric duration", `{"description":"run","duration":"half an hour"}`, nil, "INVALID_DURATION"},
		{"out of range duration", `{"description":"run","duration":1e30}`, nil, "INVALID_DURATION"},
		{"unparseable date", `{"description":"run","duration":30,"date":"someday"}`, apperrors.ErrInvalidDate, "INVALID_DATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockExerciseService)
			if tt.svcErr != nil {
				svc.On("AddEntry", mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			}
			h := NewExerciseHandler(svc, Responder{SoftNotFound: true})

			rec := serve(http.MethodPost, "/api/users/u1/exercises", "/api/users/:id/exercises",
				echo.MIMEApplicationJSON, tt.body, h.AddExercise)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantCode, decode(t, rec)["code"])
		})
	}
}

func TestExerciseHandler_GetLogs(t *testing.T) {
	view := &service.LogView{
		Username: "alice",
		Count:    1,
		ID:       "u1",
		Log:      []service.LogItem{{Description: "run", Duration: 30, Date: "Sun Jan 15 2023"}},
	}
	svc := new(MockExerciseService)
	svc.On("GetLogs", mock.Anything, "u1", service.LogQuery{From: "2023-01-01", To: "2023-01-31", Limit: 5}).Return(view, nil)
	h := NewExerciseHandler(svc, Responder{SoftNotFound: true})

	rec := serve(http.MethodGet, "/api/users/u1/logs?from=2023-01-01&to=2023-01-31&limit=5", "/api/users/:id/logs", "", "", h.GetLogs)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"username":"alice","count":1,"id":"u1","log":[{"description":"run","duration":30,"date":"Sun Jan 15 2023"}]}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestExerciseHandler_GetLogs_IgnoresBadLimit(t *testing.T) {
	svc := new(MockExerciseService)
	svc.On("GetLogs", mock.Anything, "u1", service.LogQuery{}).Return(&service.LogView{ID: "u1", Log: []service.LogItem{}}, nil)
	h := NewExerciseHandler(svc, Responder{SoftNotFound: true})

	rec := serve(http.MethodGet, "/api/users/u1/logs?limit=lots", "/api/users/:id/logs", "", "", h.GetLogs)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestExerciseHandler_GetLogs_UserNotFound(t *testing.T) {
	svc := new(MockExerciseService)
	svc.On("GetLogs", mock.Anything, "ghost", service.LogQuery{}).Return(nil, apperrors.ErrUserNotFound)
	h := NewExerciseHandler(svc, Responder{SoftNotFound: true})

	rec := serve(http.MethodGet, "/api/users/ghost/logs", "/api/users/:id/logs", "", "", h.GetLogs)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, rec.Body.String())
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		input   string
		want    FlexInt
		wantErr bool
	}{
		{`30`, 30, false},
		{`"30"`, 30, false},
		{`" 45 "`, 45, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`12.9`, 12, false},
		{`"-5"`, -5, false},
		{`"abc"`, 0, true},
		{`true`, 0, true},
		{`1e30`, 0, true},
		{`-1e30`, 0, true},
		{`"99999999999999999999"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var f FlexInt
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidDuration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 0, parseLimit(""))
	assert.Equal(t, 3, parseLimit("3"))
	assert.Equal(t, 0, parseLimit("-1"))
	assert.Equal(t, 0, parseLimit("ten"))
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(map[string]Pinger{"store": stubPinger{}})
	rec := serve(http.MethodGet, "/healthz", "/healthz", "", "", h.Live)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = serve(http.MethodGet, "/readyz", "/readyz", "", "", h.Ready)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"store":"ok"}`, rec.Body.String())

	h = NewHealthHandler(map[string]Pinger{"store": stubPinger{}, "cache": stubPinger{err: errors.New("down")}})
	rec = serve(http.MethodGet, "/readyz", "/readyz", "", "", h.Ready)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"store":"ok","cache":"down"}`, rec.Body.String())
}
