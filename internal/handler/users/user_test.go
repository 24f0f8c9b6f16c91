package users

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"worktrack/internal/database"
	"worktrack/internal/middleware"
	"worktrack/internal/model"
	"worktrack/internal/service"
	"worktrack/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newParamCtx(e *echo.Echo, val, query string) (echo.Context, *httptest.ResponseRecorder) {
	target := "/api/users/" + val + "/logs"
	if query != "" {
		target += "?" + query
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/users/:user_id/logs")
	c.SetParamNames("user_id")
	c.SetParamValues(val)
	return c, rec
}

func newCtx(e *echo.Echo, path string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), rec), rec
}

func restore() {
	listUsers = store.ListUsers
	getUserByID = store.GetUserByID
	listTimeLogsByUser = store.ListTimeLogsByUser
}

func TestListUsersHandler(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()

	listUsers = func(context.Context, database.DB) ([]model.User, error) {
		return []model.User{
			{ID: 2, Email: "a@example.com", Name: "Alice", Role: model.RoleAdmin, Department: "Ops", PasswordHash: "should-not-leak"},
			{ID: 1, Email: "b@example.com", Name: "Bob", Role: model.RoleEmployee, Department: "General"},
		}, nil
	}
	ctx, rec := newCtx(e, "/api/users")
	require.NoError(t, ListUsersHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[
		{"id":2,"email":"a@example.com","name":"Alice","role":"admin","department":"Ops"},
		{"id":1,"email":"b@example.com","name":"Bob","role":"employee","department":"General"}
	]`, rec.Body.String())
	require.NotContains(t, rec.Body.String(), "should-not-leak")

	listUsers = func(context.Context, database.DB) ([]model.User, error) { return []model.User{}, nil }
	ctx, rec = newCtx(e, "/api/users")
	require.NoError(t, ListUsersHandler(&database.FakeDB{})(ctx))
	require.JSONEq(t, `[]`, rec.Body.String())

	listUsers = func(context.Context, database.DB) ([]model.User, error) { return nil, errors.New("db") }
	ctx, rec = newCtx(e, "/api/users")
	require.NoError(t, ListUsersHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetMeHandler(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()
	getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
		switch id {
		case 1:
			return &model.User{ID: 1, Email: "a@example.com", Name: "Alice", Role: model.RoleEmployee, Department: "General"}, nil
		case 2:
			return nil, store.ErrNotFound
		}
		return nil, errors.New("db")
	}

	ctx, rec := newCtx(e, "/api/users/me")
	require.NoError(t, GetMeHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	for id, want := range map[int]int{1: http.StatusOK, 2: http.StatusNotFound, 3: http.StatusInternalServerError} {
		ctx, rec = newCtx(e, "/api/users/me")
		ctx.Set(middleware.ContextUserKey, &service.Claims{UserID: id})
		require.NoError(t, GetMeHandler(&database.FakeDB{})(ctx))
		require.Equal(t, want, rec.Code, "user %d", id)
	}
}

func TestUserLogsHandler(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
		if id == 7 {
			return &model.User{ID: 7}, nil
		}
		return nil, store.ErrNotFound
	}
	var gotLimit int
	listTimeLogsByUser = func(_ context.Context, _ database.DB, userID, limit int) ([]model.TimeLog, error) {
		gotLimit = limit
		return []model.TimeLog{{ID: 1, UserID: userID, Type: model.LogTypeCheckIn, Timestamp: now}}, nil
	}

	t.Run("success default limit", func(t *testing.T) {
		ctx, rec := newParamCtx(e, "7", "")
		require.NoError(t, UserLogsHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, store.DefaultLogLimit, gotLimit)
		require.Contains(t, rec.Body.String(), `"type":"check-in"`)
	})

	t.Run("explicit limit", func(t *testing.T) {
		ctx, rec := newParamCtx(e, "7", "limit=10")
		require.NoError(t, UserLogsHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 10, gotLimit)
	})

	t.Run("bad input", func(t *testing.T) {
		for _, tc := range []struct{ id, q string }{{"abc", ""}, {"0", ""}, {"7", "limit=x"}, {"7", "limit=0"}, {"7", "limit=101"}} {
			ctx, rec := newParamCtx(e, tc.id, tc.q)
			require.NoError(t, UserLogsHandler(&database.FakeDB{})(ctx))
			require.Equal(t, http.StatusBadRequest, rec.Code, "%s?%s", tc.id, tc.q)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		ctx, rec := newParamCtx(e, "8", "")
		require.NoError(t, UserLogsHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("storage errors", func(t *testing.T) {
		prev := getUserByID
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) { return nil, errors.New("db") }
		ctx, rec := newParamCtx(e, "7", "")
		require.NoError(t, UserLogsHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		getUserByID = prev

		listTimeLogsByUser = func(context.Context, database.DB, int, int) ([]model.TimeLog, error) { return nil, errors.New("db") }
		ctx, rec = newParamCtx(e, "7", "")
		require.NoError(t, UserLogsHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
