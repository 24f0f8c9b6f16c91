package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"worktrack/internal/database"
	"worktrack/internal/model"
	"worktrack/internal/service"
	"worktrack/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// helper to build echo context with a JSON body
func newJSONCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type errBinder struct{}

func (errBinder) Bind(i any, c echo.Context) error { return errors.New("bind") }

type errValidator struct{}

func (errValidator) Validate(i any) error { return errors.New("v") }

type okValidator struct{}

func (okValidator) Validate(i any) error { return nil }

// plainHasher 以 "h:" 前綴代替 bcrypt，讓測試不需實際雜湊
type plainHasher struct{ err error }

func (p plainHasher) Hash(_ context.Context, pw string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return "h:" + pw, nil
}

func (p plainHasher) Verify(_ context.Context, hash, pw string) (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	return hash == "h:"+pw, nil
}

type stubIssuer struct {
	err    error
	issued *model.User
}

func (s *stubIssuer) Issue(u model.User) (string, *time.Time, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	s.issued = &u
	exp := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	return "tok-" + u.Email, &exp, nil
}

func restore() {
	getUserByEmail = store.GetUserByEmail
	createUser = store.CreateUser
	authenticateUser = service.AuthenticateUser
}

func TestLoginHandler(t *testing.T) {
	t.Cleanup(restore)
	alice := &model.User{ID: 1, Email: "alice@example.com", PasswordHash: "h:pw", Name: "Alice", Role: model.RoleEmployee, Department: "General"}
	getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
		if email == alice.Email {
			return alice, nil
		}
		return nil, store.ErrNotFound
	}

	t.Run("bind error", func(t *testing.T) {
		e := echo.New()
		e.Binder = errBinder{}
		ctx, rec := newJSONCtx(e, "")
		require.NoError(t, LoginHandler(&database.FakeDB{}, plainHasher{}, &stubIssuer{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validate error", func(t *testing.T) {
		e := echo.New()
		e.Validator = errValidator{}
		ctx, rec := newJSONCtx(e, `{"email":"a","password":"b"}`)
		require.NoError(t, LoginHandler(&database.FakeDB{}, plainHasher{}, &stubIssuer{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown email is 401 not a crash", func(t *testing.T) {
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, `{"email":"nobody@example.com","password":"pw"}`)
		require.NoError(t, LoginHandler(&database.FakeDB{}, plainHasher{}, &stubIssuer{})(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"error":"invalid email or password"}`, rec.Body.String())
	})

	t.Run("wrong password gives the same 401", func(t *testing.T) {
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, `{"email":"alice@example.com","password":"nope"}`)
		require.NoError(t, LoginHandler(&database.FakeDB{}, plainHasher{}, &stubIssuer{})(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"error":"invalid email or password"}`, rec.Body.String())
	})

	t.Run("lookup failure is 500", func(t *testing.T) {
		prev := getUserByEmail
		defer func() { getUserByEmail = prev }()
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) { return nil, errors.New("db down") }
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, `{"email":"alice@example.com","password":"pw"}`)
		require.NoError(t, LoginHandler(&database.FakeDB{}, plainHasher{}, &stubIssuer{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.NotContains(t, rec.Body.String(), "db down")
	})

	t.Run("hasher failure is 500", func(t *testing.T) {
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, `{"email":"alice@example.com","password":"pw"}`)
		require.NoError(t, LoginHandler(&database.FakeDB{}, plainHasher{err: context.Canceled}, &stubIssuer{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("issue error", func(t *testing.T) {
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, `{"email":"alice@example.com","password":"pw"}`)
		require.NoError(t, LoginHandler(&database.FakeDB{}, plainHasher{}, &stubIssuer{err: errors.New("sign")})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, `{"email":"alice@example.com","password":"pw"}`)
		issuer := &stubIssuer{}
		require.NoError(t, LoginHandler(&database.FakeDB{}, plainHasher{}, issuer)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 1, issuer.issued.ID)
		require.JSONEq(t, `{
			"token": "tok-alice@example.com",
			"expires_at": "2026-01-02T00:00:00Z",
			"user": {"id": 1, "email": "alice@example.com", "name": "Alice", "role": "employee", "department": "General"}
		}`, rec.Body.String())
		require.NotContains(t, rec.Body.String(), "h:pw")
	})
}
