package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"testing"

	"thinkabout/internal/domain/question"
	"thinkabout/internal/domain/user"
	"thinkabout/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type fakeAuth struct {
	calls int
	usr   user.User
	err   error
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (user.User, error) {
	f.calls++
	if f.err != nil {
		return user.User{}, f.err
	}
	return f.usr, nil
}

// authOnly adapts fakeAuth to the subset AuthMiddleware calls.
type authOnly struct {
	usecase.AuthUsecase
	f *fakeAuth
}

func (a authOnly) Authenticate(ctx context.Context, token string) (user.User, error) {
	return a.f.Authenticate(ctx, token)
}

type fakeQuestions struct {
	usecase.QuestionUsecase
	q   question.Question
	err error
}

func (f fakeQuestions) Authorize(_ context.Context, userID, id int64) (question.Question, error) {
	if f.err != nil {
		return question.Question{}, f.err
	}
	if f.q.ID != id {
		return question.Question{}, usecase.ErrQuestionNotFound
	}
	if !f.q.OwnedBy(userID) {
		return question.Question{}, usecase.ErrForbidden
	}
	return f.q, nil
}

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{})
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	return app
}

func decodeMessage(t *testing.T, body io.Reader) string {
	t.Helper()
	var out struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out.Message
}

func TestAuthMiddleware_MissingHeaderSkipsLookup(t *testing.T) {
	f := &fakeAuth{usr: user.User{ID: 1}}
	app := newTestApp()
	app.Get("/p", NewAuthMiddleware(authOnly{f: f}).Middleware(), func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer   "} {
		req := httptest.NewRequest("GET", "/p", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request error: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, resp.StatusCode)
		}
		if msg := decodeMessage(t, resp.Body); msg != "Unauthorized" {
			t.Fatalf("header %q: expected Unauthorized, got %q", header, msg)
		}
		resp.Body.Close()
	}
	if f.calls != 0 {
		t.Fatalf("expected no lookups, got %d", f.calls)
	}
}

func TestAuthMiddleware_StoresUser(t *testing.T) {
	f := &fakeAuth{usr: user.User{ID: 42, Name: "Ann"}}
	app := newTestApp()
	app.Get("/p", NewAuthMiddleware(authOnly{f: f}).Middleware(), func(c fiber.Ctx) error {
		usr, ok := CurrentUser(c)
		if !ok || usr.ID != 42 {
			return errors.New("user not stored")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Authorization", "bearer tok")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	f := &fakeAuth{err: usecase.ErrUnauthorized}
	app := newTestApp()
	app.Get("/p", NewAuthMiddleware(authOnly{f: f}).Middleware(), func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Authorization", "Bearer expired")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestOwnerMiddleware(t *testing.T) {
	f := &fakeAuth{usr: user.User{ID: 7}}
	owner := NewOwnerMiddleware(fakeQuestions{q: question.Question{ID: 3, UserID: 7}})
	other := NewOwnerMiddleware(fakeQuestions{q: question.Question{ID: 3, UserID: 8}})
	broken := NewOwnerMiddleware(fakeQuestions{err: errors.New("db down")})

	app := newTestApp()
	ok := func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }
	authMw := NewAuthMiddleware(authOnly{f: f}).Middleware()
	app.Get("/own/:id", authMw, owner.Middleware(), ok)
	app.Get("/other/:id", authMw, other.Middleware(), ok)
	app.Get("/broken/:id", authMw, broken.Middleware(), ok)

	cases := []struct {
		path   string
		status int
		msg    string
	}{
		{"/own/3", fiber.StatusNoContent, ""},
		{"/own/abc", fiber.StatusBadRequest, "Invalid data"},
		{"/own/0", fiber.StatusBadRequest, "Invalid data"},
		{"/own/4", fiber.StatusNotFound, "Question not found"},
		{"/other/3", fiber.StatusForbidden, "Forbidden"},
		{"/broken/3", fiber.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", tc.path, nil)
		req.Header.Set("Authorization", "Bearer tok")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request error: %v", tc.path, err)
		}
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.status, resp.StatusCode)
		}
		if tc.msg != "" {
			if msg := decodeMessage(t, resp.Body); msg != tc.msg {
				t.Fatalf("%s: expected %q, got %q", tc.path, tc.msg, msg)
			}
		}
		resp.Body.Close()
	}
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	app := newTestApp()
	app.Get("/boom", func(c fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if msg := decodeMessage(t, resp.Body); msg != "Internal Server Error" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestErrorMiddleware_HidesInternalCause(t *testing.T) {
	app := newTestApp()
	app.Get("/fail", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "pq: secret detail", nil, errors.New("secret"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if msg := decodeMessage(t, resp.Body); msg != "Internal Server Error" {
		t.Fatalf("cause leaked: %q", msg)
	}
}
