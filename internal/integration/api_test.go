package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"thinkabout/internal/app"
	"thinkabout/internal/config"
	"thinkabout/internal/database"
	"thinkabout/internal/database/migration"
	dbpostgres "thinkabout/internal/database/postgres"
	"thinkabout/internal/infrastructure/cache"
	"thinkabout/internal/repository"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func TestIntegration_QuestionLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)
	if err := migration.VerifySchema(ctx, db); err != nil {
		t.Fatalf("verify schema: %v", err)
	}

	fapp := newTestFiberApp(t, db)

	suffix := uuid.NewString()[:8]
	ownerEmail := "owner-" + suffix + "@example.com"
	answererEmail := "answerer-" + suffix + "@example.com"
	defer cleanupUsers(t, db, ownerEmail, answererEmail)

	owner := registerUser(t, fapp, ownerEmail, "male")
	answerer := registerUser(t, fapp, answererEmail, "female")

	status, raw := doJSON(t, fapp, "POST", "/question/create", owner, map[string]any{
		"question": "Mountains or sea?",
		"choices":  []string{"mountains", "sea"},
	})
	if status != fiber.StatusOK {
		t.Fatalf("create question: got %d (%s)", status, raw)
	}
	var q struct {
		ID      int64    `json:"id"`
		Choices []string `json:"choices"`
	}
	mustDecode(t, raw, &q)
	if len(q.Choices) != 2 || q.Choices[0] != "mountains" {
		t.Fatalf("choices not preserved in order: %v", q.Choices)
	}

	answerPath := fmt.Sprintf("/answer/create/%d", q.ID)
	for i, want := range []float64{100, 50, 66.67} {
		answer := "sea"
		if i == 1 {
			answer = "mountains"
		}
		status, raw := doJSON(t, fapp, "POST", answerPath, answerer, map[string]string{"answer": answer})
		if status != fiber.StatusOK {
			t.Fatalf("answer %d: got %d (%s)", i, status, raw)
		}
		var pct float64
		mustDecode(t, raw, &pct)
		if pct != want {
			t.Fatalf("answer %d: expected %v, got %v", i, want, pct)
		}
	}

	total, matching, err := repository.NewPostgresAnswerRepository(db).Count(ctx, q.ID, "sea")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 3 || matching != 2 {
		t.Fatalf("expected 3 total / 2 matching, got %d / %d", total, matching)
	}

	if status, raw := doJSON(t, fapp, "POST", "/package/buy/premium", owner, nil); status != fiber.StatusOK {
		t.Fatalf("buy premium: got %d (%s)", status, raw)
	}
	status, raw = doJSON(t, fapp, "GET", fmt.Sprintf("/question/info/%d", q.ID), owner, nil)
	if status != fiber.StatusOK {
		t.Fatalf("info: got %d (%s)", status, raw)
	}
	var info struct {
		Answers []struct {
			Answer string `json:"answer"`
			User   *struct {
				Gender string `json:"gender"`
			} `json:"user"`
		} `json:"answers"`
	}
	mustDecode(t, raw, &info)
	if len(info.Answers) != 3 || info.Answers[0].User == nil || info.Answers[0].User.Gender != "female" {
		t.Fatalf("premium info missing demographics: %s", raw)
	}

	status, raw = doJSON(t, fapp, "DELETE", fmt.Sprintf("/question/delete/%d", q.ID), owner, nil)
	if status != fiber.StatusOK {
		t.Fatalf("delete: got %d (%s)", status, raw)
	}

	var left int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM answers WHERE question_id = $1`, q.ID).Scan(&left); err != nil {
		t.Fatalf("count remaining answers: %v", err)
	}
	if left != 0 {
		t.Fatalf("expected answers to cascade on delete, %d left", left)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := os.Getenv("THINKABOUT_TEST_DB_HOST")
	port := os.Getenv("THINKABOUT_TEST_DB_PORT")
	name := os.Getenv("THINKABOUT_TEST_DB_NAME")
	user := os.Getenv("THINKABOUT_TEST_DB_USER")
	pass := os.Getenv("THINKABOUT_TEST_DB_PASSWORD")
	ssl := stringsOrDefault(os.Getenv("THINKABOUT_TEST_DB_SSL_MODE"), "disable")

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set THINKABOUT_TEST_DB_HOST/PORT/NAME/USER/PASSWORD")
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.Runner{Dir: resolveMigrationsDir(t)}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	migDir := filepath.Clean(filepath.Join(filepath.Dir(file), "..", "..", "migrations"))
	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	return migDir
}

func newTestFiberApp(t *testing.T, db database.DB) *fiber.App {
	t.Helper()

	logger := log.New(io.Discard, "", 0)
	cfg := config.Config{
		App:   config.AppConfig{AppName: "thinkabout-test"},
		JWT:   config.JWTConfig{Secret: stringsOrDefault(os.Getenv("THINKABOUT_TEST_JWT_SECRET"), "test-secret"), ExpiresIn: time.Hour},
		Login: config.LoginConfig{MaxAttempts: 5, AttemptWindow: time.Minute},
	}
	c := &app.Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  cache.NewRedis(config.RedisConfig{Addr: os.Getenv("THINKABOUT_TEST_REDIS_ADDR")}, logger),
	}
	return app.New(cfg, c.RouteDeps()).Fiber
}

func registerUser(t *testing.T, fapp *fiber.App, email, gender string) string {
	t.Helper()

	status, raw := doJSON(t, fapp, "POST", "/auth/register", "", map[string]string{
		"name":            "Integration",
		"email":           email,
		"password":        "password1",
		"confirmPassword": "password1",
		"gender":          gender,
		"dateOfBirth":     "1990-05-06",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("register %s: got %d (%s)", email, status, raw)
	}
	var out struct {
		Token string `json:"token"`
	}
	mustDecode(t, raw, &out)
	return out.Token
}

func doJSON(t *testing.T, fapp *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := fapp.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("%s %s: request error: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("%s %s: read body: %v", method, path, err)
	}
	return resp.StatusCode, raw
}

func mustDecode(t *testing.T, raw []byte, out any) {
	t.Helper()
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
}

func cleanupUsers(t *testing.T, db database.DB, emails ...string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, e := range emails {
		_, _ = db.Exec(ctx, `DELETE FROM users WHERE email = $1`, e)
	}
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
