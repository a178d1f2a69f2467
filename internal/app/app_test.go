package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"slides/internal/config"
)

func testConfig(t *testing.T, store string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.CredentialsDir = t.TempDir()
	cfg.CredentialsFile = filepath.Join(cfg.CredentialsDir, "credentials.json")
	cfg.TokenStore = store
	return cfg
}

func discard() *slog.Logger { return NewLogger(io.Discard, slog.LevelError) }

const credentials = `{"type":"authorized_user","client_id":"cid","client_secret":"sec","refresh_token":"rt","token":"at"}`

func TestOpenTokens_Memory(t *testing.T) {
	tokens, err := OpenTokens(testConfig(t, config.StoreMemory), discard())
	if err != nil {
		t.Fatalf("OpenTokens: %v", err)
	}
	defer tokens.Close()

	st, err := tokens.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Stored {
		t.Fatal("expected no stored credential")
	}

	if _, err := tokens.Import([]byte(credentials)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	st, _ = tokens.Status()
	if !st.Stored || !st.HasRefreshToken {
		t.Fatalf("status after import = %+v", st)
	}
	if !st.UpdatedAt.IsZero() {
		t.Error("memory store has no write times")
	}
}

func TestOpenTokens_SQLitePersists(t *testing.T) {
	cfg := testConfig(t, config.StoreSQLite)

	tokens, err := OpenTokens(cfg, discard())
	if err != nil {
		t.Fatalf("OpenTokens: %v", err)
	}
	if _, err := tokens.Import([]byte(credentials)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	tokens.Close()

	reopened, err := OpenTokens(cfg, discard())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	st, _ := reopened.Status()
	if !st.Stored {
		t.Fatal("credential did not survive reopen")
	}
	if st.UpdatedAt.IsZero() {
		t.Error("sqlite store should report the import time")
	}
}

func TestRouter(t *testing.T) {
	a, err := New(testConfig(t, config.StoreMemory), discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	srv := httptest.NewServer(a.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}

	missing, err := http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unknown route status = %d", missing.StatusCode)
	}
}
