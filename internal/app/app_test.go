package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "mediconnect_test.db"))
	t.Setenv("TWILIO_SID", "")
	t.Setenv("TWILIO_AUTH_TOKEN", "")
	t.Setenv("TWILIO_PHONE_NUMBER", "")
}

func TestInit_WithValidConfig_Succeeds(t *testing.T) {
	setTestEnv(t)

	var buf bytes.Buffer
	cfg, err := Init(&buf)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.TwilioConfigured() {
		t.Error("TwilioConfigured() = true, want false for empty credentials")
	}

	// グローバルロガーがJSON出力になっていることを確認
	slog.Default().Info("init test")
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log output, got error: %v\nraw: %s", err, buf.String())
	}
	if entry["msg"] != "init test" {
		t.Errorf("msg = %q, want %q", entry["msg"], "init test")
	}
}

func TestInit_WithIncompleteTwilioConfig_ReturnsError(t *testing.T) {
	setTestEnv(t)
	// 実値のSIDに対してトークンと送信元番号がない
	t.Setenv("TWILIO_SID", "AC1234567890abcdef")

	var buf bytes.Buffer
	cfg, err := Init(&buf)
	if err == nil {
		t.Fatal("expected error for incomplete twilio config, got nil")
	}
	if cfg != nil {
		t.Error("expected nil config on error")
	}
}

// TestRun_MigrateCommand_CreatesStore はmigrateコマンドがストアファイルと
// テーブルを作成して正常終了することを検証する。
func TestRun_MigrateCommand_CreatesStore(t *testing.T) {
	setTestEnv(t)

	var buf bytes.Buffer
	if err := Run(&buf, []string{"migrate"}); err != nil {
		t.Fatalf("Run(migrate) failed: %v", err)
	}

	// 再実行しても冪等
	if err := Run(&buf, []string{"migrate"}); err != nil {
		t.Fatalf("Run(migrate) second call failed: %v", err)
	}
}

func TestRunHealthcheck_AgainstHealthyServer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	_, port, err := net.SplitHostPort(ts.Listener.Addr().String())
	if err != nil {
		t.Fatalf("failed to parse test server addr: %v", err)
	}

	if err := runHealthcheck(port); err != nil {
		t.Errorf("runHealthcheck(%s) failed: %v", port, err)
	}
}

func TestRunHealthcheck_AgainstUnhealthyServer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, port, err := net.SplitHostPort(ts.Listener.Addr().String())
	if err != nil {
		t.Fatalf("failed to parse test server addr: %v", err)
	}

	if err := runHealthcheck(port); err == nil {
		t.Error("runHealthcheck should fail for non-200 response")
	}
}

func TestRunHealthcheck_NoServer_ReturnsError(t *testing.T) {
	// 未使用ポートを確保してすぐ閉じる
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	_, port, _ := net.SplitHostPort(l.Addr().String())
	l.Close()

	if err := runHealthcheck(port); err == nil {
		t.Error("runHealthcheck should fail when no server is listening")
	}
}
