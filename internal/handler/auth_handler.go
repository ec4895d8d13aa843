// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/mediconnect/internal/middleware"
	"github.com/hitoshi/mediconnect/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Signup(ctx context.Context, doctorID, password, name, specialty string) (int64, error)
	Login(ctx context.Context, doctorID, password string) (*model.Session, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentSession(ctx context.Context, sessionID string) (*model.Session, error)
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// AuthHandler は医師認証関連のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	config  AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
	}
}

// signupRequest は医師登録リクエストのボディ。
type signupRequest struct {
	DoctorID  string `json:"doctor_id"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// loginRequest は医師ログインリクエストのボディ。
type loginRequest struct {
	DoctorID string `json:"doctor_id"`
	Password string `json:"password"`
}

// Signup は医師登録を処理する。
// POST /api/doctor/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	if req.DoctorID == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "doctor_id and password are required",
		})
		return
	}

	serial, err := h.service.Signup(r.Context(), req.DoctorID, req.Password, req.Name, req.Specialty)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateDoctorID) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"error":   "User ID already exists",
			})
			return
		}
		slog.Error("failed to sign up doctor", slog.String("error", err.Error()))
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"serial_number": serial,
	})
}

// Login は資格情報を検証し、セッションCookieを設定する。
// POST /api/doctor/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	session, err := h.service.Login(r.Context(), req.DoctorID, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
			})
			return
		}
		slog.Error("failed to login", slog.String("error", err.Error()))
		writeInternalError(w)
		return
	}

	// セッションCookieを設定（HTTP Only）
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"name":    session.DoctorName,
	})
}

// Logout はセッションを破棄しCookieをクリアする。
// セッションが存在しなくても常に成功を返す。
// POST /api/doctor/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if logoutErr := h.service.Logout(r.Context(), cookie.Value); logoutErr != nil {
			slog.Error("failed to logout", slog.String("error", logoutErr.Error()))
			// ログアウト失敗してもCookieはクリアする
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
	})
}

// CheckSession は現在のセッション状態を返す。
// GET /api/check_session
func (h *AuthHandler) CheckSession(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"logged_in": false,
		})
		return
	}

	session, err := h.service.CurrentSession(r.Context(), cookie.Value)
	if err != nil {
		slog.Error("failed to check session", slog.String("error", err.Error()))
		writeInternalError(w)
		return
	}
	if session == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"logged_in": false,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"logged_in": true,
		"name":      session.DoctorName,
	})
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeInternalError は500の統一レスポンスを書き込む。
func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}
