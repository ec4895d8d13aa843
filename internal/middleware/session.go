// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hitoshi/mediconnect/internal/model"
)

// SessionCookieName はセッションIDを保持するHTTP Only Cookieの名前。
const SessionCookieName = "session_id"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// doctorContextKey はリクエストコンテキストに認証済み医師トークンを格納するためのキー。
var doctorContextKey = contextKey("doctor")

// SessionFinder はセッションの検索に必要なインターフェース。
// repository.SessionRepositoryの部分集合として定義する。
type SessionFinder interface {
	FindByID(ctx context.Context, id string) (*model.Session, error)
}

// NewSessionMiddleware はHTTP Only Cookieからセッションを読み取り、
// 有効性を検証するミドルウェアを返す。
// 認証済み医師トークンをリクエストコンテキストに注入する。
// 未認証リクエストには401と {"error":"Unauthorized"} を返す。
func NewSessionMiddleware(sessionFinder SessionFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				WriteUnauthorized(w)
				return
			}

			session, err := sessionFinder.FindByID(r.Context(), cookie.Value)
			if err != nil {
				slog.Error("failed to find session",
					slog.String("error", err.Error()),
				)
				WriteUnauthorized(w)
				return
			}
			if session == nil {
				WriteUnauthorized(w)
				return
			}

			ctx := ContextWithDoctor(r.Context(), session.Token())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DoctorFromContext はリクエストコンテキストから認証済み医師トークンを取得する。
// セッションミドルウェアを通過したリクエストでのみ有効。
func DoctorFromContext(ctx context.Context) (model.DoctorToken, error) {
	doctor, ok := ctx.Value(doctorContextKey).(model.DoctorToken)
	if !ok || !doctor.Valid() {
		return model.DoctorToken{}, fmt.Errorf("doctor token not found in context")
	}
	return doctor, nil
}

// ContextWithDoctor はコンテキストに医師トークンを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithDoctor(ctx context.Context, doctor model.DoctorToken) context.Context {
	return context.WithValue(ctx, doctorContextKey, doctor)
}
