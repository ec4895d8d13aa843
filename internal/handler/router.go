package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/mediconnect/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBがそのまま満たす。
type HealthChecker interface {
	Ping() error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	StatusRecorder    middleware.StatusRecorder
	Logger            *slog.Logger

	// 監視
	HealthChecker  HealthChecker
	MetricsHandler http.Handler

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 予約
	AppointmentService AppointmentServiceInterface

	// ページ配信
	PageHandler *PageHandler
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//
// 医師専用ルートにはさらに Session → RateLimit(General) が適用される。
// 公開予約エンドポイントにはIPキーのRateLimit(Booking)のみが適用される。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.StatusRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.StatusRecorder))
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	appointmentHandler := NewAppointmentHandler(deps.AppointmentService)

	// --- 監視エンドポイント ---

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if deps.HealthChecker != nil {
			if err := deps.HealthChecker.Ping(); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- 人間向けページ ---

	if deps.PageHandler != nil {
		r.Get("/", deps.PageHandler.Home)
		r.Get("/patient", deps.PageHandler.Patient)
		r.Get("/doctor", deps.PageHandler.Doctor)
	}

	// --- 認証不要のルート ---

	// 患者の予約登録（IPキーのレート制限付き）
	r.With(deps.RateLimiter.BookingMiddleware()).Post("/api/appointments", appointmentHandler.Book)

	// 医師のセッション管理
	r.Route("/api/doctor", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})
	r.Get("/api/check_session", authHandler.CheckSession)

	// --- 医師セッションが必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/api/appointments", appointmentHandler.List)
		r.Post("/api/send_notification", appointmentHandler.Notify)
	})

	return r
}
