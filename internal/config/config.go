package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// placeholderSID は未設定のTwilioアカウントを示すプレースホルダー値。
// .envのサンプル値がそのまま残っている環境ではSMS送信をno-opにする。
const placeholderSID = "YOUR_SID"

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabasePath string

	// Twilio
	TwilioSID         string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	// Session
	SessionMaxAge int

	// Rate Limit（req/min単位）
	RateLimitGeneral int
	RateLimitBooking int

	// Server
	ServerPort string

	// Cookie
	CookieSecure bool

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// Twilioの環境変数は任意で、未設定またはプレースホルダー値の場合は
// SMS送信がno-opになる。実値のSIDが設定されている場合のみ
// トークンと送信元番号を必須とする。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabasePath = getEnvString("DATABASE_PATH", "mediconnect.db")

	cfg.TwilioSID = os.Getenv("TWILIO_SID")
	cfg.TwilioAuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	cfg.TwilioPhoneNumber = os.Getenv("TWILIO_PHONE_NUMBER")

	if cfg.TwilioConfigured() {
		var missing []string
		if cfg.TwilioAuthToken == "" {
			missing = append(missing, "TWILIO_AUTH_TOKEN")
		}
		if cfg.TwilioPhoneNumber == "" {
			missing = append(missing, "TWILIO_PHONE_NUMBER")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("TWILIO_SID is set but required environment variables are not: %v", missing)
		}
	}

	cfg.SessionMaxAge = getEnvInt("SESSION_MAX_AGE", 86400)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitBooking = getEnvInt("RATE_LIMIT_BOOKING", 10)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", false)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

// TwilioConfigured は実際のTwilioアカウントが設定されているかを返す。
// 未設定またはプレースホルダー値の場合はfalse。
func (c *Config) TwilioConfigured() bool {
	return c.TwilioSID != "" && !strings.Contains(c.TwilioSID, placeholderSID)
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
