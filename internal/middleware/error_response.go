package middleware

import (
	"encoding/json"
	"net/http"
)

// WriteUnauthorized は認可ゲートで拒否されたリクエストへの統一レスポンスを書き込む。
// ボディは {"error":"Unauthorized"} に固定する。
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "Unauthorized",
	})
}
