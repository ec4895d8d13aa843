package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open はSQLiteデータベース接続を開く。
// pathはデータベースファイルのパスを指定する（例: "mediconnect.db"）。
// テストでは":memory:"を指定できる。
// sql.Openはファイルを開かないため、実際の確認にはdb.Ping()を使用すること。
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}
