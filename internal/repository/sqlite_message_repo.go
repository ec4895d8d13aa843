package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/mediconnect/internal/model"
)

// SQLiteMessageRepo はSQLiteを使用したSMS配信記録リポジトリ。
type SQLiteMessageRepo struct {
	db *sql.DB
}

// NewSQLiteMessageRepo はSQLiteMessageRepoを生成する。
func NewSQLiteMessageRepo(db *sql.DB) *SQLiteMessageRepo {
	return &SQLiteMessageRepo{db: db}
}

// Create は配信記録を作成する。
func (r *SQLiteMessageRepo) Create(ctx context.Context, message *model.Message) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (id, appointment_id, to_number, body, kind, delivered, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		message.ID, message.AppointmentID, message.ToNumber, message.Body,
		string(message.Kind), message.Delivered, message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message record: %w", err)
	}
	return nil
}

// ListByAppointmentID は指定予約に紐づく配信記録を作成時刻の昇順で返す。
func (r *SQLiteMessageRepo) ListByAppointmentID(ctx context.Context, appointmentID int64) ([]model.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, appointment_id, to_number, body, kind, delivered, created_at
		 FROM messages
		 WHERE appointment_id = ?
		 ORDER BY created_at ASC`,
		appointmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var m model.Message
		var appointmentID sql.NullInt64
		var kind string
		if err := rows.Scan(
			&m.ID, &appointmentID, &m.ToNumber, &m.Body,
			&kind, &m.Delivered, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		if appointmentID.Valid {
			m.AppointmentID = &appointmentID.Int64
		}
		m.Kind = model.MessageKind(kind)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}

// compile-time interface check
var _ MessageRepository = (*SQLiteMessageRepo)(nil)
