package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/mediconnect/internal/model"
)

// SQLiteAppointmentRepo はSQLiteを使用した予約リポジトリ。
type SQLiteAppointmentRepo struct {
	db *sql.DB
}

// NewSQLiteAppointmentRepo はSQLiteAppointmentRepoを生成する。
func NewSQLiteAppointmentRepo(db *sql.DB) *SQLiteAppointmentRepo {
	return &SQLiteAppointmentRepo{db: db}
}

// Create は予約を作成し、採番されたIDをappointment.IDに設定する。
func (r *SQLiteAppointmentRepo) Create(ctx context.Context, appointment *model.Appointment) error {
	if appointment.Status == "" {
		appointment.Status = model.StatusScheduled
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO appointments (patient_name, phone_number, email, symptoms, appointment_time, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		appointment.PatientName, appointment.PhoneNumber, appointment.Email,
		appointment.Symptoms, appointment.AppointmentTime, appointment.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get appointment ID: %w", err)
	}
	appointment.ID = id

	return nil
}

// FindByID は指定IDの予約を取得する。見つからない場合はnilを返す。
func (r *SQLiteAppointmentRepo) FindByID(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment := &model.Appointment{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, patient_name, phone_number, email, symptoms, appointment_time, status
		 FROM appointments
		 WHERE id = ?`,
		id,
	).Scan(
		&appointment.ID, &appointment.PatientName, &appointment.PhoneNumber,
		&appointment.Email, &appointment.Symptoms, &appointment.AppointmentTime,
		&appointment.Status,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}

	return appointment, nil
}

// ListByTimeAsc は全予約をappointment_timeの昇順で返す。
func (r *SQLiteAppointmentRepo) ListByTimeAsc(ctx context.Context) ([]model.Appointment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, patient_name, phone_number, email, symptoms, appointment_time, status
		 FROM appointments
		 ORDER BY appointment_time ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	appointments := []model.Appointment{}
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.PatientName, &a.PhoneNumber, &a.Email,
			&a.Symptoms, &a.AppointmentTime, &a.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}

	return appointments, nil
}

// compile-time interface check
var _ AppointmentRepository = (*SQLiteAppointmentRepo)(nil)
