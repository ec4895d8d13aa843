// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/mediconnect/internal/model"
)

// AppointmentRepository は予約データの永続化インターフェース。
type AppointmentRepository interface {
	// Create は予約を作成し、採番されたIDをappointment.IDに設定する。
	// Statusが空の場合はStatusScheduledを設定する。
	Create(ctx context.Context, appointment *model.Appointment) error

	// FindByID は指定IDの予約を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Appointment, error)

	// ListByTimeAsc は全予約をappointment_timeの昇順で返す。
	ListByTimeAsc(ctx context.Context) ([]model.Appointment, error)
}

// DoctorRepository は医師データの永続化インターフェース。
type DoctorRepository interface {
	// Create は医師を作成し、採番されたシリアル番号をdoctor.IDに設定する。
	// doctor_idが既に存在する場合はmodel.ErrDuplicateDoctorIDを返す。
	Create(ctx context.Context, doctor *model.Doctor) error

	// FindByDoctorID はログイン識別子で医師を検索する。見つからない場合はnilを返す。
	FindByDoctorID(ctx context.Context, doctorID string) (*model.Doctor, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。存在しない場合もエラーにしない。
	DeleteByID(ctx context.Context, id string) error
}

// MessageRepository はSMS配信記録の永続化インターフェース。
type MessageRepository interface {
	// Create は配信記録を作成する。
	Create(ctx context.Context, message *model.Message) error

	// ListByAppointmentID は指定予約に紐づく配信記録を作成時刻の昇順で返す。
	ListByAppointmentID(ctx context.Context, appointmentID int64) ([]model.Message, error)
}
