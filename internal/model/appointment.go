// Package model はドメインモデルを定義する。
package model

// Appointment は患者の予約レコードを表す。
// appointment_timeは"2024-05-01T10:00"形式のフリーテキストで、
// 時刻の妥当性検証は行わない。
type Appointment struct {
	ID              int64
	PatientName     string
	PhoneNumber     string
	Email           string
	Symptoms        string
	AppointmentTime string
	Status          string
}

// StatusScheduled は予約作成時に設定される初期ステータス。
// 現行の業務フローではステータス遷移の操作は存在しない。
const StatusScheduled = "Scheduled"
