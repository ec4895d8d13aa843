package model

import "time"

// MessageKind は送信メッセージの種別を表す。
type MessageKind string

const (
	// MessageKindConfirmation は予約確認SMSを示す。
	MessageKindConfirmation MessageKind = "confirmation"
	// MessageKindDoctorMessage は医師から患者への個別メッセージを示す。
	MessageKindDoctorMessage MessageKind = "doctor_message"
)

// Message は送信したSMSの配信記録を表す。
// 送信はベストエフォートであり予約処理の成否には影響しないが、
// 配信結果はレコードとして独立に観測できるようにする。
type Message struct {
	ID            string
	AppointmentID *int64
	ToNumber      string
	Body          string
	Kind          MessageKind
	Delivered     bool
	CreatedAt     time.Time
}
