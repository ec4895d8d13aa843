package model

import "errors"

// ドメイン層の番兵エラー。サービスはこれらを返し、
// ハンドラーがerrors.IsでHTTPステータスに変換する。
var (
	// ErrDuplicateDoctorID はdoctor_idが既に登録済みの場合に返す。
	// ストアのUNIQUE制約違反をリポジトリ層で明示的な結果に変換する。
	ErrDuplicateDoctorID = errors.New("doctor ID already exists")

	// ErrInvalidCredentials はログイン失敗時に返す。
	// 未知のIDとパスワード不一致を区別しない（ユーザー列挙の防止）。
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAppointmentNotFound は指定IDの予約が存在しない場合に返す。
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrUnauthorized は医師セッションなしで保護された操作を呼んだ場合に返す。
	ErrUnauthorized = errors.New("unauthorized")
)
