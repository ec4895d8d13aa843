package model

import "time"

// Session は医師のログインセッションを表す。
// サーバーサイドでdoctor_idと表示名のみを保持する。
type Session struct {
	ID         string
	DoctorID   string
	DoctorName string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// Token はセッションからリクエストスコープの医師トークンを生成する。
func (s *Session) Token() DoctorToken {
	return DoctorToken{
		DoctorID: s.DoctorID,
		Name:     s.DoctorName,
	}
}
