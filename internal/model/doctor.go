package model

// Doctor は認証済みアクターとして予約の閲覧と通知送信を行う医師を表す。
// DoctorIDはログイン識別子で、ストアのUNIQUE制約により一意性が保証される。
// 平文パスワードは保持せず、PasswordHashのみを保存する。
type Doctor struct {
	ID           int64
	DoctorID     string
	PasswordHash string
	Name         string
	Specialty    string
}

// DoctorToken はリクエストスコープの認証済み医師情報を表す。
// セッションミドルウェアがコンテキストに注入し、ハンドラーが
// サービス呼び出しに明示的に渡す。グローバルなセッション状態は持たない。
type DoctorToken struct {
	DoctorID string
	Name     string
}

// Valid は認証済みトークンかどうかを返す。
// DoctorIDの存在が医師専用操作の唯一の認可ゲートとなる。
func (t DoctorToken) Valid() bool {
	return t.DoctorID != ""
}
