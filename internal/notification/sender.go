// Package notification は外部プロバイダー経由のSMS送信を抽象化する。
package notification

import (
	"context"
	"log/slog"

	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender はSMS送信のインターフェース。
// 送信はベストエフォートであり、失敗はbool値としてのみ呼び出し元に伝わる。
type Sender interface {
	// Send はtoにbodyを送信し、プロバイダーが受理した場合にtrueを返す。
	Send(ctx context.Context, to, body string) bool
}

// MessageCreator はtwilio-goのAPIサービスの部分集合。
// テストではモックに差し替える。
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// DeliveryMetrics はSMS配信結果のメトリクス記録インターフェース。
type DeliveryMetrics interface {
	RecordSMSSent()
	RecordSMSFailed()
}

// TwilioSender はTwilio経由でSMSを送信するSender実装。
// apiがnilの場合（認証情報が未設定またはプレースホルダーの場合）は
// プロバイダーに接続せず成功として扱う。開発・テスト環境向けの安全なデフォルト。
type TwilioSender struct {
	api        MessageCreator
	fromNumber string
	metrics    DeliveryMetrics
}

// NewTwilioSender はTwilioSenderを生成する。
// 認証情報が設定されていない環境ではapiにnilを渡す。
func NewTwilioSender(api MessageCreator, fromNumber string, metrics DeliveryMetrics) *TwilioSender {
	return &TwilioSender{
		api:        api,
		fromNumber: fromNumber,
		metrics:    metrics,
	}
}

// Send はSMSを送信する。
// 監査用に宛先と本文を常にログに出力する。
// プロバイダーエラーはログとメトリクスに記録し、falseを返すのみで
// 呼び出し元には伝播させない。
func (s *TwilioSender) Send(ctx context.Context, to, body string) bool {
	slog.Info("sms",
		slog.String("to", to),
		slog.String("body", body),
	)

	if s.api == nil {
		return true
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)

	// twilio-goのクライアントはcontextを受け取らないため、ctxは将来の
	// タイムアウト制御用に保持するのみ。
	if _, err := s.api.CreateMessage(params); err != nil {
		slog.Error("twilio send failed",
			slog.String("to", to),
			slog.String("error", err.Error()),
		)
		if s.metrics != nil {
			s.metrics.RecordSMSFailed()
		}
		return false
	}

	if s.metrics != nil {
		s.metrics.RecordSMSSent()
	}
	return true
}

// compile-time interface check
var _ Sender = (*TwilioSender)(nil)
