// Package appointment は予約の作成、一覧、患者への通知のドメインロジックを提供する。
package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/mediconnect/internal/model"
	"github.com/hitoshi/mediconnect/internal/notification"
	"github.com/hitoshi/mediconnect/internal/repository"
)

// BookingMetrics は予約関連のメトリクス記録インターフェース。
type BookingMetrics interface {
	RecordBooking()
}

// BookingRequest は患者からの予約リクエストを表す。
// 必須項目の検証はハンドラー層（境界）で行い、サービスは検証済みの値を受け取る。
type BookingRequest struct {
	PatientName     string
	PhoneNumber     string
	Email           string
	Symptoms        string
	AppointmentTime string
}

// Service は予約管理のサービス層。
type Service struct {
	appointmentRepo repository.AppointmentRepository
	messageRepo     repository.MessageRepository
	sender          notification.Sender
	metrics         BookingMetrics
}

// NewService はServiceを生成する。
func NewService(
	appointmentRepo repository.AppointmentRepository,
	messageRepo repository.MessageRepository,
	sender notification.Sender,
	metrics BookingMetrics,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		messageRepo:     messageRepo,
		sender:          sender,
		metrics:         metrics,
	}
}

// Book は予約を永続化し、確認SMSを患者に送信する。
// SMSは永続化後の独立したステップであり、送信の成否は予約の成否に影響しない。
// 配信結果はmessagesテーブルに記録され、後から観測できる。
func (s *Service) Book(ctx context.Context, req BookingRequest) (*model.Appointment, error) {
	appointment := &model.Appointment{
		PatientName:     req.PatientName,
		PhoneNumber:     req.PhoneNumber,
		Email:           req.Email,
		Symptoms:        req.Symptoms,
		AppointmentTime: req.AppointmentTime,
		Status:          model.StatusScheduled,
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordBooking()
	}

	slog.Info("appointment booked",
		slog.Int64("appointment_id", appointment.ID),
		slog.String("appointment_time", appointment.AppointmentTime),
	)

	body := confirmationMessage(req.PatientName, req.AppointmentTime)
	delivered := s.sender.Send(ctx, req.PhoneNumber, body)
	s.recordMessage(ctx, &appointment.ID, req.PhoneNumber, body, model.MessageKindConfirmation, delivered)

	return appointment, nil
}

// List は全予約をappointment_timeの昇順で返す。
// 有効な医師トークンがない場合はmodel.ErrUnauthorizedを返す。
func (s *Service) List(ctx context.Context, doctor model.DoctorToken) ([]model.Appointment, error) {
	if !doctor.Valid() {
		return nil, model.ErrUnauthorized
	}

	appointments, err := s.appointmentRepo.ListByTimeAsc(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	return appointments, nil
}

// Notify は指定予約の患者に医師からの個別メッセージを送信する。
// メッセージには医師のセッション上の表示名がプレフィックスとして付く。
// 予約が存在しない場合はmodel.ErrAppointmentNotFoundを返す。
// SMSの成否はベストエフォートで、送信失敗でもNotify自体は成功する。
func (s *Service) Notify(ctx context.Context, doctor model.DoctorToken, appointmentID int64, message string) error {
	if !doctor.Valid() {
		return model.ErrUnauthorized
	}

	appointment, err := s.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("failed to find appointment: %w", err)
	}
	if appointment == nil {
		return model.ErrAppointmentNotFound
	}

	body := fmt.Sprintf("Dr. %s says: %s", doctor.Name, message)
	delivered := s.sender.Send(ctx, appointment.PhoneNumber, body)
	s.recordMessage(ctx, &appointment.ID, appointment.PhoneNumber, body, model.MessageKindDoctorMessage, delivered)

	return nil
}

// recordMessage は配信記録を保存する。
// 記録の失敗はログに残すのみで呼び出し元には伝播させない。
func (s *Service) recordMessage(ctx context.Context, appointmentID *int64, to, body string, kind model.MessageKind, delivered bool) {
	if s.messageRepo == nil {
		return
	}

	record := &model.Message{
		ID:            uuid.New().String(),
		AppointmentID: appointmentID,
		ToNumber:      to,
		Body:          body,
		Kind:          kind,
		Delivered:     delivered,
		CreatedAt:     time.Now(),
	}
	if err := s.messageRepo.Create(ctx, record); err != nil {
		slog.Error("failed to record message delivery",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
	}
}

// confirmationMessage は予約確認SMSの本文を生成する。
// "2024-05-01T10:00"形式の時刻は"2024-05-01 at 10:00"に整形する。
func confirmationMessage(patientName, appointmentTime string) string {
	formatted := strings.Replace(appointmentTime, "T", " at ", 1)
	return fmt.Sprintf(
		"Hello %s, your appointment with MediConnect is confirmed for %s. We look forward to seeing you.",
		patientName, formatted,
	)
}
