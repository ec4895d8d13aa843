// Package auth は医師のサインアップ、ログイン、セッション管理を提供する。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/mediconnect/internal/model"
	"github.com/hitoshi/mediconnect/internal/repository"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionMaxAge int // セッション有効期間（秒）
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	doctorRepo  repository.DoctorRepository
	sessionRepo repository.SessionRepository
	config      ServiceConfig
}

// NewService はServiceを生成する。
func NewService(
	doctorRepo repository.DoctorRepository,
	sessionRepo repository.SessionRepository,
	config ServiceConfig,
) *Service {
	return &Service{
		doctorRepo:  doctorRepo,
		sessionRepo: sessionRepo,
		config:      config,
	}
}

// Signup は医師を登録し、ストアが採番したシリアル番号を返す。
// パスワードはbcryptでハッシュ化してから保存し、平文は保持しない。
// doctor_idが既に存在する場合はmodel.ErrDuplicateDoctorIDを返す。
func (s *Service) Signup(ctx context.Context, doctorID, password, name, specialty string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	doctor := &model.Doctor{
		DoctorID:     doctorID,
		PasswordHash: string(hash),
		Name:         name,
		Specialty:    specialty,
	}

	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		if errors.Is(err, model.ErrDuplicateDoctorID) {
			return 0, model.ErrDuplicateDoctorID
		}
		return 0, fmt.Errorf("failed to create doctor: %w", err)
	}

	slog.Info("doctor signed up",
		slog.String("doctor_id", doctorID),
		slog.Int64("serial_number", doctor.ID),
	)

	return doctor.ID, nil
}

// Login は資格情報を検証し、成功時にサーバーサイドセッションを発行する。
// 未知のdoctor_idとパスワード不一致はどちらもmodel.ErrInvalidCredentialsを
// 返し、どちらの検証に失敗したかは区別しない（ユーザー列挙の防止）。
func (s *Service) Login(ctx context.Context, doctorID, password string) (*model.Session, error) {
	doctor, err := s.doctorRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find doctor: %w", err)
	}
	if doctor == nil {
		return nil, model.ErrInvalidCredentials
	}

	// bcryptの比較は内部でタイミング安全
	if err := bcrypt.CompareHashAndPassword([]byte(doctor.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, doctor)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("doctor logged in",
		slog.String("doctor_id", doctorID),
	)

	return session, nil
}

// Logout はセッションを破棄する。
// セッションが存在しない場合でも成功として扱う。
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("doctor logged out", slog.String("session_id", sessionID))
	return nil
}

// CurrentSession はセッションIDから有効なセッションを取得する。
// セッションが存在しない、または期限切れの場合はnilを返す。
func (s *Service) CurrentSession(ctx context.Context, sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return session, nil
}

// createSession はセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, doctor *model.Doctor) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := &model.Session{
		ID:         sessionID,
		DoctorID:   doctor.DoctorID,
		DoctorName: doctor.Name,
		ExpiresAt:  time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt:  time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
