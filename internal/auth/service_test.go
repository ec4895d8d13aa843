package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/mediconnect/internal/model"
	"github.com/hitoshi/mediconnect/internal/repository"
)

// --- モック定義 ---

type mockDoctorRepo struct {
	createFn         func(ctx context.Context, doctor *model.Doctor) error
	findByDoctorIDFn func(ctx context.Context, doctorID string) (*model.Doctor, error)
}

func (m *mockDoctorRepo) Create(ctx context.Context, doctor *model.Doctor) error {
	if m.createFn != nil {
		return m.createFn(ctx, doctor)
	}
	return nil
}

func (m *mockDoctorRepo) FindByDoctorID(ctx context.Context, doctorID string) (*model.Doctor, error) {
	if m.findByDoctorIDFn != nil {
		return m.findByDoctorIDFn(ctx, doctorID)
	}
	return nil, nil
}

type mockSessionRepo struct {
	createFn     func(ctx context.Context, session *model.Session) error
	findByIDFn   func(ctx context.Context, id string) (*model.Session, error)
	deleteByIDFn func(ctx context.Context, id string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

// --- compile-time interface checks ---
var _ repository.DoctorRepository = (*mockDoctorRepo)(nil)
var _ repository.SessionRepository = (*mockSessionRepo)(nil)

func newTestService(doctorRepo *mockDoctorRepo, sessionRepo *mockSessionRepo) *Service {
	return NewService(doctorRepo, sessionRepo, ServiceConfig{SessionMaxAge: 86400})
}

// --- テスト ---

func TestSignup_HashesPasswordAndReturnsSerialNumber(t *testing.T) {
	ctx := context.Background()

	var created *model.Doctor
	doctorRepo := &mockDoctorRepo{
		createFn: func(ctx context.Context, doctor *model.Doctor) error {
			created = doctor
			doctor.ID = 1
			return nil
		},
	}
	svc := newTestService(doctorRepo, &mockSessionRepo{})

	serial, err := svc.Signup(ctx, "doc1", "pw", "Ann", "Cardio")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if serial != 1 {
		t.Errorf("serial = %d, want 1", serial)
	}

	if created == nil {
		t.Fatal("doctor was not created")
	}
	if created.PasswordHash == "pw" || created.PasswordHash == "" {
		t.Error("password must be stored hashed, not in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("pw")); err != nil {
		t.Errorf("stored hash does not verify original password: %v", err)
	}
	if created.Name != "Ann" || created.Specialty != "Cardio" {
		t.Errorf("doctor = %+v, want name=Ann specialty=Cardio", created)
	}
}

func TestSignup_DuplicateDoctorID_ReturnsConflict(t *testing.T) {
	doctorRepo := &mockDoctorRepo{
		createFn: func(ctx context.Context, doctor *model.Doctor) error {
			return model.ErrDuplicateDoctorID
		},
	}
	svc := newTestService(doctorRepo, &mockSessionRepo{})

	_, err := svc.Signup(context.Background(), "doc1", "pw", "Ann", "Cardio")
	if !errors.Is(err, model.ErrDuplicateDoctorID) {
		t.Fatalf("err = %v, want ErrDuplicateDoctorID", err)
	}
}

func TestLogin_Success_CreatesSessionWithDoctorIdentity(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	doctorRepo := &mockDoctorRepo{
		findByDoctorIDFn: func(ctx context.Context, doctorID string) (*model.Doctor, error) {
			return &model.Doctor{
				ID:           1,
				DoctorID:     "doc1",
				PasswordHash: string(hash),
				Name:         "Ann",
				Specialty:    "Cardio",
			}, nil
		},
	}

	var savedSession *model.Session
	sessionRepo := &mockSessionRepo{
		createFn: func(ctx context.Context, session *model.Session) error {
			savedSession = session
			return nil
		},
	}
	svc := newTestService(doctorRepo, sessionRepo)

	session, err := svc.Login(context.Background(), "doc1", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if session.DoctorID != "doc1" || session.DoctorName != "Ann" {
		t.Errorf("session = %+v, want doctor_id=doc1 name=Ann", session)
	}
	if session.ID == "" {
		t.Error("session ID should not be empty")
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Error("session should expire in the future")
	}
	if savedSession == nil {
		t.Fatal("session was not persisted")
	}
	if savedSession.ID != session.ID {
		t.Error("persisted session ID mismatch")
	}
}

func TestLogin_WrongPassword_ReturnsGenericUnauthorized(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	doctorRepo := &mockDoctorRepo{
		findByDoctorIDFn: func(ctx context.Context, doctorID string) (*model.Doctor, error) {
			return &model.Doctor{DoctorID: "doc1", PasswordHash: string(hash), Name: "Ann"}, nil
		},
	}

	sessionCreated := false
	sessionRepo := &mockSessionRepo{
		createFn: func(ctx context.Context, session *model.Session) error {
			sessionCreated = true
			return nil
		},
	}
	svc := newTestService(doctorRepo, sessionRepo)

	_, err = svc.Login(context.Background(), "doc1", "wrong")
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if sessionCreated {
		t.Error("failed login must not establish a session")
	}
}

func TestLogin_UnknownDoctorID_ReturnsSameGenericUnauthorized(t *testing.T) {
	doctorRepo := &mockDoctorRepo{
		findByDoctorIDFn: func(ctx context.Context, doctorID string) (*model.Doctor, error) {
			return nil, nil
		},
	}
	svc := newTestService(doctorRepo, &mockSessionRepo{})

	_, err := svc.Login(context.Background(), "nobody", "pw")
	// 未知のIDとパスワード不一致は同一のエラーであること（情報漏洩の防止）
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogout_DeletesSession(t *testing.T) {
	var deletedID string
	sessionRepo := &mockSessionRepo{
		deleteByIDFn: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	svc := newTestService(&mockDoctorRepo{}, sessionRepo)

	if err := svc.Logout(context.Background(), "session-abc"); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if deletedID != "session-abc" {
		t.Errorf("deleted session = %q, want %q", deletedID, "session-abc")
	}
}

func TestLogout_EmptySessionID_Succeeds(t *testing.T) {
	svc := newTestService(&mockDoctorRepo{}, &mockSessionRepo{})

	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("Logout with empty session ID should succeed, got: %v", err)
	}
}

func TestCurrentSession_ValidSession_ReturnsSession(t *testing.T) {
	sessionRepo := &mockSessionRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Session, error) {
			return &model.Session{ID: id, DoctorID: "doc1", DoctorName: "Ann"}, nil
		},
	}
	svc := newTestService(&mockDoctorRepo{}, sessionRepo)

	session, err := svc.CurrentSession(context.Background(), "session-abc")
	if err != nil {
		t.Fatalf("CurrentSession failed: %v", err)
	}
	if session == nil {
		t.Fatal("expected session, got nil")
	}
	if session.DoctorName != "Ann" {
		t.Errorf("DoctorName = %q, want %q", session.DoctorName, "Ann")
	}
}

func TestCurrentSession_EmptyID_ReturnsNil(t *testing.T) {
	svc := newTestService(&mockDoctorRepo{}, &mockSessionRepo{})

	session, err := svc.CurrentSession(context.Background(), "")
	if err != nil {
		t.Fatalf("CurrentSession failed: %v", err)
	}
	if session != nil {
		t.Errorf("expected nil session, got %+v", session)
	}
}
