package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/hitoshi/mediconnect/internal/model"
)

// SQLiteDoctorRepo はSQLiteを使用した医師リポジトリ。
type SQLiteDoctorRepo struct {
	db *sql.DB
}

// NewSQLiteDoctorRepo はSQLiteDoctorRepoを生成する。
func NewSQLiteDoctorRepo(db *sql.DB) *SQLiteDoctorRepo {
	return &SQLiteDoctorRepo{db: db}
}

// Create は医師を作成し、採番されたシリアル番号をdoctor.IDに設定する。
// doctor_idのUNIQUE制約違反はmodel.ErrDuplicateDoctorIDに変換して返す。
func (r *SQLiteDoctorRepo) Create(ctx context.Context, doctor *model.Doctor) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO doctors (doctor_id, password_hash, name, specialty)
		 VALUES (?, ?, ?, ?)`,
		doctor.DoctorID, doctor.PasswordHash, doctor.Name, doctor.Specialty,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return model.ErrDuplicateDoctorID
		}
		return fmt.Errorf("failed to insert doctor: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get doctor serial number: %w", err)
	}
	doctor.ID = id

	return nil
}

// FindByDoctorID はログイン識別子で医師を検索する。見つからない場合はnilを返す。
func (r *SQLiteDoctorRepo) FindByDoctorID(ctx context.Context, doctorID string) (*model.Doctor, error) {
	doctor := &model.Doctor{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, doctor_id, password_hash, name, specialty
		 FROM doctors
		 WHERE doctor_id = ?`,
		doctorID,
	).Scan(&doctor.ID, &doctor.DoctorID, &doctor.PasswordHash, &doctor.Name, &doctor.Specialty)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find doctor: %w", err)
	}

	return doctor, nil
}

// compile-time interface check
var _ DoctorRepository = (*SQLiteDoctorRepo)(nil)
