package repository

import (
	"context"
	"errors"

	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type staffProfileRepository struct{}

func NewStaffProfileRepository() domainRepo.StaffProfileRepository {
	return &staffProfileRepository{}
}

func (r *staffProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.StaffProfile) error {
	return db.WithContext(ctx).Omit("User").Create(profile).Error
}

func (r *staffProfileRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.StaffProfile, error) {
	var profile entity.StaffProfile
	err := db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// LockByID issues SELECT ... FOR UPDATE. Concurrent bookings for the same
// staff member queue behind this lock until the transaction ends.
func (r *staffProfileRepository) LockByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.StaffProfile, error) {
	var profile entity.StaffProfile
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *staffProfileRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.StaffFilter) ([]entity.StaffProfile, error) {
	query := db.WithContext(ctx).Preload("User")
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Position != "" {
		query = query.Where("position = ?", filter.Position)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var profiles []entity.StaffProfile
	if err := query.Order("staff_code ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *staffProfileRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.StaffProfile) error {
	return db.WithContext(ctx).Omit("User").Save(profile).Error
}

func (r *staffProfileRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.StaffProfile{}).Error
}

// MaxCodeNumber returns the highest N among STAFFnnnn codes, or 0.
func (r *staffProfileRepository) MaxCodeNumber(ctx context.Context, db *gorm.DB) (int64, error) {
	var highest int64
	err := db.WithContext(ctx).
		Raw(`SELECT COALESCE(MAX(CAST(SUBSTRING(staff_code FROM 6) AS BIGINT)), 0)
			FROM staff_profiles WHERE staff_code ~ '^STAFF[0-9]+$'`).
		Scan(&highest).Error
	return highest, err
}
