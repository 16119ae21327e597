package repository

import (
	"context"
	"time"

	"teapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(ctx context.Context, a *model.Attendance) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Attendance, error)
	// FindOpenSession returns the employee's attendance row without a checkout,
	// if any.
	FindOpenSession(ctx context.Context, employeeID uuid.UUID) (*model.Attendance, error)
	Update(ctx context.Context, a *model.Attendance) error
	// ListForWindow returns all rows whose check-in falls inside [start, end]
	// (end date inclusive), for one employee or, with employeeID nil, for a
	// whole shop (shopID nil = all shops).
	ListForWindow(ctx context.Context, shopID, employeeID *uuid.UUID, start, end time.Time) ([]model.Attendance, error)
}

type attendanceRepo struct{ db *gorm.DB }

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository { return &attendanceRepo{db: db} }

func (r *attendanceRepo) Create(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *attendanceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Attendance, error) {
	var a model.Attendance
	err := r.db.WithContext(ctx).First(&a, id).Error
	return &a, err
}

func (r *attendanceRepo) FindOpenSession(ctx context.Context, employeeID uuid.UUID) (*model.Attendance, error) {
	var a model.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND check_out IS NULL", employeeID).
		Order("check_in DESC").First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepo) Update(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *attendanceRepo) ListForWindow(ctx context.Context, shopID, employeeID *uuid.UUID, start, end time.Time) ([]model.Attendance, error) {
	var rows []model.Attendance
	q := r.db.WithContext(ctx).
		Where("check_in >= ? AND check_in < ?", start, end.AddDate(0, 0, 1)).
		Order("check_in ASC")
	if shopID != nil {
		q = q.Where("shop_id = ?", *shopID)
	}
	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}
	err := q.Find(&rows).Error
	return rows, err
}
