package repository

import (
	"context"
	"time"

	"teapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(ctx context.Context, e *model.Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	// List returns employees of one shop, or all shops when shopID is nil.
	// Terminated staff are included — payroll history needs them.
	List(ctx context.Context, shopID *uuid.UUID) ([]model.Employee, error)
	Update(ctx context.Context, e *model.Employee) error
	Terminate(ctx context.Context, id uuid.UUID, date time.Time) error
}

type employeeRepo struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository { return &employeeRepo{db: db} }

func (r *employeeRepo) Create(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *employeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *employeeRepo) List(ctx context.Context, shopID *uuid.UUID) ([]model.Employee, error) {
	var emps []model.Employee
	q := r.db.WithContext(ctx).Order("name ASC")
	if shopID != nil {
		q = q.Where("shop_id = ?", *shopID)
	}
	err := q.Find(&emps).Error
	return emps, err
}

func (r *employeeRepo) Update(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// Terminate soft-terminates: the row survives so historical payroll still
// resolves the employee.
func (r *employeeRepo) Terminate(ctx context.Context, id uuid.UUID, date time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Employee{}).Where("id = ?", id).
		Updates(map[string]interface{}{"terminate_date": date, "synced": false}).Error
}
