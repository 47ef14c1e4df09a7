package repository

import (
	"context"

	"github.com/ezazee/dapur-gempita-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLogFilter narrows the audit listing to one table and/or record.
type AuditLogFilter struct {
	TableName string
	RecordID  *uuid.UUID
	Page      int
	Limit     int
}

// AuditLogRepository has no standalone insert path: audit rows are only ever
// written inside the workflow transaction they describe.
type AuditLogRepository interface {
	CreateTx(tx *gorm.DB, a *model.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, int64, error)
}

type auditLogRepo struct{ db *gorm.DB }

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository { return &auditLogRepo{db: db} }

func (r *auditLogRepo) CreateTx(tx *gorm.DB, a *model.AuditLog) error {
	return tx.Create(a).Error
}

func (r *auditLogRepo) List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.AuditLog{})
	if filter.TableName != "" {
		q = q.Where("table_name = ?", filter.TableName)
	}
	if filter.RecordID != nil {
		q = q.Where("record_id = ?", *filter.RecordID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	var logs []model.AuditLog
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&logs).Error
	return logs, total, err
}
