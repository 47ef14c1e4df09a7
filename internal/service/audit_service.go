package service

import (
	"context"
	"encoding/json"

	"github.com/ezazee/dapur-gempita-sub000/internal/dto"
	"github.com/ezazee/dapur-gempita-sub000/internal/model"
	"github.com/ezazee/dapur-gempita-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditService is a pure side-channel for workflow-level edits. It never
// records stock changes — those live in the ledger.
type AuditService interface {
	RecordTx(tx *gorm.DB, actorID uuid.UUID, action, tableName string, recordID uuid.UUID, oldData, newData any) error
	List(ctx context.Context, filter dto.AuditLogFilter) (*dto.AuditLogListResponse, error)
}

type auditService struct {
	repo repository.AuditLogRepository
}

func NewAuditService(repo repository.AuditLogRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) RecordTx(tx *gorm.DB, actorID uuid.UUID, action, tableName string, recordID uuid.UUID, oldData, newData any) error {
	entry := &model.AuditLog{
		UserID:    actorID,
		Action:    action,
		TableName: tableName,
		RecordID:  recordID,
		OldData:   marshalOrNull(oldData),
		NewData:   marshalOrNull(newData),
	}
	return s.repo.CreateTx(tx, entry)
}

// marshalOrNull keeps the jsonb columns valid when a snapshot is absent.
func marshalOrNull(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func (s *auditService) List(ctx context.Context, filter dto.AuditLogFilter) (*dto.AuditLogListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	repoFilter := repository.AuditLogFilter{
		TableName: filter.TableName,
		Page:      filter.Page,
		Limit:     filter.Limit,
	}
	if filter.RecordID != "" {
		id, err := uuid.Parse(filter.RecordID)
		if err == nil {
			repoFilter.RecordID = &id
		}
	}

	logs, total, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		data = append(data, dto.AuditLogResponse{
			ID:        l.ID.String(),
			UserID:    l.UserID.String(),
			Action:    l.Action,
			TableName: l.TableName,
			RecordID:  l.RecordID.String(),
			OldData:   json.RawMessage(l.OldData),
			NewData:   json.RawMessage(l.NewData),
			CreatedAt: l.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.AuditLogListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
