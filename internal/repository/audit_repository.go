package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/store"
)

type AuditRepository struct {
	store *store.Store
}

func NewAuditRepository(st *store.Store) *AuditRepository {
	return &AuditRepository{store: st}
}

// List returns entries newest-first, as stored.
func (r *AuditRepository) List() ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	if err := r.store.Read(store.CollectionAuditLogs, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Append prepends the entry and drops everything past MaxAuditEntries.
func (r *AuditRepository) Append(userID, userName, action, details string) error {
	logs, err := r.List()
	if err != nil {
		return err
	}
	entry := entity.AuditLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		UserName:  userName,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	}
	logs = append([]entity.AuditLog{entry}, logs...)
	if len(logs) > entity.MaxAuditEntries {
		logs = logs[:entity.MaxAuditEntries]
	}
	return r.store.Write(store.CollectionAuditLogs, logs)
}
