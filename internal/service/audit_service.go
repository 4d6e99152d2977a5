package service

import (
	"go.uber.org/zap"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/repository"
)

// AuditService appends audit entries attributed to the signed-in user.
type AuditService struct {
	audit   *repository.AuditRepository
	current *repository.CurrentUserRepository
	log     *zap.Logger
}

func NewAuditService(audit *repository.AuditRepository, current *repository.CurrentUserRepository, log *zap.Logger) *AuditService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditService{audit: audit, current: current, log: log}
}

// Record appends an entry for the signed-in user. With nobody signed in the
// entry is skipped. Audit failures never fail the command that triggered
// them; they are logged and dropped.
func (s *AuditService) Record(action, details string) {
	user, err := s.current.Get()
	if err != nil {
		s.log.Warn("audit: resolving current user failed", zap.Error(err))
		return
	}
	if user == nil {
		return
	}
	if err := s.audit.Append(user.ID, user.Name, action, details); err != nil {
		s.log.Warn("audit: append failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// Entries returns the audit log, newest first.
func (s *AuditService) Entries() ([]entity.AuditLog, error) {
	return s.audit.List()
}
