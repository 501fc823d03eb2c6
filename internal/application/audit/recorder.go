// Package audit records administrative actions without ever failing the
// operation that triggered them.
package audit

import (
	"context"
	"time"

	"github.com/marzgate/marzgate/internal/domain/auditlog"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

const writeTimeout = 5 * time.Second

// Recorder writes audit entries in the background. A failed write is logged
// and dropped; the audit trail is best-effort.
type Recorder struct {
	repo   auditlog.Repository
	logger logger.Interface
}

func NewRecorder(repo auditlog.Repository, log logger.Interface) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: log,
	}
}

// RecordAdmin records an action performed by an admin.
func (r *Recorder) RecordAdmin(adminID uint, action string, details map[string]any) {
	entry, err := auditlog.NewAdminEntry(adminID, action, details)
	if err != nil {
		r.logger.Warnw("invalid audit entry dropped", "action", action, "error", err)
		return
	}
	r.persist(entry)
}

// RecordSuperAdmin records an action performed by a super admin.
func (r *Recorder) RecordSuperAdmin(superAdminID uint, action string, details map[string]any) {
	entry, err := auditlog.NewSuperAdminEntry(superAdminID, action, details)
	if err != nil {
		r.logger.Warnw("invalid audit entry dropped", "action", action, "error", err)
		return
	}
	r.persist(entry)
}

// persist writes the entry asynchronously with its own timeout so the
// caller's request context cannot cancel the write.
func (r *Recorder) persist(entry *auditlog.Entry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := r.repo.Create(ctx, entry); err != nil {
			r.logger.Warnw("failed to persist audit entry",
				"action", entry.Action(),
				"error", err)
		}
	}()
}
