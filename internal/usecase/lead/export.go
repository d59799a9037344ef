package lead

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/export"
	"github.com/BruksfildServices01/clinic-crm/internal/metrics"
)

type Archiver interface {
	Store(ctx context.Context, ownerID uuid.UUID, filename, contentType string, body []byte) (string, error)
}

type ExportLeads struct {
	repo     domain.Repository
	archiver Archiver
	audit    audit.Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportLeads accepts a nil archiver when no bucket is configured.
func NewExportLeads(
	repo domain.Repository,
	archiver Archiver,
	audit audit.Recorder,
	logger *zap.Logger,
) *ExportLeads {
	return &ExportLeads{
		repo:     repo,
		archiver: archiver,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// Execute renders every lead of the account. A failed archive upload is
// logged and the download still goes through.
func (uc *ExportLeads) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	rawFormat string,
) (*export.File, error) {

	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, err
	}

	leads, err := uc.repo.List(ctx, ownerID, domain.Filter{})
	if err != nil {
		return nil, err
	}

	file, err := export.Build(format, leads, uc.now())
	if err != nil {
		return nil, err
	}

	if uc.archiver != nil {
		key, err := uc.archiver.Store(ctx, ownerID, file.Name, file.ContentType, file.Body)
		if err != nil {
			metrics.RecordIntegrationError("s3")
			uc.logger.Warn("export archive failed",
				zap.String("owner_id", ownerID.String()),
				zap.Error(err),
			)
		} else {
			file.ArchiveKey = key
		}
	}

	metrics.RecordExport(string(format))
	uc.audit.Dispatch(audit.Event{
		UserID: &ownerID,
		Action: "leads_exported",
		Entity: "lead",
		Metadata: map[string]any{
			"format":  format,
			"rows":    len(leads),
			"archive": file.ArchiveKey,
		},
	})

	return file, nil
}
