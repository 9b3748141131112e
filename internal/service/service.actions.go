package service

import (
	"context"
	"io"
	"strings"

	"github.com/envmon/console/internal/errors"
	"github.com/envmon/console/internal/models"
	"github.com/envmon/console/internal/views"
	nuts "github.com/vaudience/go-nuts"
)

// RecentActivityLimit is the number of journal entries shown on the home page.
const RecentActivityLimit = 20

// Upload forwards one file to the backend endpoint of kind. Outcomes that
// reached the backend are journaled and emitted.
func (s *Service) Upload(ctx context.Context, requestID string, kind models.UploadKind, filename string, content io.Reader) (*models.UploadResponse, error) {
	res, err := s.backend.Upload(ctx, kind, filename, content)
	if errors.IsValidation(err) {
		return nil, err
	}

	entry := models.ActivityEntry{
		Action:    models.ActionUpload,
		Kind:      string(kind),
		Target:    filename,
		Detail:    views.UploadStatus(res, err).Status.Message,
		RequestID: requestID,
	}
	event := EventUploadCompleted
	entry.Outcome = models.OutcomeSuccess
	if err != nil {
		event = EventUploadFailed
		entry.Outcome = models.OutcomeFailure
	}
	s.journal(ctx, event, entry)
	return res, err
}

// Delete removes the selected rows through the backend. An empty selection
// fails locally without a request.
func (s *Service) Delete(ctx context.Context, requestID string, sel models.Selection) error {
	sel = sel.Normalized()
	err := s.backend.Delete(ctx, sel)
	if errors.IsValidation(err) {
		return err
	}

	entry := models.ActivityEntry{
		Action:    models.ActionDelete,
		Kind:      string(sel.Source),
		Target:    strings.Join(sel.IDs, ","),
		Detail:    views.DeleteStatus(err).Message,
		RequestID: requestID,
	}
	event := EventDeleteCompleted
	entry.Outcome = models.OutcomeSuccess
	if err != nil {
		event = EventDeleteFailed
		entry.Outcome = models.OutcomeFailure
	}
	s.journal(ctx, event, entry)
	return err
}

// RecentActivity returns the newest journal entries, or none when the
// journal is disabled.
func (s *Service) RecentActivity(ctx context.Context) ([]models.ActivityEntry, error) {
	if s.activity == nil {
		return nil, nil
	}
	return s.activity.Recent(ctx, RecentActivityLimit)
}

func (s *Service) journal(ctx context.Context, event string, entry models.ActivityEntry) {
	if s.activity != nil {
		// the journal outlives a cancelled request
		if err := s.activity.Record(context.WithoutCancel(ctx), &entry); err != nil {
			nuts.L.Warnf("[Service] Failed to journal %s: %v", event, err)
		}
	}
	s.monitoring.RecordEvent(event, map[string]string{"kind": entry.Kind})
	if err := s.events.Emit(event, entry); err != nil {
		nuts.L.Warnf("[Service] Failed to emit %s: %v", event, err)
	}
}
