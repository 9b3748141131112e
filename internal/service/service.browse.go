package service

import (
	"context"
	stderrors "errors"

	"github.com/envmon/console/internal/models"
	"github.com/envmon/console/internal/session"
	nuts "github.com/vaudience/go-nuts"
)

// ListAudio fetches the recordings list. It is not cached.
func (s *Service) ListAudio(ctx context.Context) ([]models.AudioRecord, error) {
	return s.backend.ListAudio(ctx)
}

// Correlate fetches the bundle of audioID and stores it as the session's
// current correlation unless a newer correlation request has started.
// The caller always gets its own result.
func (s *Service) Correlate(ctx context.Context, sid, audioID string) (*models.EnvironmentalBundle, error) {
	token, err := s.sessions.Begin(ctx, sid, session.ViewCorrelation)
	if err != nil {
		return nil, err
	}
	bundle, err := s.backend.Environmental(ctx, audioID)
	if err != nil {
		return nil, err
	}
	s.commit(ctx, sid, session.ViewCorrelation, token, func(ws *session.Workspace) {
		ws.CorrelationID = audioID
		ws.Correlation = bundle
	})
	return bundle, nil
}

// Query fetches rows for params and stores them as the session's active
// query unless a newer query has started meanwhile.
func (s *Service) Query(ctx context.Context, sid string, params models.QueryParams) (*models.QueryResult, error) {
	token, err := s.sessions.Begin(ctx, sid, session.ViewQuery)
	if err != nil {
		return nil, err
	}
	res, err := s.backend.Query(ctx, params)
	if err != nil {
		return nil, err
	}
	s.commit(ctx, sid, session.ViewQuery, token, func(ws *session.Workspace) {
		ws.Query = res
	})
	return res, nil
}

// ActiveQuery returns the parameters of the session's last successful query.
func (s *Service) ActiveQuery(ctx context.Context, sid string) (models.QueryParams, bool, error) {
	ws, err := s.sessions.Load(ctx, sid)
	if err != nil {
		return models.QueryParams{}, false, err
	}
	if ws.Query == nil {
		return models.QueryParams{}, false, nil
	}
	return ws.Query.Params, true, nil
}

// Requery re-fetches the session's active query, if there is one, and
// returns the parameters it ran. When the fetch fails the stored rows are
// dropped so a later visit does not show them as current.
func (s *Service) Requery(ctx context.Context, sid string) (models.QueryParams, *models.QueryResult, error) {
	params, ok, err := s.ActiveQuery(ctx, sid)
	if err != nil || !ok {
		return params, nil, err
	}
	res, err := s.Query(ctx, sid, params)
	if err != nil {
		if uerr := s.sessions.Update(ctx, sid, func(ws *session.Workspace) {
			if ws.Query != nil && ws.Query.Params == params {
				ws.Query = nil
			}
		}); uerr != nil {
			nuts.L.Warnf("[Service] Failed to drop stale query for session %s: %v", sid, uerr)
		}
		return params, nil, err
	}
	return params, res, nil
}

func (s *Service) commit(ctx context.Context, sid string, view session.View, token uint64, fn func(*session.Workspace)) {
	err := s.sessions.Commit(ctx, sid, view, token, fn)
	switch {
	case stderrors.Is(err, session.ErrStale):
		nuts.L.Debugf("[Service] Discarded stale %s response for session %s (token %d)", view, sid, token)
	case err != nil:
		nuts.L.Warnf("[Service] Failed to store %s result for session %s: %v", view, sid, err)
	}
}
