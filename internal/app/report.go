package service

import (
	"context"

	"github.com/okian/traineval/internal/adapters/render"
	"github.com/okian/traineval/internal/adapters/share"
	"github.com/okian/traineval/internal/domain/model"
	"github.com/okian/traineval/internal/domain/scoring"
	"github.com/okian/traineval/pkg/logger"
	"github.com/okian/traineval/pkg/metrics"
)

// Report is a participant's evaluations together with their derived summary.
type Report struct {
	Training    model.TrainingRecord    `json:"training"`
	Participant share.Participant       `json:"participant"`
	Evaluations []model.DailyEvaluation `json:"evaluations"`
	Summary     scoring.Summary         `json:"summary"`
	// Shared is true when the report was rebuilt from a share token.
	Shared bool `json:"shared"`
}

// ShareInfo describes how to reach and export the active report.
type ShareInfo struct {
	Token         string `json:"token"`
	Link          string `json:"link"`
	FileName      string `json:"fileName"`
	ImageFileName string `json:"imageFileName"`
}

func newReport(snap share.Snapshot, shared bool) Report {
	summary := scoring.Summarize(snap.DayCount, snap.Evaluations)
	metrics.RecordSummary(string(summary.Status))
	return Report{
		Training:    snap.Training(),
		Participant: snap.Participant,
		Evaluations: snap.Evaluations,
		Summary:     summary,
		Shared:      shared,
	}
}

// Snapshot captures the active participant's report for sharing.
func (s *Service) Snapshot(_ context.Context) (share.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return share.Snapshot{}, ErrNotStarted
	}
	return s.snapshot()
}

func (s *Service) snapshot() (share.Snapshot, error) {
	p, err := s.activeParticipant()
	if err != nil {
		return share.Snapshot{}, err
	}
	return share.NewSnapshot(s.training, p, s.evals), nil
}

// Report derives the live report of the active participant.
func (s *Service) Report(_ context.Context) (Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return Report{}, ErrNotStarted
	}
	snap, err := s.snapshot()
	if err != nil {
		return Report{}, err
	}
	return newReport(snap, false), nil
}

// DecodeReport rebuilds a read-only report from a share token. It does not
// touch live state. Invalid tokens yield share.ErrInvalidToken.
func (s *Service) DecodeReport(ctx context.Context, token string) (Report, error) {
	snap, err := share.Decode(token)
	if err != nil {
		if s.logger != nil {
			s.logger.Debug(ctx, "rejected share token", logger.Error(err))
		}
		return Report{}, err
	}
	return newReport(snap, true), nil
}

// Share encodes the active report and returns its link and export names.
func (s *Service) Share(ctx context.Context) (ShareInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ShareInfo{}, ErrNotStarted
	}
	snap, err := s.snapshot()
	if err != nil {
		return ShareInfo{}, err
	}
	token, err := share.Encode(snap)
	if err != nil {
		return ShareInfo{}, err
	}
	s.logger.Debug(ctx, "share link created", logger.Int("tokenLength", len(token)))
	return ShareInfo{
		Token:         token,
		Link:          share.Link(s.shareOrigin, token),
		FileName:      render.FileName(snap.Participant.Name, "pdf"),
		ImageFileName: render.FileName(snap.Participant.Name, "png"),
	}, nil
}

// Summary derives the active participant's summary.
func (s *Service) Summary(ctx context.Context) (scoring.Summary, error) {
	rep, err := s.Report(ctx)
	if err != nil {
		return scoring.Summary{}, err
	}
	return rep.Summary, nil
}

// ShareLink returns only the share link of the active report.
func (s *Service) ShareLink(ctx context.Context) (string, error) {
	info, err := s.Share(ctx)
	if err != nil {
		return "", err
	}
	return info.Link, nil
}
