package cases

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Analyzer is the outbound contract to the diagnostic inference service.
// Implementations must be safe for concurrent use by in-flight requests.
type Analyzer interface {
	Analyze(ctx context.Context, sub *Submission) (*InferenceResult, error)
}

// Service orchestrates the end-to-end create-case flow and exposes the
// dashboard read paths. Each create is handled synchronously: validate,
// remote inference call, merge, persist.
type Service struct {
	repo     Repository
	analyzer Analyzer
	logger   zerolog.Logger
}

func NewService(repo Repository, analyzer Analyzer, logger zerolog.Logger) *Service {
	return &Service{repo: repo, analyzer: analyzer, logger: logger}
}

// CreateCase validates the raw submission, calls the inference service, and
// persists the merged record. A validation failure returns before any remote
// call. An inference failure does not drop the submission: the case is
// persisted with empty diagnosis fields. The one exception is the caller's
// own context being cancelled or past its deadline, which aborts the whole
// create with an *InferenceError and persists nothing.
func (s *Service) CreateCase(ctx context.Context, raw RawSubmission) (*CaseRecord, error) {
	sub, err := ValidateSubmission(raw)
	if err != nil {
		return nil, err
	}

	res, err := s.analyzer.Analyze(ctx, sub)
	if err != nil {
		if ctx.Err() != nil {
			var ie *InferenceError
			if errors.As(err, &ie) {
				return nil, ie
			}
			return nil, &InferenceError{Op: "analyze", Err: err}
		}
		s.logger.Warn().Err(err).
			Str("village", sub.VillageName).
			Msg("inference unavailable, persisting case without diagnosis")
		res = nil
	}

	rec := MergeCase(sub, res)
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	s.logger.Info().
		Str("case_id", rec.ID.String()).
		Str("village", rec.VillageName).
		Bool("diagnosed", res != nil).
		Msg("case created")
	return rec, nil
}

// ListAll returns every persisted case, unfiltered and unpaginated. The
// government dashboard consumes this as-is.
func (s *Service) ListAll(ctx context.Context) ([]*CaseRecord, error) {
	return s.repo.ListAll(ctx)
}

// ListRecent returns up to limit cases, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*CaseRecord, error) {
	return s.repo.ListRecent(ctx, limit)
}

// ListByCountry returns the cases recorded for a country code.
func (s *Service) ListByCountry(ctx context.Context, code string) ([]*CaseRecord, error) {
	return s.repo.ListByCountry(ctx, code)
}

// ListByVillage returns the cases recorded for a village.
func (s *Service) ListByVillage(ctx context.Context, name string) ([]*CaseRecord, error) {
	return s.repo.ListByVillage(ctx, name)
}
