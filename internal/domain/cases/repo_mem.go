package cases

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RepoMem is a thread-safe, in-memory Repository. It backs the test suite
// and lets the server run without a database (DATABASE_URL unset).
type RepoMem struct {
	mu sync.RWMutex
	// insertion order; ListRecent breaks creation-time ties newest-insert-first
	records []*CaseRecord
}

// NewRepoMem returns a ready-to-use empty store.
func NewRepoMem() *RepoMem {
	return &RepoMem{}
}

// Create assigns the identifier and creation timestamp and stores a copy of
// the record, so later mutation of the caller's value cannot reach the store.
func (r *RepoMem) Create(_ context.Context, rec *CaseRecord) error {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.records = append(r.records, cloneCase(rec))
	r.mu.Unlock()
	return nil
}

func (r *RepoMem) ListAll(_ context.Context) ([]*CaseRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*CaseRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, cloneCase(rec))
	}
	return out, nil
}

func (r *RepoMem) ListByCountry(_ context.Context, code string) ([]*CaseRecord, error) {
	return r.filter(func(rec *CaseRecord) bool { return rec.CountryCode == code })
}

func (r *RepoMem) ListByVillage(_ context.Context, name string) ([]*CaseRecord, error) {
	return r.filter(func(rec *CaseRecord) bool { return rec.VillageName == name })
}

func (r *RepoMem) ListRecent(_ context.Context, limit int) ([]*CaseRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	r.mu.RLock()
	// newest insert first, then a stable sort by creation time keeps that
	// order among equal timestamps
	out := make([]*CaseRecord, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		out = append(out, cloneCase(r.records[i]))
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *RepoMem) filter(keep func(*CaseRecord) bool) ([]*CaseRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*CaseRecord
	for _, rec := range r.records {
		if keep(rec) {
			out = append(out, cloneCase(rec))
		}
	}
	return out, nil
}

func cloneCase(rec *CaseRecord) *CaseRecord {
	c := *rec
	c.Latitude = copyFloat(rec.Latitude)
	c.Longitude = copyFloat(rec.Longitude)
	c.CoughDiagnosis = copyString(rec.CoughDiagnosis)
	c.CoughConfidence = copyFloat(rec.CoughConfidence)
	c.VisualDiagnosis = copyString(rec.VisualDiagnosis)
	c.FinalRecommendation = copyString(rec.FinalRecommendation)
	c.CoughAudio = append([]byte(nil), rec.CoughAudio...)
	c.ThroatImage = append([]byte(nil), rec.ThroatImage...)
	return &c
}
