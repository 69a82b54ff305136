package cases

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func memRecord(village, country string) *CaseRecord {
	return &CaseRecord{
		DoctorID:            DefaultDoctorID,
		PatientName:         "Asha",
		Age:                 34,
		Gender:              "F",
		VillageName:         village,
		CountryCode:         country,
		Temperature:         DefaultTemperature,
		SymptomsDays:        DefaultSymptomsDays,
		HasPhlegm:           DefaultHasPhlegm,
		BreathingDifficulty: DefaultBreathingDifficulty,
	}
}

func TestRepoMem_CreateAssignsIdentityAndTimestamp(t *testing.T) {
	repo := NewRepoMem()
	ctx := context.Background()

	rec := memRecord("Koti", "IN")
	before := time.Now().UTC()
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if rec.ID == uuid.Nil {
		t.Error("expected a non-nil identifier")
	}
	if rec.CreatedAt.Before(before) {
		t.Errorf("createdAt %v precedes create call at %v", rec.CreatedAt, before)
	}
}

func TestRepoMem_SnapshotIsolation(t *testing.T) {
	repo := NewRepoMem()
	ctx := context.Background()

	rec := memRecord("Koti", "IN")
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Mutating the caller's value must not reach the store.
	rec.VillageName = "changed"

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error: %v", err)
	}
	if all[0].VillageName != "Koti" {
		t.Errorf("stored record was mutated: %q", all[0].VillageName)
	}
}

func TestRepoMem_Filters(t *testing.T) {
	repo := NewRepoMem()
	ctx := context.Background()

	for _, rc := range []*CaseRecord{
		memRecord("Koti", "IN"),
		memRecord("Koti", "IN"),
		memRecord("Mbita", "KE"),
	} {
		if err := repo.Create(ctx, rc); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	byCountry, err := repo.ListByCountry(ctx, "KE")
	if err != nil {
		t.Fatalf("ListByCountry() error: %v", err)
	}
	if len(byCountry) != 1 || byCountry[0].VillageName != "Mbita" {
		t.Errorf("ListByCountry(KE): got %d records", len(byCountry))
	}

	byVillage, err := repo.ListByVillage(ctx, "Koti")
	if err != nil {
		t.Fatalf("ListByVillage() error: %v", err)
	}
	if len(byVillage) != 2 {
		t.Errorf("ListByVillage(Koti): got %d records, want 2", len(byVillage))
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListAll(): got %d records, want 3", len(all))
	}
}

func TestRepoMem_ListRecentOrderAndLimit(t *testing.T) {
	repo := NewRepoMem()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		if err := repo.Create(ctx, memRecord(fmt.Sprintf("village-%d", i), "IN")); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	recent, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent() error: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("ListRecent(10): got %d records", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].CreatedAt.After(recent[i-1].CreatedAt) {
			t.Fatalf("records not in descending creation order at index %d", i)
		}
	}
	if recent[0].VillageName != "village-14" {
		t.Errorf("newest record first: got %q", recent[0].VillageName)
	}

	// Default limit kicks in for non-positive values.
	recent, err = repo.ListRecent(ctx, 0)
	if err != nil {
		t.Fatalf("ListRecent() error: %v", err)
	}
	if len(recent) != DefaultRecentLimit {
		t.Errorf("ListRecent(0): got %d records, want %d", len(recent), DefaultRecentLimit)
	}
}

func TestRepoMem_ListRecentFewerThanLimit(t *testing.T) {
	repo := NewRepoMem()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Create(ctx, memRecord("Koti", "IN")); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	recent, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent() error: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("got %d records, want 3", len(recent))
	}
}

func TestRepoMem_ConcurrentCreates(t *testing.T) {
	repo := NewRepoMem()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := repo.Create(ctx, memRecord("Koti", "IN")); err != nil {
				t.Errorf("Create() error: %v", err)
			}
		}()
	}
	wg.Wait()

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error: %v", err)
	}
	if len(all) != n {
		t.Fatalf("got %d records, want %d", len(all), n)
	}

	seen := make(map[uuid.UUID]bool, n)
	for _, rec := range all {
		if seen[rec.ID] {
			t.Fatalf("duplicate identifier %s", rec.ID)
		}
		seen[rec.ID] = true
	}
}
