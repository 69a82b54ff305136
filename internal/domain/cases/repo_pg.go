package cases

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns a Repository backed by the patient_cases table.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const caseCols = `id, doctor_id, patient_name, age, gender, village_name, country_code,
	latitude, longitude, temperature, symptoms_days, has_phlegm, breathing_difficulty,
	cough_audio, throat_image,
	cough_diagnosis, cough_confidence, visual_diagnosis, final_recommendation, created_at`

func scanCase(row pgx.Row) (*CaseRecord, error) {
	var rec CaseRecord
	err := row.Scan(&rec.ID, &rec.DoctorID, &rec.PatientName, &rec.Age, &rec.Gender,
		&rec.VillageName, &rec.CountryCode,
		&rec.Latitude, &rec.Longitude, &rec.Temperature, &rec.SymptomsDays,
		&rec.HasPhlegm, &rec.BreathingDifficulty,
		&rec.CoughAudio, &rec.ThroatImage,
		&rec.CoughDiagnosis, &rec.CoughConfidence, &rec.VisualDiagnosis,
		&rec.FinalRecommendation, &rec.CreatedAt)
	return &rec, err
}

// Create inserts the record as a single atomic statement. The database
// assigns created_at so the timestamp is set exactly once, server-side.
func (r *repoPG) Create(ctx context.Context, rec *CaseRecord) error {
	rec.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO patient_cases (id, doctor_id, patient_name, age, gender, village_name, country_code,
			latitude, longitude, temperature, symptoms_days, has_phlegm, breathing_difficulty,
			cough_audio, throat_image,
			cough_diagnosis, cough_confidence, visual_diagnosis, final_recommendation)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		RETURNING created_at`,
		rec.ID, rec.DoctorID, rec.PatientName, rec.Age, rec.Gender, rec.VillageName, rec.CountryCode,
		rec.Latitude, rec.Longitude, rec.Temperature, rec.SymptomsDays, rec.HasPhlegm, rec.BreathingDifficulty,
		rec.CoughAudio, rec.ThroatImage,
		rec.CoughDiagnosis, rec.CoughConfidence, rec.VisualDiagnosis, rec.FinalRecommendation,
	).Scan(&rec.CreatedAt)
}

func (r *repoPG) ListAll(ctx context.Context) ([]*CaseRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+caseCols+` FROM patient_cases ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	return collectCases(rows)
}

func (r *repoPG) ListByCountry(ctx context.Context, code string) ([]*CaseRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+caseCols+` FROM patient_cases WHERE country_code = $1 ORDER BY created_at`, code)
	if err != nil {
		return nil, err
	}
	return collectCases(rows)
}

func (r *repoPG) ListByVillage(ctx context.Context, name string) ([]*CaseRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+caseCols+` FROM patient_cases WHERE village_name = $1 ORDER BY created_at`, name)
	if err != nil {
		return nil, err
	}
	return collectCases(rows)
}

func (r *repoPG) ListRecent(ctx context.Context, limit int) ([]*CaseRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+caseCols+` FROM patient_cases ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectCases(rows)
}

func collectCases(rows pgx.Rows) ([]*CaseRecord, error) {
	defer rows.Close()
	var items []*CaseRecord
	for rows.Next() {
		rec, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return items, rows.Err()
}
