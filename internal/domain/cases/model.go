// Package cases implements the case-intake core: validation and
// normalization of field submissions, the merge of diagnostic inference
// results into the clinical record, and the persistence contract for
// case records.
package cases

import (
	"time"

	"github.com/google/uuid"
)

// CaseRecord maps to the patient_cases table: one row per intake, combining
// the submitted patient/clinical context with whatever the inference service
// returned. Records are created once and never updated or deleted.
type CaseRecord struct {
	ID uuid.UUID `db:"id" json:"id"`

	// Submission context
	DoctorID    string   `db:"doctor_id" json:"doctorId"`
	PatientName string   `db:"patient_name" json:"patientName"`
	Age         int      `db:"age" json:"age"`
	Gender      string   `db:"gender" json:"gender"`
	VillageName string   `db:"village_name" json:"villageName"`
	CountryCode string   `db:"country_code" json:"countryCode"`
	Latitude    *float64 `db:"latitude" json:"latitude,omitempty"`
	Longitude   *float64 `db:"longitude" json:"longitude,omitempty"`

	// Clinical context, kept as the caller-supplied text rather than coerced
	// to numeric/boolean values.
	Temperature         string `db:"temperature" json:"temperature"`
	SymptomsDays        string `db:"symptoms_days" json:"symptomsDays"`
	HasPhlegm           string `db:"has_phlegm" json:"hasPhlegm"`
	BreathingDifficulty string `db:"breathing_difficulty" json:"breathingDifficulty"`

	// Media, retained for audit. Excluded from JSON responses.
	CoughAudio  []byte `db:"cough_audio" json:"-"`
	ThroatImage []byte `db:"throat_image" json:"-"`

	// Diagnosis, nil until an inference result is merged. Stays nil forever
	// when inference failed or omitted the key.
	CoughDiagnosis      *string  `db:"cough_diagnosis" json:"coughDiagnosis"`
	CoughConfidence     *float64 `db:"cough_confidence" json:"coughConfidence"`
	VisualDiagnosis     *string  `db:"visual_diagnosis" json:"visualDiagnosis"`
	FinalRecommendation *string  `db:"final_recommendation" json:"finalRecommendation"`

	// Assigned by the store at creation, immutable afterwards.
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// RawSubmission carries the multipart form values exactly as the caller sent
// them. Empty strings and nil slices mean the field was absent.
type RawSubmission struct {
	DoctorID            string
	PatientName         string
	Age                 string
	Gender              string
	Village             string
	CountryCode         string
	Latitude            string
	Longitude           string
	Temperature         string
	SymptomsDays        string
	HasPhlegm           string
	BreathingDifficulty string
	Audio               []byte
	Image               []byte
}

// Submission is a validated, normalized case submission with all defaults
// applied, ready to forward to the inference service and merge into a
// CaseRecord.
type Submission struct {
	DoctorID            string
	PatientName         string
	Age                 int
	Gender              string
	VillageName         string
	CountryCode         string
	Latitude            *float64
	Longitude           *float64
	Temperature         string
	SymptomsDays        string
	HasPhlegm           string
	BreathingDifficulty string
	Audio               []byte
	Image               []byte
}

// InferenceResult is the typed response of the diagnostic service. Every
// field is individually optional: the service may omit any key, and the
// merge copies only what is present.
type InferenceResult struct {
	CoughDiagnosis      *string  `json:"coughDiagnosis"`
	CoughConfidence     *float64 `json:"coughConfidence"`
	VisualDiagnosis     *string  `json:"visualDiagnosis"`
	FinalRecommendation *string  `json:"finalRecommendation"`
}
