package inference

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Deepak14Jain/bact-trace/internal/domain/cases"
)

func testSubmission() *cases.Submission {
	return &cases.Submission{
		PatientName:         "Asha",
		Age:                 34,
		Gender:              "F",
		VillageName:         "Koti",
		CountryCode:         "IN",
		Temperature:         "101.2",
		SymptomsDays:        "6",
		HasPhlegm:           "Yes",
		BreathingDifficulty: "No",
		Audio:               []byte("audio-bytes"),
		Image:               []byte("image-bytes"),
	}
}

func TestAnalyze_SendsMultipartRequest(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart form: %v", err)
		}
		for field, want := range map[string]string{
			"age":                 "34",
			"temperature":         "101.2",
			"symptomsDays":        "6",
			"hasPhlegm":           "Yes",
			"breathingDifficulty": "No",
		} {
			if got := r.FormValue(field); got != want {
				t.Errorf("form field %s: got %q, want %q", field, got, want)
			}
		}
		for _, part := range []string{"audio", "image"} {
			f, _, err := r.FormFile(part)
			if err != nil {
				t.Errorf("missing file part %s: %v", part, err)
				continue
			}
			f.Close()
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"coughDiagnosis":"Bacterial","coughConfidence":0.91,"visualDiagnosis":"Visible Inflammation","finalRecommendation":"Antibiotics Recommended"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, zerolog.Nop())
	res, err := c.Analyze(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if gotPath != "/analyze" {
		t.Errorf("path: got %q, want /analyze", gotPath)
	}
	if res.CoughDiagnosis == nil || *res.CoughDiagnosis != "Bacterial" {
		t.Errorf("coughDiagnosis: got %v", res.CoughDiagnosis)
	}
	if res.CoughConfidence == nil || *res.CoughConfidence != 0.91 {
		t.Errorf("coughConfidence: got %v", res.CoughConfidence)
	}
	if res.FinalRecommendation == nil || *res.FinalRecommendation != "Antibiotics Recommended" {
		t.Errorf("finalRecommendation: got %v", res.FinalRecommendation)
	}
}

func TestAnalyze_PartialResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"coughDiagnosis":"Viral"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, zerolog.Nop())
	res, err := c.Analyze(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if res.CoughDiagnosis == nil || *res.CoughDiagnosis != "Viral" {
		t.Errorf("coughDiagnosis: got %v", res.CoughDiagnosis)
	}
	if res.CoughConfidence != nil || res.VisualDiagnosis != nil || res.FinalRecommendation != nil {
		t.Error("absent keys must stay nil")
	}
}

func TestAnalyze_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, zerolog.Nop())
	_, err := c.Analyze(context.Background(), testSubmission())

	var ie *cases.InferenceError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *cases.InferenceError, got %v", err)
	}
}

func TestAnalyze_UnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("definitely not json"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, zerolog.Nop())
	_, err := c.Analyze(context.Background(), testSubmission())

	var ie *cases.InferenceError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *cases.InferenceError, got %v", err)
	}
}

func TestAnalyze_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 50*time.Millisecond, zerolog.Nop())
	start := time.Now()
	_, err := c.Analyze(context.Background(), testSubmission())

	var ie *cases.InferenceError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *cases.InferenceError on timeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Errorf("timeout not enforced, call took %v", elapsed)
	}
}

func TestAnalyze_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := New(srv.URL, time.Second, zerolog.Nop())
	_, err := c.Analyze(ctx, testSubmission())

	var ie *cases.InferenceError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *cases.InferenceError on cancellation, got %v", err)
	}
}

func TestNew_DefaultTimeout(t *testing.T) {
	c := New("http://localhost:8000", 0, zerolog.Nop())
	if got := c.http.GetClient().Timeout; got != DefaultTimeout {
		t.Errorf("timeout: got %v, want %v", got, DefaultTimeout)
	}

	c = New("http://localhost:8000", 5*time.Second, zerolog.Nop())
	if got := c.http.GetClient().Timeout; got != 5*time.Second {
		t.Errorf("timeout: got %v, want 5s", got)
	}
}
