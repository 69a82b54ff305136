// Package inference implements the client for the external diagnostic
// service that analyzes a case's cough audio, throat image and vitals.
package inference

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/Deepak14Jain/bact-trace/internal/domain/cases"
)

// DefaultTimeout bounds a single analyze call. The upstream model chain
// (vision pass plus a multimodal LLM) routinely takes tens of seconds.
const DefaultTimeout = 30 * time.Second

// Client calls the inference service. It holds no mutable state beyond its
// configuration and is safe for concurrent use by multiple in-flight
// requests.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

// New builds a Client for the service at baseURL. A non-positive timeout
// falls back to DefaultTimeout; running without one is not supported.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, logger: logger}
}

// Analyze forwards the case media and clinical context to POST /analyze as
// a single multipart request and returns the typed result. Any key the
// service omitted stays nil on the result. Transport failures, non-success
// statuses, timeouts and unparseable bodies all yield a
// *cases.InferenceError.
func (c *Client) Analyze(ctx context.Context, sub *cases.Submission) (*cases.InferenceResult, error) {
	start := time.Now()

	var result cases.InferenceResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("audio", "cough_audio.wav", bytes.NewReader(sub.Audio)).
		SetFileReader("image", "throat_image.jpg", bytes.NewReader(sub.Image)).
		SetMultipartFormData(map[string]string{
			"age":                 strconv.Itoa(sub.Age),
			"temperature":         sub.Temperature,
			"symptomsDays":        sub.SymptomsDays,
			"hasPhlegm":           sub.HasPhlegm,
			"breathingDifficulty": sub.BreathingDifficulty,
		}).
		SetResult(&result).
		ForceContentType("application/json").
		Post("/analyze")
	if err != nil {
		return nil, &cases.InferenceError{Op: "post analyze", Err: err}
	}
	if resp.IsError() {
		return nil, &cases.InferenceError{
			Op:  "analyze",
			Err: fmt.Errorf("inference service returned %s", resp.Status()),
		}
	}

	c.logger.Debug().
		Dur("latency", time.Since(start)).
		Bool("cough_diagnosis", result.CoughDiagnosis != nil).
		Bool("visual_diagnosis", result.VisualDiagnosis != nil).
		Msg("inference completed")
	return &result, nil
}
