package cases

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler provides the Echo HTTP surface for case intake and the dashboard
// read paths.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the case routes on the supplied group, expected to
// be rooted at /api/cases.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateCase)
	g.GET("/analytics", h.Analytics)
	g.GET("/ping", h.Ping)
	g.GET("/recent", h.Recent)
	g.GET("/country/:code", h.ByCountry)
	g.GET("/village/:name", h.ByVillage)
}

func (h *Handler) CreateCase(c echo.Context) error {
	audio, err := readFormFile(c, "audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to read audio upload", "field": "audio"})
	}
	image, err := readFormFile(c, "image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to read image upload", "field": "image"})
	}

	raw := RawSubmission{
		DoctorID:            c.FormValue("doctorId"),
		PatientName:         c.FormValue("patientName"),
		Age:                 c.FormValue("age"),
		Gender:              c.FormValue("gender"),
		Village:             c.FormValue("village"),
		CountryCode:         c.FormValue("countryCode"),
		Latitude:            c.FormValue("latitude"),
		Longitude:           c.FormValue("longitude"),
		Temperature:         c.FormValue("temperature"),
		SymptomsDays:        c.FormValue("symptomsDays"),
		HasPhlegm:           c.FormValue("hasPhlegm"),
		BreathingDifficulty: c.FormValue("breathingDifficulty"),
		Audio:               audio,
		Image:               image,
	}

	rec, err := h.svc.CreateCase(c.Request().Context(), raw)
	if err != nil {
		var ve *ValidationError
		var ie *InferenceError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Reason, "field": ve.Field})
		case errors.As(err, &ie):
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "diagnostic inference unavailable"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to persist case"})
		}
	}
	return c.JSON(http.StatusCreated, rec)
}

// Analytics returns the full unfiltered case list. Unpaginated by contract:
// the dashboard computes its own aggregates client-side.
func (h *Handler) Analytics(c echo.Context) error {
	items, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, emptyIfNil(items))
}

func (h *Handler) Ping(c echo.Context) error {
	return c.String(http.StatusOK, "Core Online")
}

func (h *Handler) Recent(c echo.Context) error {
	limit := DefaultRecentLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
		}
		limit = n
	}
	items, err := h.svc.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, emptyIfNil(items))
}

func (h *Handler) ByCountry(c echo.Context) error {
	items, err := h.svc.ListByCountry(c.Request().Context(), c.Param("code"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, emptyIfNil(items))
}

func (h *Handler) ByVillage(c echo.Context) error {
	items, err := h.svc.ListByVillage(c.Request().Context(), c.Param("name"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, emptyIfNil(items))
}

// readFormFile returns nil for an absent part so the validator reports the
// missing field by name.
func readFormFile(c echo.Context, name string) ([]byte, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil, nil
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

func emptyIfNil(items []*CaseRecord) []*CaseRecord {
	if items == nil {
		return []*CaseRecord{}
	}
	return items
}
