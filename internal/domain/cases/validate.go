package cases

import (
	"strconv"
	"strings"
)

// Defaults applied to optional submission fields during normalization.
const (
	DefaultDoctorID            = "DOC-001"
	DefaultCountryCode         = "IN"
	DefaultTemperature         = "98.6"
	DefaultSymptomsDays        = "1"
	DefaultHasPhlegm           = "No"
	DefaultBreathingDifficulty = "No"
)

// ValidateSubmission checks the required fields of a raw submission and
// fills in the documented defaults for the optional ones. It returns a
// *ValidationError naming the first offending field. No side effects: the
// validator never touches the network or the store.
func ValidateSubmission(raw RawSubmission) (*Submission, error) {
	if len(raw.Audio) == 0 {
		return nil, &ValidationError{Field: "audio", Reason: "audio recording is required"}
	}
	if len(raw.Image) == 0 {
		return nil, &ValidationError{Field: "image", Reason: "throat image is required"}
	}
	if strings.TrimSpace(raw.PatientName) == "" {
		return nil, &ValidationError{Field: "patientName", Reason: "patient name is required"}
	}

	if strings.TrimSpace(raw.Age) == "" {
		return nil, &ValidationError{Field: "age", Reason: "age is required"}
	}
	age, err := strconv.Atoi(strings.TrimSpace(raw.Age))
	if err != nil || age < 0 {
		return nil, &ValidationError{Field: "age", Reason: "age must be a non-negative integer"}
	}

	if strings.TrimSpace(raw.Gender) == "" {
		return nil, &ValidationError{Field: "gender", Reason: "gender is required"}
	}
	if strings.TrimSpace(raw.Village) == "" {
		return nil, &ValidationError{Field: "village", Reason: "village is required"}
	}

	lat, err := parseCoordinate(raw.Latitude)
	if err != nil {
		return nil, &ValidationError{Field: "latitude", Reason: "latitude must be a decimal number"}
	}
	lon, err := parseCoordinate(raw.Longitude)
	if err != nil {
		return nil, &ValidationError{Field: "longitude", Reason: "longitude must be a decimal number"}
	}

	return &Submission{
		DoctorID:            orDefault(raw.DoctorID, DefaultDoctorID),
		PatientName:         strings.TrimSpace(raw.PatientName),
		Age:                 age,
		Gender:              strings.TrimSpace(raw.Gender),
		VillageName:         strings.TrimSpace(raw.Village),
		CountryCode:         orDefault(raw.CountryCode, DefaultCountryCode),
		Latitude:            lat,
		Longitude:           lon,
		Temperature:         orDefault(raw.Temperature, DefaultTemperature),
		SymptomsDays:        orDefault(raw.SymptomsDays, DefaultSymptomsDays),
		HasPhlegm:           orDefault(raw.HasPhlegm, DefaultHasPhlegm),
		BreathingDifficulty: orDefault(raw.BreathingDifficulty, DefaultBreathingDifficulty),
		Audio:               raw.Audio,
		Image:               raw.Image,
	}, nil
}

// parseCoordinate returns nil for an absent value. Latitude and longitude
// are each independently optional.
func parseCoordinate(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}
