package cases

// MergeCase combines a normalized submission with an inference result into a
// persistable CaseRecord. The merge never fails: a nil result (the inference
// call failed or was skipped) produces a record with all diagnosis fields
// nil, and a partial result populates only the fields the service returned.
// Merging the same inputs twice yields identical records.
func MergeCase(sub *Submission, res *InferenceResult) *CaseRecord {
	rec := &CaseRecord{
		DoctorID:            sub.DoctorID,
		PatientName:         sub.PatientName,
		Age:                 sub.Age,
		Gender:              sub.Gender,
		VillageName:         sub.VillageName,
		CountryCode:         sub.CountryCode,
		Latitude:            copyFloat(sub.Latitude),
		Longitude:           copyFloat(sub.Longitude),
		Temperature:         sub.Temperature,
		SymptomsDays:        sub.SymptomsDays,
		HasPhlegm:           sub.HasPhlegm,
		BreathingDifficulty: sub.BreathingDifficulty,
		CoughAudio:          sub.Audio,
		ThroatImage:         sub.Image,
	}
	if res == nil {
		return rec
	}

	rec.CoughDiagnosis = copyString(res.CoughDiagnosis)
	rec.CoughConfidence = copyFloat(res.CoughConfidence)
	rec.VisualDiagnosis = copyString(res.VisualDiagnosis)
	rec.FinalRecommendation = copyString(res.FinalRecommendation)
	return rec
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
