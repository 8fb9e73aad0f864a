package entities

// Gender is the patient gender carried by an inference request
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is one of the two accepted values
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// InferenceResult is the transient outcome of a diagnosis request. It is
// produced per request and never persisted by the inference layer itself.
type InferenceResult struct {
	Diagnosis       string `json:"diagnosis"`
	Recommendations string `json:"recommendations"`
}
