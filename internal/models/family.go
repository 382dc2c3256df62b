package models

// ModelFamily is descriptive metadata for a supported device family. It is
// surfaced to the collaborator after validation and plays no part in the
// validation logic itself.
type ModelFamily struct {
	Prefix     string  `json:"prefix"`
	ChainPitch float64 `json:"chainPitch"`
	DatumValue int     `json:"datumValue"`
}

// SupportedModelPrefixes lists the five supported device families.
var SupportedModelPrefixes = []string{"100", "200", "201", "350", "351"}

var modelFamilies = map[string]ModelFamily{
	"100": {Prefix: "100", ChainPitch: 31.75, DatumValue: 20},
	"200": {Prefix: "200", ChainPitch: 31.75, DatumValue: 20},
	"201": {Prefix: "201", ChainPitch: 31.75, DatumValue: 20},
	"350": {Prefix: "350", ChainPitch: 50.8, DatumValue: 14},
	"351": {Prefix: "351", ChainPitch: 50.8, DatumValue: 14},
}

// LookupModelFamily resolves the family metadata for a validated model code.
// The prefix is everything before the first "-".
func LookupModelFamily(modelCode string) (ModelFamily, bool) {
	for i := 0; i < len(modelCode); i++ {
		if modelCode[i] == '-' {
			family, ok := modelFamilies[modelCode[:i]]
			return family, ok
		}
	}
	return ModelFamily{}, false
}
