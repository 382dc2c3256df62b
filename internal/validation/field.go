// Package validation implements the structural field checks and the
// cross-field consistency rule for a candidate record. It is pure: no I/O,
// no side effects.
package validation

import (
	"regexp"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	apperrors "inspection-rpa/internal/common/errors"
	"inspection-rpa/internal/models"
)

// Field names as reported in validation outcomes, in pipeline order.
const (
	FieldUsername            = "username"
	FieldModelCode           = "modelCode"
	FieldManufacturingNumber = "manufacturingNumber"
	FieldOrderNumber         = "orderNumber"
)

// Acceptance grammars. Full-string anchored: a field passes only when the
// entire value matches, never on a substring.
var (
	modelCodePattern     = regexp.MustCompile(`^(100|200|201|350|351)-\d{4}\.\d{6}$`)
	manufacturingPattern = regexp.MustCompile(`^J000\d{4}0[1-9]00$`)
	orderPattern         = regexp.MustCompile(`^[ONT]\d{4}$`)

	// Hiragana, katakana, kanji and the full-width symbol block. The
	// username must contain at least one rune from these ranges; anything
	// else may appear alongside.
	japaneseScriptPattern = regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}\x{FF00}-\x{FFEF}]`)
)

// formatRule pairs a field's acceptance pattern with the human-readable
// description and example surfaced on mismatch.
type formatRule struct {
	pattern *regexp.Regexp
	format  string
	example string
}

var formatRules = map[string]formatRule{
	FieldModelCode: {
		pattern: modelCodePattern,
		format:  "one of 100/200/201/350/351, then '-', 4 digits, '.', 6 digits",
		example: "201-2312.003000",
	},
	FieldManufacturingNumber: {
		pattern: manufacturingPattern,
		format:  "J000, then 4 digits, then 0, a digit 1-9, and 00",
		example: "J00023150100",
	},
	FieldOrderNumber: {
		pattern: orderPattern,
		format:  "O, N or T followed by 4 digits",
		example: "O2315",
	},
}

// FieldValidator validates each of the four fields independently against its
// format contract.
type FieldValidator struct{}

func NewFieldValidator() *FieldValidator {
	return &FieldValidator{}
}

// ValidateUsername requires a non-blank value containing at least one
// Japanese script character.
func (v *FieldValidator) ValidateUsername(username string) models.ValidationOutcome {
	if strings.TrimSpace(username) == "" {
		return failureOutcome(FieldUsername, apperrors.NewEmptyFieldError(FieldUsername))
	}

	containsJapanese := ozzo.By(func(value interface{}) error {
		s, _ := value.(string)
		if !japaneseScriptPattern.MatchString(s) {
			return apperrors.NewFormatMismatchError(FieldUsername,
				"must contain at least one Japanese character", "マキシンコー")
		}
		return nil
	})

	if err := ozzo.Validate(username, containsJapanese); err != nil {
		return failureOutcome(FieldUsername, err)
	}
	return okOutcome()
}

func (v *FieldValidator) ValidateModelCode(modelCode string) models.ValidationOutcome {
	return v.validateAgainstRule(FieldModelCode, modelCode)
}

func (v *FieldValidator) ValidateManufacturingNumber(manufacturing string) models.ValidationOutcome {
	return v.validateAgainstRule(FieldManufacturingNumber, manufacturing)
}

func (v *FieldValidator) ValidateOrderNumber(order string) models.ValidationOutcome {
	return v.validateAgainstRule(FieldOrderNumber, order)
}

func (v *FieldValidator) validateAgainstRule(fieldName, value string) models.ValidationOutcome {
	rule := formatRules[fieldName]

	if err := ozzo.Validate(value, ozzo.Required); err != nil {
		return failureOutcome(fieldName, apperrors.NewEmptyFieldError(fieldName))
	}
	if err := ozzo.Validate(value, ozzo.Match(rule.pattern)); err != nil {
		return failureOutcome(fieldName,
			apperrors.NewFormatMismatchError(fieldName, rule.format, rule.example))
	}
	return okOutcome()
}

func okOutcome() models.ValidationOutcome {
	return models.ValidationOutcome{Valid: true}
}

func failureOutcome(fieldName string, err error) models.ValidationOutcome {
	outcome := models.ValidationOutcome{
		Valid:     false,
		FieldName: fieldName,
		Message:   err.Error(),
	}
	if se, ok := err.(*apperrors.StandardError); ok {
		outcome.Code = string(se.Code)
		outcome.Message = se.Message
		if se.Details != "" {
			outcome.Message = se.Message + " (" + se.Details + ")"
		}
	}
	return outcome
}
