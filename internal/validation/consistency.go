package validation

import (
	apperrors "inspection-rpa/internal/common/errors"
	"inspection-rpa/internal/models"
)

// ConsistencyChecker enforces the single multi-field invariant:
// manufacturing batch identity and order identity must reference the same
// internal sequence number.
type ConsistencyChecker struct{}

func NewConsistencyChecker() *ConsistencyChecker {
	return &ConsistencyChecker{}
}

// Check compares the 4-digit segment after the J000 prefix of the
// manufacturing number with the 4 digits after the class letter of the order
// number. Both inputs must already have passed their field checks, which fix
// their lengths.
func (c *ConsistencyChecker) Check(manufacturing, order string) models.ValidationOutcome {
	manufacturingSegment := manufacturing[4:8]
	orderSegment := order[1:5]

	if manufacturingSegment != orderSegment {
		err := apperrors.NewCrossFieldMismatchError(manufacturingSegment, orderSegment)
		return models.ValidationOutcome{
			Valid:     false,
			FieldName: FieldOrderNumber,
			Code:      string(err.Code),
			Message:   err.Message + " (" + err.Details + ")",
		}
	}
	return okOutcome()
}
