package validation

import "inspection-rpa/internal/models"

// Pipeline composes the field checks and the consistency check into one
// pass/fail decision. Checks run in fixed order (username, model,
// manufacturing, order) and the first failure is returned immediately; the
// consistency check runs only when all four fields pass individually.
type Pipeline struct {
	fields      *FieldValidator
	consistency *ConsistencyChecker
}

func NewPipeline() *Pipeline {
	return &Pipeline{
		fields:      NewFieldValidator(),
		consistency: NewConsistencyChecker(),
	}
}

// Run validates the record. Pure function of its input; a valid outcome
// means the record is eligible for document mutation.
func (p *Pipeline) Run(record models.CandidateRecord) models.ValidationOutcome {
	checks := []func() models.ValidationOutcome{
		func() models.ValidationOutcome { return p.fields.ValidateUsername(record.Username) },
		func() models.ValidationOutcome { return p.fields.ValidateModelCode(record.ModelCode) },
		func() models.ValidationOutcome {
			return p.fields.ValidateManufacturingNumber(record.ManufacturingNumber)
		},
		func() models.ValidationOutcome { return p.fields.ValidateOrderNumber(record.OrderNumber) },
	}

	for _, check := range checks {
		if outcome := check(); !outcome.Valid {
			return outcome
		}
	}

	return p.consistency.Check(record.ManufacturingNumber, record.OrderNumber)
}
