package models

import (
	"encoding/json"
	"fmt"

	"github.com/Waqasabid99/rms-backend/utils"
)

// Patch is a partial-update payload: a mapping of field name to new value.
// Each entity validates the keys against its own set of mutable fields
// before merging, so a typo or an attempt to rewrite an immutable field
// (identifiers, timestamps) fails with a validation error instead of being
// silently written through.
type Patch map[string]json.RawMessage

func (p Patch) Empty() bool {
	return len(p) == 0
}

func (p Patch) Has(field string) bool {
	_, ok := p[field]
	return ok
}

func decodePatchField(raw json.RawMessage, field string, dst interface{}) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return utils.NewValidationError(fmt.Sprintf("invalid value for field '%s'", field))
	}
	return nil
}

func unknownFieldError(field string) error {
	return utils.NewValidationError(fmt.Sprintf("field '%s' is unknown or immutable", field))
}
