//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Answers represents the questionnaire submission collected by the funnel.
type Answers struct {
	Name             string         `json:"name,omitempty"`
	Email            string         `json:"email" validate:"required,email"`
	Role             string         `json:"role" validate:"required"`
	TeamSize         int            `json:"teamSize" validate:"min=0"`
	YearsLeading     int            `json:"yearsLeading" validate:"min=0,max=60"`
	BiggestChallenge string         `json:"biggestChallenge"`
	Goals            []string       `json:"goals"`
	FocusAreas       []string       `json:"focusAreas"`
	SelfRatings      map[string]int `json:"selfRatings" validate:"dive,min=1,max=5"`
}

// Validate validates the Answers using the validator.
func (a *Answers) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}
