// Package venues holds the venue entity and the service implementing its
// create, read, list, update and delete operations.
package venues

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Attribute names shared by the JSON body and the DynamoDB item.
const (
	AttrVenueID             = "venueID"
	AttrVenueDescription    = "venueDescription"
	AttrAccountID           = "accountID"
	AttrAccountDenomination = "accountDenomination"
	AttrAccountDescription  = "accountDescription"
)

// Venue struct for the venues table
type Venue struct {
	VenueID             string `json:"venueID" dynamodbav:"venueID"`
	VenueDescription    string `json:"venueDescription" dynamodbav:"venueDescription"`
	AccountID           string `json:"accountID" dynamodbav:"accountID"`
	AccountDenomination string `json:"accountDenomination" dynamodbav:"accountDenomination"`
	AccountDescription  string `json:"accountDescription" dynamodbav:"accountDescription"`
}

// Input carries the client supplied fields of a venue. It is the body of
// both the create and the update requests. A nil field is missing; an
// empty string is a valid value.
type Input struct {
	VenueDescription    *string `json:"venueDescription" validate:"required"`
	AccountID           *string `json:"accountID" validate:"required"`
	AccountDenomination *string `json:"accountDenomination" validate:"required"`
	AccountDescription  *string `json:"accountDescription" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that every required field is present. The returned
// error is of kind KindInvalidInput.
func (in Input) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return newError(KindInvalidInput, err.Error(), err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return newError(KindInvalidInput, strings.Join(msgs, "; "), err)
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// withID assembles the full record stored under id. in must have passed
// Validate.
func (in Input) withID(id string) Venue {
	return Venue{
		VenueID:             id,
		VenueDescription:    *in.VenueDescription,
		AccountID:           *in.AccountID,
		AccountDenomination: *in.AccountDenomination,
		AccountDescription:  *in.AccountDescription,
	}
}
