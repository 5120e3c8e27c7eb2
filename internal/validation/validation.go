// Package validation checks venue and event input with go-playground/validator and
// reports every problem as one field->message map.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"eventcatalog/internal/domain"
)

var phoneRegexp = regexp.MustCompile(`^[+]?[0-9]{10,15}$`)

// Price bounds: at most 10 integer digits and 2 fraction digits.
var maxPrice = decimal.New(1, 10)

const priceScale = 2

// Validator validates catalog input.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the catalog's custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})
	mustRegister(v, "venue_status", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseVenueStatus(fl.Field().String())
		return ok
	})
	mustRegister(v, "event_status", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseEventStatus(fl.Field().String())
		return ok
	})
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Venue validates in and returns every field problem, or nil.
func (v *Validator) Venue(in domain.VenueInput) *domain.ValidationError {
	verr := domain.NewValidationError()
	v.structErrors(in, verr)
	if verr.Empty() {
		return nil
	}
	return verr
}

// Event validates in, including date ordering and the ticket price format, and
// returns every field problem, or nil. Whether eventDate is in the future depends
// on the operation and is left to the caller.
func (v *Validator) Event(in domain.EventInput) *domain.ValidationError {
	verr := domain.NewValidationError()
	v.structErrors(in, verr)

	if in.EventDate != nil && in.EndDate != nil && !in.EndDate.After(*in.EventDate) {
		verr.Add("endDate", "must be after eventDate")
	}
	if msg := checkPrice(in.TicketPrice); msg != "" {
		verr.Add("ticketPrice", msg)
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

func checkPrice(p decimal.Decimal) string {
	switch {
	case p.Sign() <= 0:
		return "must be greater than 0"
	case p.GreaterThanOrEqual(maxPrice):
		return "must have at most 10 integer digits"
	case !p.Equal(p.Round(priceScale)):
		return "must have at most 2 decimal places"
	}
	return ""
}

func (v *Validator) structErrors(s any, verr *domain.ValidationError) {
	err := v.validate.Struct(s)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("_", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must have 10 to 15 digits, optionally prefixed by +"
	case "venue_status":
		return "must be one of ACTIVE, INACTIVE, MAINTENANCE"
	case "event_status":
		return "must be one of SCHEDULED, ACTIVE, CANCELLED, COMPLETED"
	}
	return "is invalid"
}
