package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Validation struct {
	validator *validator.Validate
}

func NewValidation() *Validation {
	v := validator.New()
	v.RegisterValidation("promotype", validatePromotionType)
	v.RegisterValidation("paymentlink", validatePaymentLink)
	return &Validation{validator: v}
}

func validatePromotionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case PromotionPercentage, PromotionFixed:
		return true
	}
	return false
}

func validatePaymentLink(fl validator.FieldLevel) bool {
	return ValidPaymentLink(fl.Field().String())
}

// ValidPaymentLink checks a checkout URL for well-formedness only: empty
// means "not configured" and is acceptable, otherwise the link must use an
// allowed scheme.
func ValidPaymentLink(link string) bool {
	if link == "" {
		return true
	}
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}

// ValidationError wraps the validator's FieldError
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (v ValidationError) Error() string {
	return fmt.Sprintf("Field '%s': %s", v.Field, v.Message)
}

// ValidationErrors is a slice of ValidationError
type ValidationErrors []ValidationError

func (v *Validation) Validate(i interface{}) ValidationErrors {
	var errors ValidationErrors

	err := v.validator.Struct(i)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		for _, ve := range validationErrors {
			errors = append(errors, ValidationError{
				Field:   ve.Field(),
				Message: fmt.Sprintf("failed on the '%s' tag", ve.Tag()),
			})
		}
	}

	return errors
}

// ValidatePromotion runs the struct tags plus the cross-field window rules
// that tags cannot express. Promotions that fail here must never reach the
// resolver.
func (v *Validation) ValidatePromotion(p *Promotion, now time.Time) ValidationErrors {
	errs := v.Validate(p)

	if p.Type == PromotionPercentage && p.Value > 100 {
		errs = append(errs, ValidationError{
			Field:   "Value",
			Message: "percentage discount cannot exceed 100",
		})
	}

	if !p.StartDate.IsZero() && !p.EndDate.IsZero() {
		if !p.StartDate.Before(p.EndDate) {
			errs = append(errs, ValidationError{
				Field:   "EndDate",
				Message: ErrMalformedWindow.Error(),
			})
		} else if p.EndDate.Before(now) {
			errs = append(errs, ValidationError{
				Field:   "EndDate",
				Message: "promotion window cannot end in the past",
			})
		}
	}

	return errs
}
