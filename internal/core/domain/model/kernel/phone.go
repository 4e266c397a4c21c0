package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"fueldelivery/internal/pkg/errs"
	"fueldelivery/internal/pkg/guard"
)

const (
	MinPhoneLength = 10
	MaxPhoneLength = 15
)

var (
	// ErrPhoneIsNotConstructed is returned when a Phone skipped NewPhone.
	ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("phone must be created via NewPhone")

	e164Pattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// Phone is a contact number in E.164 form, with or without the leading plus.
type Phone struct {
	number string
	guard  guard.ConstructorGuard
}

// NewPhone trims and validates a contact number.
func NewPhone(number string) (Phone, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}
	if len(number) < MinPhoneLength || len(number) > MaxPhoneLength {
		return Phone{}, errs.NewValueIsOutOfRangeError("phone length", len(number), MinPhoneLength, MaxPhoneLength)
	}
	if !e164Pattern.MatchString(number) {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("%s is not an E.164 number", number))
	}
	return Phone{number: number, guard: guard.NewConstructorGuard()}, nil
}

func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}

func (p Phone) String() string {
	return p.number
}
