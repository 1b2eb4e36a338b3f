package license

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var (
	// emailRegexp is local@domain.tld where no part contains '@' or
	// whitespace. The whitespace class is the ECMAScript one, so U+2028 and
	// U+2029 are rejected along with every other Unicode separator.
	emailRegexp = regexp.MustCompile(`^[^\t\n\v\f\r\p{Z}\x{FEFF}@]+@[^\t\n\v\f\r\p{Z}\x{FEFF}@]+\.[^\t\n\v\f\r\p{Z}\x{FEFF}@]+$`)

	domainRegexp = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

	dateRegexp = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

// Validator checks the raw command line arguments of a license request.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator returns a Validator that compares expiry dates against now.
// A nil now uses the system clock.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}

	v := validator.New()
	mustRegister(v, "license_email", func(fl validator.FieldLevel) bool {
		email := fl.Field().String()
		return utf8.ValidString(email) && emailRegexp.MatchString(email)
	})
	mustRegister(v, "license_domain", func(fl validator.FieldLevel) bool {
		return domainRegexp.MatchString(fl.Field().String())
	})
	mustRegister(v, "license_date", func(fl validator.FieldLevel) bool {
		return dateRegexp.MatchString(fl.Field().String())
	})

	return &Validator{validate: v, now: now}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate turns exactly three arguments (email, domain, expiry date) into a
// License. Checks run in order and the first failure is returned, as an
// *Error of KindUsage or KindValidation.
func (v *Validator) Validate(args []string) (License, error) {
	if len(args) != 3 {
		return License{}, newError(KindUsage,
			fmt.Errorf("%w: expected 3 arguments, got %d", ErrMissingArgs, len(args)))
	}

	email, domain, expires := args[0], args[1], args[2]
	if email == "" || domain == "" || expires == "" {
		return License{}, newError(KindUsage, ErrMissingArgs)
	}

	checks := []struct {
		value string
		tag   string
		err   error
	}{
		{email, "license_email", ErrInvalidEmail},
		{domain, "license_domain", ErrInvalidDomain},
		{expires, "license_date", ErrInvalidDateFormat},
		{expires, "datetime=" + dateLayout, ErrInvalidDate},
	}
	for _, check := range checks {
		if err := v.validate.Var(check.value, check.tag); err != nil {
			return License{}, newError(KindValidation, fmt.Errorf("%w: %s", check.err, check.value))
		}
	}

	// A license expires at the very start of its expiry date, in UTC.
	expiry, err := time.ParseInLocation(dateLayout, expires, time.UTC)
	if err != nil {
		return License{}, newError(KindValidation, fmt.Errorf("%w: %s", ErrInvalidDate, expires))
	}

	if !expiry.After(v.now().UTC()) {
		return License{}, newError(KindValidation, fmt.Errorf("%w: %s", ErrExpiryNotInFuture, expires))
	}

	return License{
		LicensedTo: email,
		Domain:     domain,
		Expires:    expires,
	}, nil
}
