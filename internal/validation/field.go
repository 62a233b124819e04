package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// Field records whether a JSON member was present and whether it decoded as T.
// A member with the wrong JSON type, or an explicit null, is Set but not Valid,
// so it can be reported as a rule violation instead of aborting decoding.
type Field[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// UnmarshalJSON implements json.Unmarshaler. It never fails.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	f.Valid = false
	if string(data) == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	f.Value = v
	f.Valid = true
	return nil
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validate holds the value rules of every payload. Field presence and JSON
// types are tracked by Field; validate only sees members that decoded.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "email_address", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "bcrypt_max", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= domain.MaxPasswordBytes
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// member is one payload member and the message reported when it is missing
// (and required), mistyped, or fails the validator tags of rule, a field of
// the rules struct. Members with only a type rule leave rule empty.
type member struct {
	rule     string
	set      bool
	valid    bool
	required bool
	message  string
}

func memberOf[T any](rule string, f Field[T], required bool, message string) member {
	return member{rule: rule, set: f.Set, valid: f.Valid, required: required, message: message}
}

// check evaluates every member collect-all and returns the violation
// messages in member order, each at most once.
func check(rules any, members []member) []string {
	var partial []string
	for _, m := range members {
		if m.rule != "" && m.set && m.valid {
			partial = append(partial, m.rule)
		}
	}
	failed := failedRules(rules, partial)

	var violations []string
	seen := make(map[string]bool)
	for _, m := range members {
		bad := (m.required && !m.set) || (m.set && !m.valid) || failed[m.rule]
		if bad && !seen[m.message] {
			seen[m.message] = true
			violations = append(violations, m.message)
		}
	}
	return violations
}

// failedRules runs the validator over the named fields of rules and returns
// the names of the fields that failed.
func failedRules(rules any, fields []string) map[string]bool {
	failed := make(map[string]bool)
	if len(fields) == 0 {
		return failed
	}

	err := validate.StructPartial(rules, fields...)
	if err == nil {
		return failed
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		panic(fmt.Sprintf("validation: %T is not a rules struct: %v", rules, err))
	}
	for _, fe := range fieldErrs {
		failed[fe.StructField()] = true
	}
	return failed
}
