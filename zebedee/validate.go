package zebedee

import (
	"fmt"
	"net/mail"
	"net/url"
	"unicode/utf8"
)

// Validation rule identifiers carried on a Violation.
const (
	RuleRequired  = "required"
	RuleMinLength = "min_length"
	RuleLength    = "length"
	RuleEmail     = "email"
	RuleURL       = "url"
	RuleMatch     = "match"
)

// Violation describes one field that failed local validation.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Field + ": " + v.Message
}

// Validator is implemented by request payloads checked before dispatch.
type Validator interface {
	Validate() []Violation
}

// check runs v.Validate and converts any violations into an *Error.
func check(v Validator) error {
	if violations := v.Validate(); len(violations) > 0 {
		return validationError(violations)
	}
	return nil
}

func required(field, value string) []Violation {
	if value == "" {
		return []Violation{{Field: field, Rule: RuleRequired, Message: "must not be empty"}}
	}
	return nil
}

func minLength(field, value string, n int) []Violation {
	if utf8.RuneCountInString(value) < n {
		return []Violation{{
			Field:   field,
			Rule:    RuleMinLength,
			Message: fmt.Sprintf("must be at least %d characters", n),
		}}
	}
	return nil
}

func exactLength(field, value string, n int) []Violation {
	if utf8.RuneCountInString(value) != n {
		return []Violation{{
			Field:   field,
			Rule:    RuleLength,
			Message: fmt.Sprintf("must be exactly %d characters", n),
		}}
	}
	return nil
}

// emailShaped accepts a bare addr-spec such as "user@domain.com". Display
// names and angle brackets are rejected.
func emailShaped(field, value string) []Violation {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Name != "" || addr.Address != value {
		return []Violation{{Field: field, Rule: RuleEmail, Message: "must be an email-shaped address"}}
	}
	return nil
}

func absoluteURL(field, value string) []Violation {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return []Violation{{Field: field, Rule: RuleURL, Message: "must be an absolute URL"}}
	}
	return nil
}

// collect flattens the results of individual rule checks.
func collect(groups ...[]Violation) []Violation {
	var out []Violation
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
