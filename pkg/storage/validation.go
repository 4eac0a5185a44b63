package storage

import "fmt"

// Codes carried by ContentValidationError.
const (
	CodeTooLarge = "file_too_large"
	CodeEmpty    = "empty_file"
)

// ContentValidationError reports why a named payload was rejected.
type ContentValidationError struct {
	Name    string
	Code    string
	Message string
}

func (e *ContentValidationError) Error() string {
	if e.Name == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Is makes every ContentValidationError match ErrInvalidContent.
func (e *ContentValidationError) Is(target error) bool {
	return target == ErrInvalidContent
}

// ValidationRule checks a decoded payload and its detected type.
type ValidationRule interface {
	Validate(name string, data []byte, mimeType string) error
}

// RuleFunc adapts a function to ValidationRule.
type RuleFunc func(name string, data []byte, mimeType string) error

func (f RuleFunc) Validate(name string, data []byte, mimeType string) error {
	return f(name, data, mimeType)
}

// ValidateContent runs rules in order and returns the first failure.
func ValidateContent(name string, data []byte, mimeType string, rules ...ValidationRule) error {
	for _, r := range rules {
		if err := r.Validate(name, data, mimeType); err != nil {
			return err
		}
	}
	return nil
}

// MaxSize rejects payloads larger than n bytes.
func MaxSize(n int64) ValidationRule {
	return RuleFunc(func(name string, data []byte, _ string) error {
		if int64(len(data)) > n {
			return &ContentValidationError{
				Name:    name,
				Code:    CodeTooLarge,
				Message: fmt.Sprintf("size %d exceeds limit of %d bytes", len(data), n),
			}
		}
		return nil
	})
}

// NotEmpty rejects zero-length payloads.
func NotEmpty() ValidationRule {
	return RuleFunc(func(name string, data []byte, _ string) error {
		if len(data) == 0 {
			return &ContentValidationError{Name: name, Code: CodeEmpty, Message: "content is empty"}
		}
		return nil
	})
}
