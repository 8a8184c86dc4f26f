package dto

import (
	"fmt"
	"net/url"
	"strings"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ToResponse(errs []ValidationError) string {
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func validateCoverURL(coverURL string) []ValidationError {
	var errs []ValidationError
	if coverURL != "" {
		u, err := url.Parse(coverURL)
		if err != nil || !u.IsAbs() {
			errs = append(errs, ValidationError{Field: "cover_url", Message: "must be an absolute URL"})
		}
	}
	return errs
}
