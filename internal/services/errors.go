package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFormat        = errors.New("format error")
	ErrValidation    = errors.New("validation error")
	ErrPrecondition  = errors.New("precondition error")
	ErrExternalTool  = errors.New("external tool error")
	ErrSelection     = errors.New("selection error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
)

var markers = []struct {
	err  error
	kind string
}{
	{ErrFormat, "format"},
	{ErrValidation, "validation"},
	{ErrPrecondition, "precondition"},
	{ErrExternalTool, "external_tool"},
	{ErrSelection, "selection"},
	{ErrConfiguration, "configuration"},
	{ErrNotFound, "not_found"},
}

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns the short label of the first marker found in err's chain, or
// "unknown" when err carries none.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range markers {
		if errors.Is(err, m.err) {
			return m.kind
		}
	}
	return "unknown"
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
