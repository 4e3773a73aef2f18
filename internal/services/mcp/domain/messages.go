package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "github.com/louisbranch/resolve-mcp/internal/platform/errors"
	"github.com/louisbranch/resolve-mcp/internal/resolve"
)

// Fixed sentences shared by resources and tools.
const (
	NotConnectedText    = "Not connected to DaVinci Resolve."
	NoProjectText       = "No project open."
	NoTimelineText      = "No timeline open."
	NoMediaPoolText     = "No media pool available."
	NoCurrentFolderText = "No current folder."
)

// explain renders why a result carries no value.
func explain(err error) string {
	var domainErr *apperrors.Error
	if !apperrors.As(err, &domainErr) {
		return "Unexpected error."
	}
	switch domainErr.Code {
	case apperrors.CodeNotConnected, apperrors.CodeModuleNotFound:
		return NotConnectedText
	}
	if domainErr.Message == "no media pool" {
		return NoMediaPoolText
	}
	return sentence(domainErr.Message)
}

// sentence capitalises s and ends it with a period.
func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

// reply picks the sentence for r. A missing handle explains itself; a
// rejected or failed call renders failure.
func reply[T any](r resolve.Result[T], success func(T) string, failure string) string {
	switch r.Status {
	case resolve.StatusOK:
		return success(r.Value)
	case resolve.StatusAbsent:
		return explain(r.Err)
	default:
		return failure
	}
}

// done ignores the value of a successful call.
func done[T any](text string) func(T) string {
	return func(T) string { return text }
}

func notFound(kind, name string) string {
	return fmt.Sprintf("%s '%s' not found.", kind, name)
}

// lines joins entries one per line, or returns empty when there are none.
func lines(entries []string, empty string) string {
	if len(entries) == 0 {
		return empty
	}
	return strings.Join(entries, "\n")
}
