package reader

import "fmt"

// ParseError reports malformed source content. Chapter names the
// offending chapter or section when identifiable. Parse failures are
// fatal for the session; there is no partial-document fallback.
type ParseError struct {
	Chapter string
	Msg     string
}

func (e *ParseError) Error() string {
	if e.Chapter != "" {
		return fmt.Sprintf("failed to parse chapter %s: %s", e.Chapter, e.Msg)
	}
	return e.Msg
}
