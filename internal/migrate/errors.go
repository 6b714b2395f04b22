package migrate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema marks a violated source-schema assumption, such as an
	// unrecognized essence type. Always fatal.
	ErrSchema = errors.New("schema error")
	// ErrConfiguration marks invalid or incomplete configuration, such as a
	// source locale with no Contentful mapping. Always fatal.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks a missing remote record.
	ErrNotFound = errors.New("not found")
	// ErrRemote marks a failed call to the Contentful API.
	ErrRemote = errors.New("remote error")
)

// Wrap builds an error message that includes item context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, subject, message string, err error) error {
	detail := buildDetail(component, subject, message)
	if marker == nil {
		marker = ErrRemote
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether an error must abort the whole run rather than just
// the item that produced it.
func Fatal(err error) bool {
	return errors.Is(err, ErrSchema) || errors.Is(err, ErrConfiguration)
}

func buildDetail(component, subject, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if subject = strings.TrimSpace(subject); subject != "" {
		parts = append(parts, subject)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "migration failure"
	}
	return strings.Join(parts, ": ")
}
