package item

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Semantic version form MAJOR.MINOR.PATCH with an optional qualifier.
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

// Release groups work items under a version. The version string is unique
// across all releases and the item set is append-only once created.
type Release struct {
	ID        string
	Version   string
	Items     []string
	CreatedAt time.Time
}

// NewRelease creates an empty release for the given semantic version.
func NewRelease(version string, now time.Time) (Release, error) {
	version = strings.TrimSpace(version)
	if !semverPattern.MatchString(version) {
		return Release{}, &ValidationError{
			Field:  "version",
			Reason: fmt.Sprintf("%q is not of the form MAJOR.MINOR.PATCH[-qualifier]", version),
		}
	}
	return Release{
		ID:        uuid.NewString(),
		Version:   version,
		CreatedAt: now.UTC(),
	}, nil
}

// Contains reports whether the release already includes the item.
func (r Release) Contains(itemID string) bool {
	for _, id := range r.Items {
		if id == itemID {
			return true
		}
	}
	return false
}
