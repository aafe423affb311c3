package recording

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"flightrec/internal/journal"
)

const artifactTimeLayout = "20060102_150405"

// newArtifactPath generates a fresh artifact path in dir. The monotonic
// timestamp component keeps names sortable by start time; the uuid fragment
// makes collisions within the same second impossible.
func newArtifactPath(dir string, now time.Time) string {
	stamp := now.UTC().Format(artifactTimeLayout)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name := fmt.Sprintf("capture_%s_%s%s", stamp, suffix, journal.VideoExt)
	return filepath.Join(dir, name)
}
