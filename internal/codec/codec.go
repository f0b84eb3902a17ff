package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"hospitalops/internal/domain"
)

// Importer interface for importing a hospital directory from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Directory, error)
	Format() string
}

// Exporter interface for exporting a hospital directory to various formats
type Exporter interface {
	Export(dir *domain.Directory, w io.Writer) error
	Format() string
}

// Codec both imports and exports
type Codec interface {
	Importer
	Exporter
}

// entryNamespace scopes the ids derived for entries that arrive without one
var entryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("hospitalops/directory"))

// ForFormat returns the codec for "json" or "yaml" ("yml" is accepted)
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// normalize fills in what a hand-written file usually leaves out. Entries
// without a name are rejected.
func normalize(dir *domain.Directory) error {
	for i := range dir.Hospitals {
		e := &dir.Hospitals[i]
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return fmt.Errorf("hospital %d: name required", i)
		}
		if e.ID == "" {
			e.ID = uuid.NewSHA1(entryNamespace, []byte(e.Key())).String()
		}
		if len(e.Specializations) == 0 {
			e.Specializations = append([]string(nil), domain.DefaultSpecializations...)
		}
		if e.EmergencyRating == "" {
			e.EmergencyRating = domain.RatingForOccupancy(e.Occupancy)
		}
	}
	return nil
}
