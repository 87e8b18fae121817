package quiz

import (
	"time"

	"github.com/google/uuid"
)

// BundleSource records how a bundle's questions came to exist.
type BundleSource string

const (
	SourceExtracted BundleSource = "extracted"
	SourceGenerated BundleSource = "generated"
	SourceImported  BundleSource = "imported"
)

// Bundle is a named, persistable collection of questions.
type Bundle struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Source    BundleSource `json:"source"`
	Questions []Question   `json:"questions"`
	CreatedAt time.Time    `json:"createdAt"`
}

// NewBundle creates a Bundle with a fresh id and the current time.
func NewBundle(name string, source BundleSource, questions []Question) Bundle {
	return Bundle{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		Questions: questions,
		CreatedAt: time.Now().UTC(),
	}
}
