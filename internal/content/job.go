package content

import (
	"fmt"

	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

// Shape is the target record type a content document is decoded into
type Shape string

const (
	// ShapeMetadata is the appraisal and review document with comment and reactions
	ShapeMetadata Shape = "metadata"
	// ShapeBaseMetadata is the profile document with title, description and image
	ShapeBaseMetadata Shape = "base_metadata"
	// ShapeReactionMetadata describes a reaction and how it was generated
	ShapeReactionMetadata Shape = "reaction_metadata"
)

// Kind returns the store kind of the primary record of the shape
func (s Shape) Kind() (schema.Kind, error) {
	switch s {
	case ShapeMetadata:
		return schema.KindMetadata, nil
	case ShapeBaseMetadata:
		return schema.KindBaseMetadata, nil
	case ShapeReactionMetadata:
		return schema.KindReactionMetadata, nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedShape, s)
	}
}

// Job asks for the document addressed by ContentID to be decoded into Shape
type Job struct {
	Shape     Shape  `json:"shape"`
	ContentID string `json:"contentId"`
}

// Key identifies the job, two jobs with the same key produce the same records
func (j Job) Key() string {
	return fmt.Sprintf("%s-%s", j.Shape, j.ContentID)
}
