package content

import (
	"context"

	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/metrics"
	"github.com/feral-file/ionic-indexer/internal/relation"
	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

// Parser decodes content documents into store records
type Parser struct {
	metrics *metrics.Metrics
	// legacyDescription copies the title into the BaseMetadata description
	// whenever a description is present, as deployed indexers have always done
	legacyDescription bool
}

// NewParser creates a parser
func NewParser(m *metrics.Metrics, legacyDescription bool) *Parser {
	return &Parser{metrics: m, legacyDescription: legacyDescription}
}

// Parse decodes raw into the records of shape. The primary record is last.
// ok is false when raw is not a JSON object, in which case nothing is stored.
func (p *Parser) Parse(ctx context.Context, job Job, raw []byte) ([]schema.Entity, bool, error) {
	doc, ok := decodeObject(raw)
	if !ok {
		// Validate the shape even when the payload is unusable
		if _, err := job.Shape.Kind(); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	e := &extractor{ctx: ctx, shape: job.Shape, contentID: job.ContentID, metrics: p.metrics}

	switch job.Shape {
	case ShapeMetadata:
		return p.metadata(e, job.ContentID, doc), true, nil
	case ShapeBaseMetadata:
		return []schema.Entity{p.baseMetadata(e, job.ContentID, doc)}, true, nil
	case ShapeReactionMetadata:
		return []schema.Entity{p.reactionMetadata(e, job.ContentID, doc)}, true, nil
	default:
		_, err := job.Shape.Kind()
		return nil, false, err
	}
}

func (p *Parser) metadata(e *extractor, id string, doc document) []schema.Entity {
	m := &schema.Metadata{
		ID:      id,
		Comment: e.str(doc, "comment"),
	}

	var records []schema.Entity
	if items, ok := doc["reactions"].([]interface{}); ok {
		m.Reactions = relation.IDList{}
		for i, item := range items {
			obj, ok := item.(map[string]interface{})
			if !ok {
				continue
			}

			reaction := &schema.ResponseMetadata{
				ID:    domain.ResponseMetadataID(id, i),
				Emoji: e.str(obj, "emoji"),
				Count: e.number(obj, "count"),
			}
			records = append(records, reaction)
			m.Reactions = m.Reactions.Append(reaction.ID)
		}
	}

	return append(records, m)
}

func (p *Parser) baseMetadata(e *extractor, id string, doc document) *schema.BaseMetadata {
	m := &schema.BaseMetadata{
		ID:          id,
		Title:       e.str(doc, "title"),
		Description: e.str(doc, "description"),
		Image:       e.str(doc, "image"),
	}

	if p.legacyDescription && m.Description != nil {
		m.Description = m.Title
	}

	return m
}

func (p *Parser) reactionMetadata(e *extractor, id string, doc document) *schema.ReactionMetadata {
	return &schema.ReactionMetadata{
		ID:          id,
		Title:       e.str(doc, "title"),
		Description: e.str(doc, "description"),
		Image:       e.str(doc, "image"),
		Model:       e.str(doc, "model"),
		Workflow:    e.str(doc, "workflow"),
		Prompt:      e.str(doc, "prompt"),
	}
}
