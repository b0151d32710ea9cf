package schema

import "github.com/feral-file/ionic-indexer/internal/relation"

// Metadata is the resolved document linked from appraisals and reviews
type Metadata struct {
	// ID is the content id
	ID      string  `gorm:"column:id;primaryKey;type:text" json:"id"`
	Comment *string `gorm:"column:comment;type:text" json:"comment"`
	// Reactions lists ResponseMetadata ids in document order
	Reactions relation.IDList `gorm:"column:reactions" json:"reactions"`
	// ContentHash is the sha256 of the canonical JSON document
	ContentHash string `gorm:"column:content_hash;type:text" json:"content_hash"`
}

func (Metadata) TableName() string {
	return "metadata"
}

func (*Metadata) Kind() Kind {
	return KindMetadata
}

func (m *Metadata) EntityID() string {
	return m.ID
}

// ResponseMetadata is one entry of a Metadata reactions array
type ResponseMetadata struct {
	ID    string  `gorm:"column:id;primaryKey;type:text" json:"id"`
	Emoji *string `gorm:"column:emoji;type:text" json:"emoji"`
	Count string  `gorm:"column:count;type:varchar(78)" json:"count"`
}

func (ResponseMetadata) TableName() string {
	return "response_metadata"
}

func (*ResponseMetadata) Kind() Kind {
	return KindResponseMetadata
}

func (r *ResponseMetadata) EntityID() string {
	return r.ID
}

// BaseMetadata is the profile document of conductors, reviewers, designers and packs
type BaseMetadata struct {
	ID          string  `gorm:"column:id;primaryKey;type:text" json:"id"`
	Title       *string `gorm:"column:title;type:text" json:"title"`
	Description *string `gorm:"column:description;type:text" json:"description"`
	Image       *string `gorm:"column:image;type:text" json:"image"`
	ContentHash string  `gorm:"column:content_hash;type:text" json:"content_hash"`
}

func (BaseMetadata) TableName() string {
	return "base_metadata"
}

func (*BaseMetadata) Kind() Kind {
	return KindBaseMetadata
}

func (b *BaseMetadata) EntityID() string {
	return b.ID
}

// ReactionMetadata describes a single reaction and how it was generated
type ReactionMetadata struct {
	ID          string  `gorm:"column:id;primaryKey;type:text" json:"id"`
	Title       *string `gorm:"column:title;type:text" json:"title"`
	Description *string `gorm:"column:description;type:text" json:"description"`
	Image       *string `gorm:"column:image;type:text" json:"image"`
	Model       *string `gorm:"column:model;type:text" json:"model"`
	Workflow    *string `gorm:"column:workflow;type:text" json:"workflow"`
	Prompt      *string `gorm:"column:prompt;type:text" json:"prompt"`
	ContentHash string  `gorm:"column:content_hash;type:text" json:"content_hash"`
}

func (ReactionMetadata) TableName() string {
	return "reaction_metadata"
}

func (*ReactionMetadata) Kind() Kind {
	return KindReactionMetadata
}

func (r *ReactionMetadata) EntityID() string {
	return r.ID
}
