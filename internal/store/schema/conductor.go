package schema

import "github.com/feral-file/ionic-indexer/internal/relation"

// Conductor is a show operator registered on the conductors contract
type Conductor struct {
	// ID is derived from the on-chain conductor id
	ID string `gorm:"column:id;primaryKey;type:text" json:"id"`
	// ConductorID is the on-chain numeric id in decimal
	ConductorID string `gorm:"column:conductor_id;type:varchar(78);index" json:"conductor_id"`
	// Wallet is the conductor's address. Records created from a designer invite take the inviter address.
	Wallet string `gorm:"column:wallet;type:text;index" json:"wallet"`
	URI    string `gorm:"column:uri;type:text" json:"uri"`
	// BaseMetadata links to the resolved BaseMetadata content id, nil when the uri has none
	BaseMetadata *string `gorm:"column:base_metadata;type:text" json:"base_metadata"`

	// Aggregates, overwritten from the conductors contract on every touch
	AppraisalCount     string `gorm:"column:appraisal_count;type:varchar(78)" json:"appraisal_count"`
	TotalScore         string `gorm:"column:total_score;type:varchar(78)" json:"total_score"`
	AverageScore       string `gorm:"column:average_score;type:varchar(78)" json:"average_score"`
	ReviewCount        string `gorm:"column:review_count;type:varchar(78)" json:"review_count"`
	TotalReviewScore   string `gorm:"column:total_review_score;type:varchar(78)" json:"total_review_score"`
	AverageReviewScore string `gorm:"column:average_review_score;type:varchar(78)" json:"average_review_score"`
	InviteCount        string `gorm:"column:invite_count;type:varchar(78)" json:"invite_count"`
	AvailableInvites   string `gorm:"column:available_invites;type:varchar(78)" json:"available_invites"`

	Appraisals       relation.IDList `gorm:"column:appraisals" json:"appraisals"`
	Reviews          relation.IDList `gorm:"column:reviews" json:"reviews"`
	InvitedDesigners relation.IDList `gorm:"column:invited_designers" json:"invited_designers"`
	// NotAppraised lists the NFTs this conductor has not appraised yet
	NotAppraised relation.IDList `gorm:"column:not_appraised" json:"not_appraised"`

	BlockNumber     uint64 `gorm:"column:block_number" json:"block_number"`
	BlockTimestamp  int64  `gorm:"column:block_timestamp" json:"block_timestamp"`
	TransactionHash string `gorm:"column:transaction_hash;type:text" json:"transaction_hash"`
}

func (Conductor) TableName() string {
	return "conductors"
}

func (*Conductor) Kind() Kind {
	return KindConductor
}

func (c *Conductor) EntityID() string {
	return c.ID
}

// ConductorRegistry is the singleton index of all known conductors
type ConductorRegistry struct {
	ID string `gorm:"column:id;primaryKey;type:text" json:"id"`
	// ConductorIDs holds the on-chain numeric ids in decimal, in registration order
	ConductorIDs relation.IDList `gorm:"column:conductor_ids" json:"conductor_ids"`
}

func (ConductorRegistry) TableName() string {
	return "conductor_registries"
}

func (*ConductorRegistry) Kind() Kind {
	return KindConductorRegistry
}

func (r *ConductorRegistry) EntityID() string {
	return r.ID
}
