package schema

import "github.com/feral-file/ionic-indexer/internal/relation"

// Designer creates reaction packs after being invited by a conductor
type Designer struct {
	ID         string `gorm:"column:id;primaryKey;type:text" json:"id"`
	DesignerID string `gorm:"column:designer_id;type:varchar(78)" json:"designer_id"`
	Wallet     string `gorm:"column:wallet;type:text;index" json:"wallet"`
	// InvitedBy is the id of the inviting Conductor
	InvitedBy       *string `gorm:"column:invited_by;type:text" json:"invited_by"`
	InviteTimestamp int64   `gorm:"column:invite_timestamp" json:"invite_timestamp"`
	Active          bool    `gorm:"column:active" json:"active"`
	PackCount       string  `gorm:"column:pack_count;type:varchar(78)" json:"pack_count"`
	URI             string  `gorm:"column:uri;type:text" json:"uri"`
	BaseMetadata    *string `gorm:"column:base_metadata;type:text" json:"base_metadata"`

	ReactionPacks relation.IDList `gorm:"column:reaction_packs" json:"reaction_packs"`

	BlockNumber     uint64 `gorm:"column:block_number" json:"block_number"`
	BlockTimestamp  int64  `gorm:"column:block_timestamp" json:"block_timestamp"`
	TransactionHash string `gorm:"column:transaction_hash;type:text" json:"transaction_hash"`
}

func (Designer) TableName() string {
	return "designers"
}

func (*Designer) Kind() Kind {
	return KindDesigner
}

func (d *Designer) EntityID() string {
	return d.ID
}
