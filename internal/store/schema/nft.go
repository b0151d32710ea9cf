package schema

import "github.com/feral-file/ionic-indexer/internal/relation"

// NFT is a token submitted to the appraisals contract
type NFT struct {
	ID          string `gorm:"column:id;primaryKey;type:text" json:"id"`
	NftID       string `gorm:"column:nft_id;type:varchar(78);index" json:"nft_id"`
	NftContract string `gorm:"column:nft_contract;type:text" json:"nft_contract"`
	TokenID     string `gorm:"column:token_id;type:varchar(78)" json:"token_id"`
	Submitter   string `gorm:"column:submitter;type:text" json:"submitter"`
	TokenType   string `gorm:"column:token_type;type:varchar(78)" json:"token_type"`
	Active      bool   `gorm:"column:active" json:"active"`

	// Aggregates, overwritten from the appraisals contract on every touch
	AppraisalCount string `gorm:"column:appraisal_count;type:varchar(78)" json:"appraisal_count"`
	TotalScore     string `gorm:"column:total_score;type:varchar(78)" json:"total_score"`
	AverageScore   string `gorm:"column:average_score;type:varchar(78)" json:"average_score"`

	Appraisals relation.IDList `gorm:"column:appraisals" json:"appraisals"`

	BlockNumber     uint64 `gorm:"column:block_number" json:"block_number"`
	BlockTimestamp  int64  `gorm:"column:block_timestamp" json:"block_timestamp"`
	TransactionHash string `gorm:"column:transaction_hash;type:text" json:"transaction_hash"`
}

func (NFT) TableName() string {
	return "nfts"
}

func (*NFT) Kind() Kind {
	return KindNFT
}

func (n *NFT) EntityID() string {
	return n.ID
}

// Appraisal is one appraisal of an NFT by a conductor
type Appraisal struct {
	ID           string `gorm:"column:id;primaryKey;type:text" json:"id"`
	AppraisalID  string `gorm:"column:appraisal_id;type:varchar(78)" json:"appraisal_id"`
	Appraiser    string `gorm:"column:appraiser;type:text" json:"appraiser"`
	NFT          string `gorm:"column:nft;type:text;index" json:"nft"`
	Conductor    string `gorm:"column:conductor;type:text;index" json:"conductor"`
	OverallScore string `gorm:"column:overall_score;type:varchar(78)" json:"overall_score"`
	NftContract  string `gorm:"column:nft_contract;type:text" json:"nft_contract"`
	URI          string `gorm:"column:uri;type:text" json:"uri"`
	// Metadata links to the resolved Metadata content id
	Metadata *string `gorm:"column:metadata;type:text" json:"metadata"`
	// Reactions lists ReactionUsage ids
	Reactions relation.IDList `gorm:"column:reactions" json:"reactions"`
	// TokenType is copied from the NFT when it is indexed, nil otherwise
	TokenType *string `gorm:"column:token_type;type:varchar(78)" json:"token_type"`

	BlockNumber     uint64 `gorm:"column:block_number" json:"block_number"`
	BlockTimestamp  int64  `gorm:"column:block_timestamp" json:"block_timestamp"`
	TransactionHash string `gorm:"column:transaction_hash;type:text" json:"transaction_hash"`
}

func (Appraisal) TableName() string {
	return "appraisals"
}

func (*Appraisal) Kind() Kind {
	return KindAppraisal
}

func (a *Appraisal) EntityID() string {
	return a.ID
}

// ReactionUsage is a (count, reaction) pair shared by every appraisal or review citing it
type ReactionUsage struct {
	ID         string `gorm:"column:id;primaryKey;type:text" json:"id"`
	Count      string `gorm:"column:count;type:varchar(78)" json:"count"`
	ReactionID string `gorm:"column:reaction_id;type:varchar(78)" json:"reaction_id"`
	// Reaction is the id of the referenced Reaction entity
	Reaction string `gorm:"column:reaction;type:text" json:"reaction"`
}

func (ReactionUsage) TableName() string {
	return "reaction_usages"
}

func (*ReactionUsage) Kind() Kind {
	return KindReactionUsage
}

func (r *ReactionUsage) EntityID() string {
	return r.ID
}
