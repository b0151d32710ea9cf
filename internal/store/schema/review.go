package schema

import "github.com/feral-file/ionic-indexer/internal/relation"

// Reviewer is a wallet that reviews conductors
type Reviewer struct {
	ID           string  `gorm:"column:id;primaryKey;type:text" json:"id"`
	Wallet       string  `gorm:"column:wallet;type:text" json:"wallet"`
	URI          string  `gorm:"column:uri;type:text" json:"uri"`
	BaseMetadata *string `gorm:"column:base_metadata;type:text" json:"base_metadata"`

	ReviewCount         string `gorm:"column:review_count;type:varchar(78)" json:"review_count"`
	TotalScore          string `gorm:"column:total_score;type:varchar(78)" json:"total_score"`
	AverageScore        string `gorm:"column:average_score;type:varchar(78)" json:"average_score"`
	LastReviewTimestamp string `gorm:"column:last_review_timestamp;type:varchar(78)" json:"last_review_timestamp"`

	Reviews relation.IDList `gorm:"column:reviews" json:"reviews"`
}

func (Reviewer) TableName() string {
	return "reviewers"
}

func (*Reviewer) Kind() Kind {
	return KindReviewer
}

func (r *Reviewer) EntityID() string {
	return r.ID
}

// Review is one review of a conductor
type Review struct {
	ID          string          `gorm:"column:id;primaryKey;type:text" json:"id"`
	ReviewID    string          `gorm:"column:review_id;type:varchar(78)" json:"review_id"`
	Reviewer    string          `gorm:"column:reviewer;type:text;index" json:"reviewer"`
	Conductor   string          `gorm:"column:conductor;type:text;index" json:"conductor"`
	ReviewScore string          `gorm:"column:review_score;type:varchar(78)" json:"review_score"`
	URI         string          `gorm:"column:uri;type:text" json:"uri"`
	Metadata    *string         `gorm:"column:metadata;type:text" json:"metadata"`
	Reactions   relation.IDList `gorm:"column:reactions" json:"reactions"`

	BlockNumber     uint64 `gorm:"column:block_number" json:"block_number"`
	BlockTimestamp  int64  `gorm:"column:block_timestamp" json:"block_timestamp"`
	TransactionHash string `gorm:"column:transaction_hash;type:text" json:"transaction_hash"`
}

func (Review) TableName() string {
	return "reviews"
}

func (*Review) Kind() Kind {
	return KindReview
}

func (r *Review) EntityID() string {
	return r.ID
}
