package schema

import "github.com/feral-file/ionic-indexer/internal/relation"

// ReactionPack is a purchasable bundle of reactions
type ReactionPack struct {
	ID     string `gorm:"column:id;primaryKey;type:text" json:"id"`
	PackID string `gorm:"column:pack_id;type:varchar(78)" json:"pack_id"`
	// Designer is the creator's wallet
	Designer string `gorm:"column:designer;type:text" json:"designer"`
	// DesignerProfile is the id of the creator's Designer entity
	DesignerProfile *string `gorm:"column:designer_profile;type:text" json:"designer_profile"`

	BasePrice              string `gorm:"column:base_price;type:varchar(78)" json:"base_price"`
	CurrentPrice           string `gorm:"column:current_price;type:varchar(78)" json:"current_price"`
	PriceIncrement         string `gorm:"column:price_increment;type:varchar(78)" json:"price_increment"`
	MaxEditions            string `gorm:"column:max_editions;type:varchar(78)" json:"max_editions"`
	SoldCount              string `gorm:"column:sold_count;type:varchar(78)" json:"sold_count"`
	ConductorReservedSpots string `gorm:"column:conductor_reserved_spots;type:varchar(78)" json:"conductor_reserved_spots"`
	Active                 bool   `gorm:"column:active" json:"active"`

	URI          string  `gorm:"column:uri;type:text" json:"uri"`
	BaseMetadata *string `gorm:"column:base_metadata;type:text" json:"base_metadata"`

	Reactions relation.IDList `gorm:"column:reactions" json:"reactions"`
	Purchases relation.IDList `gorm:"column:purchases" json:"purchases"`

	BlockNumber     uint64 `gorm:"column:block_number" json:"block_number"`
	BlockTimestamp  int64  `gorm:"column:block_timestamp" json:"block_timestamp"`
	TransactionHash string `gorm:"column:transaction_hash;type:text" json:"transaction_hash"`
}

func (ReactionPack) TableName() string {
	return "reaction_packs"
}

func (*ReactionPack) Kind() Kind {
	return KindReactionPack
}

func (p *ReactionPack) EntityID() string {
	return p.ID
}

// Reaction is one reaction inside a pack
type Reaction struct {
	ID         string `gorm:"column:id;primaryKey;type:text" json:"id"`
	ReactionID string `gorm:"column:reaction_id;type:varchar(78)" json:"reaction_id"`
	// Pack is the id of the owning ReactionPack
	Pack     *string `gorm:"column:pack;type:text;index" json:"pack"`
	URI      string  `gorm:"column:uri;type:text" json:"uri"`
	Metadata *string `gorm:"column:metadata;type:text" json:"metadata"`
	// TokenIDs holds the bound token ids in decimal as last read from the contract
	TokenIDs       relation.IDList `gorm:"column:token_ids" json:"token_ids"`
	TokenReactions relation.IDList `gorm:"column:token_reactions" json:"token_reactions"`
}

func (Reaction) TableName() string {
	return "reactions"
}

func (*Reaction) Kind() Kind {
	return KindReaction
}

func (r *Reaction) EntityID() string {
	return r.ID
}

// Purchase is one sale of a reaction pack edition
type Purchase struct {
	ID            string `gorm:"column:id;primaryKey;type:text" json:"id"`
	PurchaseID    string `gorm:"column:purchase_id;type:varchar(78)" json:"purchase_id"`
	Pack          string `gorm:"column:pack;type:text;index" json:"pack"`
	Buyer         string `gorm:"column:buyer;type:text" json:"buyer"`
	Price         string `gorm:"column:price;type:varchar(78)" json:"price"`
	EditionNumber string `gorm:"column:edition_number;type:varchar(78)" json:"edition_number"`
	ShareWeight   string `gorm:"column:share_weight;type:varchar(78)" json:"share_weight"`

	BlockNumber     uint64 `gorm:"column:block_number" json:"block_number"`
	BlockTimestamp  int64  `gorm:"column:block_timestamp" json:"block_timestamp"`
	TransactionHash string `gorm:"column:transaction_hash;type:text" json:"transaction_hash"`
}

func (Purchase) TableName() string {
	return "purchases"
}

func (*Purchase) Kind() Kind {
	return KindPurchase
}

func (p *Purchase) EntityID() string {
	return p.ID
}

// TokenReaction binds a reaction to one token
type TokenReaction struct {
	ID       string `gorm:"column:id;primaryKey;type:text" json:"id"`
	TokenID  string `gorm:"column:token_id;type:varchar(78)" json:"token_id"`
	Reaction string `gorm:"column:reaction;type:text;index" json:"reaction"`
}

func (TokenReaction) TableName() string {
	return "token_reactions"
}

func (*TokenReaction) Kind() Kind {
	return KindTokenReaction
}

func (t *TokenReaction) EntityID() string {
	return t.ID
}
