package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// The snapshot types mirror the tuples returned by the contract view functions.
// Fields follow the tuple component order; the abi tags carry the component names.

// ReactionCount is one (count, reaction) entry cited by an appraisal or review
type ReactionCount struct {
	Count      *big.Int `abi:"count"`
	ReactionID *big.Int `abi:"reactionId"`
}

type Appraisal struct {
	Appraiser    common.Address  `abi:"appraiser"`
	NftID        *big.Int        `abi:"nftId"`
	ConductorID  *big.Int        `abi:"conductorId"`
	OverallScore *big.Int        `abi:"overallScore"`
	NftContract  common.Address  `abi:"nftContract"`
	URI          string          `abi:"uri"`
	Reactions    []ReactionCount `abi:"reactions"`
	Timestamp    *big.Int        `abi:"timestamp"`
}

type NFT struct {
	NftID          *big.Int       `abi:"nftId"`
	NftContract    common.Address `abi:"nftContract"`
	TokenID        *big.Int       `abi:"tokenId"`
	Submitter      common.Address `abi:"submitter"`
	TokenType      *big.Int       `abi:"tokenType"`
	Active         bool           `abi:"active"`
	AppraisalCount *big.Int       `abi:"appraisalCount"`
	TotalScore     *big.Int       `abi:"totalScore"`
	AverageScore   *big.Int       `abi:"averageScore"`
}

// ConductorStats holds the aggregates the conductors contract keeps per conductor
type ConductorStats struct {
	AppraisalCount     *big.Int `abi:"appraisalCount"`
	TotalScore         *big.Int `abi:"totalScore"`
	AverageScore       *big.Int `abi:"averageScore"`
	ReviewCount        *big.Int `abi:"reviewCount"`
	TotalReviewScore   *big.Int `abi:"totalReviewScore"`
	AverageReviewScore *big.Int `abi:"averageReviewScore"`
	InviteCount        *big.Int `abi:"inviteCount"`
	AvailableInvites   *big.Int `abi:"availableInvites"`
}

type Conductor struct {
	ConductorID *big.Int       `abi:"conductorId"`
	Wallet      common.Address `abi:"wallet"`
	URI         string         `abi:"uri"`
	Stats       ConductorStats `abi:"stats"`
}

type Review struct {
	ReviewID    *big.Int        `abi:"reviewId"`
	ConductorID *big.Int        `abi:"conductorId"`
	Reviewer    common.Address  `abi:"reviewer"`
	ReviewScore *big.Int        `abi:"reviewScore"`
	URI         string          `abi:"uri"`
	Reactions   []ReactionCount `abi:"reactions"`
}

// ReviewerStats holds the aggregates kept per reviewer wallet
type ReviewerStats struct {
	ReviewCount         *big.Int `abi:"reviewCount"`
	TotalScore          *big.Int `abi:"totalScore"`
	AverageScore        *big.Int `abi:"averageScore"`
	LastReviewTimestamp *big.Int `abi:"lastReviewTimestamp"`
}

type Reviewer struct {
	Wallet common.Address `abi:"wallet"`
	URI    string         `abi:"uri"`
	Stats  ReviewerStats  `abi:"stats"`
}

type Designer struct {
	DesignerID      *big.Int       `abi:"designerId"`
	Wallet          common.Address `abi:"wallet"`
	InvitedBy       common.Address `abi:"invitedBy"`
	URI             string         `abi:"uri"`
	Active          bool           `abi:"active"`
	PackCount       *big.Int       `abi:"packCount"`
	ReactionPackIDs []*big.Int     `abi:"reactionPackIds"`
}

type ReactionPack struct {
	PackID                 *big.Int       `abi:"packId"`
	Designer               common.Address `abi:"designer"`
	BasePrice              *big.Int       `abi:"basePrice"`
	CurrentPrice           *big.Int       `abi:"currentPrice"`
	MaxEditions            *big.Int       `abi:"maxEditions"`
	SoldCount              *big.Int       `abi:"soldCount"`
	ConductorReservedSpots *big.Int       `abi:"conductorReservedSpots"`
	Active                 bool           `abi:"active"`
	PackURI                string         `abi:"packUri"`
	ReactionIDs            []*big.Int     `abi:"reactionIds"`
}

type Purchase struct {
	PurchaseID    *big.Int       `abi:"purchaseId"`
	PackID        *big.Int       `abi:"packId"`
	Buyer         common.Address `abi:"buyer"`
	Price         *big.Int       `abi:"price"`
	EditionNumber *big.Int       `abi:"editionNumber"`
	ShareWeight   *big.Int       `abi:"shareWeight"`
}

type Reaction struct {
	ReactionID  *big.Int   `abi:"reactionId"`
	PackID      *big.Int   `abi:"packId"`
	ReactionURI string     `abi:"reactionUri"`
	TokenIDs    []*big.Int `abi:"tokenIds"`
}
