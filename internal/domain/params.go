package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Params of the appraisals contract events

type AppraisalCreatedParams struct {
	Appraiser    common.Address `json:"appraiser"`
	NftID        *big.Int       `json:"nftId"`
	ConductorID  *big.Int       `json:"conductorId"`
	AppraisalID  *big.Int       `json:"appraisalId"`
	OverallScore *big.Int       `json:"overallScore"`
}

type NFTSubmittedParams struct {
	NftID       *big.Int       `json:"nftId"`
	TokenID     *big.Int       `json:"tokenId"`
	Submitter   common.Address `json:"submitter"`
	TokenType   *big.Int       `json:"tokenType"`
	NftContract common.Address `json:"nftContract"`
}

type NFTRemovedParams struct {
	NftID *big.Int `json:"nftId"`
}

// Params of the conductors contract events

type ConductorRegisteredParams struct {
	Wallet      common.Address `json:"wallet"`
	ConductorID *big.Int       `json:"conductorId"`
	URI         string         `json:"uri"`
}

type ConductorDeletedParams struct {
	ConductorID *big.Int `json:"conductorId"`
}

type ConductorUpdatedParams struct {
	ConductorID *big.Int `json:"conductorId"`
	URI         string   `json:"uri"`
}

type ConductorStatsUpdatedParams struct {
	ConductorID *big.Int `json:"conductorId"`
}

type ReviewSubmittedParams struct {
	Reviewer    common.Address `json:"reviewer"`
	ConductorID *big.Int       `json:"conductorId"`
	ReviewID    *big.Int       `json:"reviewId"`
	ReviewScore *big.Int       `json:"reviewScore"`
}

type ReviewerURIUpdatedParams struct {
	Reviewer common.Address `json:"reviewer"`
	URI      string         `json:"uri"`
}

// Params of the designers contract events

type DesignerInvitedParams struct {
	Designer   common.Address `json:"designer"`
	Inviter    common.Address `json:"inviter"`
	DesignerID *big.Int       `json:"designerId"`
}

type DesignerDeactivatedParams struct {
	DesignerID *big.Int `json:"designerId"`
}

type DesignerURIParams struct {
	DesignerID *big.Int `json:"designerId"`
	URI        string   `json:"uri"`
}

// Params of the reaction packs contract events

type ReactionPackCreatedParams struct {
	Designer               common.Address `json:"designer"`
	PackID                 *big.Int       `json:"packId"`
	BasePrice              *big.Int       `json:"basePrice"`
	MaxEditions            *big.Int       `json:"maxEditions"`
	ConductorReservedSpots *big.Int       `json:"conductorReservedSpots"`
}

type ReactionAddedParams struct {
	PackID      *big.Int `json:"packId"`
	ReactionID  *big.Int `json:"reactionId"`
	ReactionURI string   `json:"reactionUri"`
}

type PackPurchasedParams struct {
	Buyer         common.Address `json:"buyer"`
	PackID        *big.Int       `json:"packId"`
	Price         *big.Int       `json:"price"`
	PurchaseID    *big.Int       `json:"purchaseId"`
	EditionNumber *big.Int       `json:"editionNumber"`
}
