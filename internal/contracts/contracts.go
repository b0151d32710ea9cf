// Package contracts defines the read-only views of the Ionic contracts that the
// handlers reconcile against. Every accessor is bound to the block of the event
// being processed so reads observe the state as of that event.
package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Provider binds accessors to a contract address and block
//
//go:generate mockgen -source=contracts.go -destination=../mocks/contracts.go -package=mocks -mock_names=Provider=MockContractProvider,Appraisals=MockAppraisals,Conductors=MockConductors,Designers=MockDesigners,ReactionPacks=MockReactionPacks
type Provider interface {
	Appraisals(address common.Address, blockNumber uint64) Appraisals
	Conductors(address common.Address, blockNumber uint64) Conductors
	Designers(address common.Address, blockNumber uint64) Designers
	ReactionPacks(address common.Address, blockNumber uint64) ReactionPacks
}

// Appraisals reads the appraisals contract
type Appraisals interface {
	GetAppraisal(ctx context.Context, appraisalID *big.Int) (*Appraisal, error)
	GetNFT(ctx context.Context, nftID *big.Int) (*NFT, error)
}

// Conductors reads the conductors contract
type Conductors interface {
	GetConductor(ctx context.Context, conductorID *big.Int) (*Conductor, error)
	GetConductorByWallet(ctx context.Context, wallet common.Address) (*Conductor, error)
	GetReview(ctx context.Context, reviewID *big.Int) (*Review, error)
	GetReviewer(ctx context.Context, wallet common.Address) (*Reviewer, error)
}

// Designers reads the designers contract
type Designers interface {
	GetDesigner(ctx context.Context, designerID *big.Int) (*Designer, error)
	GetDesignerByWallet(ctx context.Context, wallet common.Address) (*Designer, error)
	// ConductorsAddress returns the conductors contract the designers contract defers to
	ConductorsAddress(ctx context.Context) (common.Address, error)
}

// ReactionPacks reads the reaction packs contract
type ReactionPacks interface {
	GetReactionPack(ctx context.Context, packID *big.Int) (*ReactionPack, error)
	GetPurchase(ctx context.Context, purchaseID *big.Int) (*Purchase, error)
	GetPackPurchases(ctx context.Context, packID *big.Int) ([]*big.Int, error)
	GetReaction(ctx context.Context, reactionID *big.Int) (*Reaction, error)
	DefaultPriceIncrement(ctx context.Context) (*big.Int, error)
	// DesignersAddress returns the designers contract the packs contract defers to
	DesignersAddress(ctx context.Context) (common.Address, error)
}
