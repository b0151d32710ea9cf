package ethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ionic-indexer/internal/adapter"
	"github.com/feral-file/ionic-indexer/internal/contracts"
	"github.com/feral-file/ionic-indexer/internal/domain"
)

type provider struct {
	client adapter.EthClient
	abis   ABIs
}

// NewProvider returns a contracts.Provider that reads contract state through eth_call
func NewProvider(client adapter.EthClient, abis ABIs) (contracts.Provider, error) {
	for _, kind := range []domain.ContractKind{
		domain.ContractAppraisals,
		domain.ContractConductors,
		domain.ContractDesigners,
		domain.ContractReactionPacks,
	} {
		if abis[kind] == nil {
			return nil, fmt.Errorf("missing %s abi", kind)
		}
	}
	return &provider{client: client, abis: abis}, nil
}

func (p *provider) caller(kind domain.ContractKind, address common.Address, blockNumber uint64) caller {
	return caller{
		client:  p.client,
		abi:     p.abis[kind],
		address: address,
		block:   new(big.Int).SetUint64(blockNumber),
	}
}

func (p *provider) Appraisals(address common.Address, blockNumber uint64) contracts.Appraisals {
	return &appraisalsReader{p.caller(domain.ContractAppraisals, address, blockNumber)}
}

func (p *provider) Conductors(address common.Address, blockNumber uint64) contracts.Conductors {
	return &conductorsReader{p.caller(domain.ContractConductors, address, blockNumber)}
}

func (p *provider) Designers(address common.Address, blockNumber uint64) contracts.Designers {
	return &designersReader{p.caller(domain.ContractDesigners, address, blockNumber)}
}

func (p *provider) ReactionPacks(address common.Address, blockNumber uint64) contracts.ReactionPacks {
	return &reactionPacksReader{p.caller(domain.ContractReactionPacks, address, blockNumber)}
}

// caller performs view calls against one contract pinned at one block
type caller struct {
	client  adapter.EthClient
	abi     *abi.ABI
	address common.Address
	block   *big.Int
}

// call packs the arguments, executes the call and returns the first output
func (c caller) call(ctx context.Context, method string, args ...interface{}) (interface{}, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	out, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: data}, c.block)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s on %s at block %s: %w", method, c.address.Hex(), c.block, err)
	}

	values, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("empty %s output", method)
	}
	return values[0], nil
}

func callTuple[T any](ctx context.Context, c caller, method string, args ...interface{}) (*T, error) {
	value, err := c.call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	out, err := convertTuple[T](value)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func callValue[T any](ctx context.Context, c caller, method string, args ...interface{}) (T, error) {
	var zero T
	value, err := c.call(ctx, method, args...)
	if err != nil {
		return zero, err
	}
	out, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected %s output type %T", method, value)
	}
	return out, nil
}

type appraisalsReader struct{ caller }

func (r *appraisalsReader) GetAppraisal(ctx context.Context, appraisalID *big.Int) (*contracts.Appraisal, error) {
	return callTuple[contracts.Appraisal](ctx, r.caller, "getAppraisal", appraisalID)
}

func (r *appraisalsReader) GetNFT(ctx context.Context, nftID *big.Int) (*contracts.NFT, error) {
	return callTuple[contracts.NFT](ctx, r.caller, "getNFT", nftID)
}

type conductorsReader struct{ caller }

func (r *conductorsReader) GetConductor(ctx context.Context, conductorID *big.Int) (*contracts.Conductor, error) {
	return callTuple[contracts.Conductor](ctx, r.caller, "getConductor", conductorID)
}

func (r *conductorsReader) GetConductorByWallet(ctx context.Context, wallet common.Address) (*contracts.Conductor, error) {
	return callTuple[contracts.Conductor](ctx, r.caller, "getConductorByWallet", wallet)
}

func (r *conductorsReader) GetReview(ctx context.Context, reviewID *big.Int) (*contracts.Review, error) {
	return callTuple[contracts.Review](ctx, r.caller, "getReview", reviewID)
}

func (r *conductorsReader) GetReviewer(ctx context.Context, wallet common.Address) (*contracts.Reviewer, error) {
	return callTuple[contracts.Reviewer](ctx, r.caller, "getReviewer", wallet)
}

type designersReader struct{ caller }

func (r *designersReader) GetDesigner(ctx context.Context, designerID *big.Int) (*contracts.Designer, error) {
	return callTuple[contracts.Designer](ctx, r.caller, "getDesigner", designerID)
}

func (r *designersReader) GetDesignerByWallet(ctx context.Context, wallet common.Address) (*contracts.Designer, error) {
	return callTuple[contracts.Designer](ctx, r.caller, "getDesignerByWallet", wallet)
}

func (r *designersReader) ConductorsAddress(ctx context.Context) (common.Address, error) {
	return callValue[common.Address](ctx, r.caller, "conductorsContract")
}

type reactionPacksReader struct{ caller }

func (r *reactionPacksReader) GetReactionPack(ctx context.Context, packID *big.Int) (*contracts.ReactionPack, error) {
	return callTuple[contracts.ReactionPack](ctx, r.caller, "getReactionPack", packID)
}

func (r *reactionPacksReader) GetPurchase(ctx context.Context, purchaseID *big.Int) (*contracts.Purchase, error) {
	return callTuple[contracts.Purchase](ctx, r.caller, "getPurchase", purchaseID)
}

func (r *reactionPacksReader) GetPackPurchases(ctx context.Context, packID *big.Int) ([]*big.Int, error) {
	return callValue[[]*big.Int](ctx, r.caller, "getPackPurchases", packID)
}

func (r *reactionPacksReader) GetReaction(ctx context.Context, reactionID *big.Int) (*contracts.Reaction, error) {
	return callTuple[contracts.Reaction](ctx, r.caller, "getReaction", reactionID)
}

func (r *reactionPacksReader) DefaultPriceIncrement(ctx context.Context) (*big.Int, error) {
	return callValue[*big.Int](ctx, r.caller, "defaultPriceIncrement")
}

func (r *reactionPacksReader) DesignersAddress(ctx context.Context) (common.Address, error) {
	return callValue[common.Address](ctx, r.caller, "designersContract")
}
