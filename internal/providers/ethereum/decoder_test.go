package ethereum_test

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/providers/ethereum"
)

var (
	appraisalsAddress = common.HexToAddress("0x00000000000000000000000000000000000000A1")
	nftAddress        = common.HexToAddress("0x00000000000000000000000000000000000000A5")
	accessAddress     = common.HexToAddress("0x00000000000000000000000000000000000000A6")
)

func newTestDecoder(t *testing.T) (ethereum.Decoder, ethereum.ABIs) {
	abis, err := ethereum.LoadABIs()
	require.NoError(t, err)

	decoder, err := ethereum.NewDecoder(domain.ChainBaseSepolia, map[domain.ContractKind]string{
		domain.ContractAppraisals:    appraisalsAddress.Hex(),
		domain.ContractNFT:           nftAddress.Hex(),
		domain.ContractAccessControl: strings.ToLower(accessAddress.Hex()),
		domain.ContractDesigners:     "",
	}, abis)
	require.NoError(t, err)
	return decoder, abis
}

func TestNewDecoder_InvalidAddress(t *testing.T) {
	abis, err := ethereum.LoadABIs()
	require.NoError(t, err)

	_, err = ethereum.NewDecoder(domain.ChainBaseSepolia, map[domain.ContractKind]string{
		domain.ContractAppraisals: "not-an-address",
	}, abis)
	assert.Error(t, err)
}

func TestNewDecoder_DuplicateAddress(t *testing.T) {
	abis, err := ethereum.LoadABIs()
	require.NoError(t, err)

	_, err = ethereum.NewDecoder(domain.ChainBaseSepolia, map[domain.ContractKind]string{
		domain.ContractAppraisals: appraisalsAddress.Hex(),
		domain.ContractConductors: strings.ToLower(appraisalsAddress.Hex()),
	}, abis)
	assert.Error(t, err)
}

func TestDecoder_Addresses(t *testing.T) {
	decoder, _ := newTestDecoder(t)
	assert.Equal(t, []common.Address{appraisalsAddress, nftAddress, accessAddress}, decoder.Addresses())
}

func TestDecoder_AppraisalCreated(t *testing.T) {
	decoder, abis := newTestDecoder(t)
	event := abis[domain.ContractAppraisals].Events[domain.EventAppraisalCreated]

	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(5), big.NewInt(88))
	require.NoError(t, err)

	vLog := types.Log{
		Address: appraisalsAddress,
		Topics: []common.Hash{
			event.ID,
			common.BytesToHash(walletA.Bytes()),
			common.BigToHash(big.NewInt(7)),
			common.BigToHash(big.NewInt(3)),
		},
		Data:        data,
		BlockNumber: 120,
		BlockHash:   common.HexToHash("0xb1"),
		TxHash:      common.HexToHash("0xd1"),
		Index:       4,
	}
	ts := time.Unix(1735689600, 0)

	got, err := decoder.Decode(vLog, ts)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, domain.ChainBaseSepolia, got.Chain)
	assert.Equal(t, strings.ToLower(appraisalsAddress.Hex()), got.ContractAddress)
	assert.Equal(t, domain.EventAppraisalCreated, got.EventName)
	assert.Equal(t, uint64(120), got.BlockNumber)
	assert.Equal(t, uint(4), got.LogIndex)
	assert.Equal(t, vLog.TxHash.Hex(), got.TxHash)
	assert.Equal(t, vLog.BlockHash.Hex(), got.BlockHash)
	assert.True(t, ts.Equal(got.BlockTimestamp))

	var params domain.AppraisalCreatedParams
	require.NoError(t, got.DecodeParams(&params))
	assert.Equal(t, walletA, params.Appraiser)
	assert.Equal(t, "7", params.NftID.String())
	assert.Equal(t, "3", params.ConductorID.String())
	assert.Equal(t, "5", params.AppraisalID.String())
	assert.Equal(t, "88", params.OverallScore.String())
}

func TestDecoder_NFTSubmittedMixesTopicsAndData(t *testing.T) {
	decoder, abis := newTestDecoder(t)
	event := abis[domain.ContractAppraisals].Events[domain.EventNFTSubmitted]

	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(42), big.NewInt(1))
	require.NoError(t, err)

	got, err := decoder.Decode(types.Log{
		Address: appraisalsAddress,
		Topics: []common.Hash{
			event.ID,
			common.BigToHash(big.NewInt(7)),
			common.BytesToHash(walletA.Bytes()),
			common.BytesToHash(walletB.Bytes()),
		},
		Data:        data,
		BlockNumber: 121,
	}, time.Unix(0, 0))
	require.NoError(t, err)
	require.NotNil(t, got)

	var params domain.NFTSubmittedParams
	require.NoError(t, got.DecodeParams(&params))
	assert.Equal(t, "7", params.NftID.String())
	assert.Equal(t, "42", params.TokenID.String())
	assert.Equal(t, walletA, params.Submitter)
	assert.Equal(t, "1", params.TokenType.String())
	assert.Equal(t, walletB, params.NftContract)
}

func TestDecoder_ProjectionEvents(t *testing.T) {
	decoder, abis := newTestDecoder(t)

	minters := abis[domain.ContractNFT].Events[domain.EventMintersAuthorized]
	data, err := minters.Inputs.NonIndexed().Pack([]common.Address{walletA, walletB})
	require.NoError(t, err)

	got, err := decoder.Decode(types.Log{
		Address: nftAddress,
		Topics:  []common.Hash{minters.ID},
		Data:    data,
	}, time.Unix(0, 0))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.EventMintersAuthorized, got.EventName)

	var params struct {
		Minters []common.Address `json:"minters"`
	}
	require.NoError(t, json.Unmarshal(got.Params, &params))
	assert.Equal(t, []common.Address{walletA, walletB}, params.Minters)

	revoked := abis[domain.ContractAccessControl].Events[domain.EventAdminRevoked]
	got, err = decoder.Decode(types.Log{
		Address: accessAddress,
		Topics:  []common.Hash{revoked.ID},
	}, time.Unix(0, 0))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, `{}`, string(got.Params))
}

func TestDecoder_IgnoresUnknownLogs(t *testing.T) {
	decoder, abis := newTestDecoder(t)
	event := abis[domain.ContractAppraisals].Events[domain.EventNFTRemoved]

	// not a followed contract
	got, err := decoder.Decode(types.Log{
		Address: walletA,
		Topics:  []common.Hash{event.ID, common.BigToHash(big.NewInt(1))},
	}, time.Unix(0, 0))
	require.NoError(t, err)
	assert.Nil(t, got)

	// unknown signature
	got, err = decoder.Decode(types.Log{
		Address: appraisalsAddress,
		Topics:  []common.Hash{common.HexToHash("0xdead")},
	}, time.Unix(0, 0))
	require.NoError(t, err)
	assert.Nil(t, got)

	// anonymous log
	got, err = decoder.Decode(types.Log{Address: appraisalsAddress}, time.Unix(0, 0))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecoder_MalformedData(t *testing.T) {
	decoder, abis := newTestDecoder(t)
	event := abis[domain.ContractAppraisals].Events[domain.EventAppraisalCreated]

	_, err := decoder.Decode(types.Log{
		Address: appraisalsAddress,
		Topics: []common.Hash{
			event.ID,
			common.BytesToHash(walletA.Bytes()),
			common.BigToHash(big.NewInt(7)),
			common.BigToHash(big.NewInt(3)),
		},
		Data: []byte{0x01},
	}, time.Unix(0, 0))
	assert.Error(t, err)
}
