package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Entity ids are hex encoded byte strings. The same input always yields the same id.

// BytesID hex encodes raw bytes as an entity id
func BytesID(b []byte) string {
	return hexutil.Encode(b)
}

// NumericBytes returns the minimal little-endian two's-complement encoding of n.
// On-chain ids are unsigned so the sign of n is ignored.
func NumericBytes(n *big.Int) []byte {
	if n == nil || n.Sign() == 0 {
		return []byte{0x00}
	}
	be := n.Bytes()
	le := make([]byte, len(be), len(be)+1)
	for i, b := range be {
		le[len(be)-1-i] = b
	}
	// keep the value positive when read back as signed
	if le[len(le)-1]&0x80 != 0 {
		le = append(le, 0x00)
	}
	return le
}

// NumericID derives the id of an entity keyed by an on-chain numeric id
func NumericID(n *big.Int) string {
	return BytesID(NumericBytes(n))
}

// EventID derives the id of a record scoped to one log: tx hash followed by the
// little-endian int32 log index
func EventID(txHash common.Hash, logIndex uint) string {
	b := make([]byte, 0, common.HashLength+4)
	b = append(b, txHash.Bytes()...)
	i := uint32(logIndex) //nolint:gosec,G115 // log indexes fit in int32
	b = append(b, byte(i), byte(i>>8), byte(i>>16), byte(i>>24))
	return BytesID(b)
}

// WalletID derives the id of an entity keyed by a wallet address
func WalletID(addr common.Address) string {
	return BytesID(addr.Bytes())
}

// ReactionUsageID addresses a (count, reaction) pair so equal usages share one record
func ReactionUsageID(count, reactionID *big.Int) string {
	return BytesID([]byte(fmt.Sprintf("count-%s-reaction-%s", hexBig(count), hexBig(reactionID))))
}

// TokenReactionID addresses the binding of a token to a reaction
func TokenReactionID(reactionID, tokenID *big.Int) string {
	return BytesID([]byte(fmt.Sprintf("reaction-%s-token-%s", hexBig(reactionID), hexBig(tokenID))))
}

// ContentID returns the trailing path segment of uri, or "" when there is none
func ContentID(uri string) string {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return ""
	}
	return uri[strings.LastIndex(uri, "/")+1:]
}

// ResponseMetadataID addresses the index-th reaction entry of a Metadata document
func ResponseMetadataID(contentID string, index int) string {
	return fmt.Sprintf("%s-reaction-%d", contentID, index)
}

// BigString renders n in decimal, treating nil as zero
func BigString(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}

func hexBig(n *big.Int) string {
	if n == nil {
		return "0x0"
	}
	return "0x" + n.Text(16)
}
