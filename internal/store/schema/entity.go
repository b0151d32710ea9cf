package schema

// Kind names an entity type in the store
type Kind string

const (
	KindConductor         Kind = "Conductor"
	KindConductorRegistry Kind = "ConductorRegistry"
	KindNFT               Kind = "NFT"
	KindAppraisal         Kind = "Appraisal"
	KindReactionUsage     Kind = "ReactionUsage"
	KindReviewer          Kind = "Reviewer"
	KindReview            Kind = "Review"
	KindDesigner          Kind = "Designer"
	KindReactionPack      Kind = "ReactionPack"
	KindReaction          Kind = "Reaction"
	KindPurchase          Kind = "Purchase"
	KindTokenReaction     Kind = "TokenReaction"
	KindMetadata          Kind = "Metadata"
	KindResponseMetadata  Kind = "ResponseMetadata"
	KindBaseMetadata      Kind = "BaseMetadata"
	KindReactionMetadata  Kind = "ReactionMetadata"
	KindEventRecord       Kind = "EventRecord"
)

// Entity is a record addressed by kind and id.
// Kind must not dereference its receiver so it can be called on a nil pointer.
type Entity interface {
	Kind() Kind
	EntityID() string
}

// New returns an empty record for kind, or nil when kind is unknown
func New(kind Kind) Entity {
	switch kind {
	case KindConductor:
		return &Conductor{}
	case KindConductorRegistry:
		return &ConductorRegistry{}
	case KindNFT:
		return &NFT{}
	case KindAppraisal:
		return &Appraisal{}
	case KindReactionUsage:
		return &ReactionUsage{}
	case KindReviewer:
		return &Reviewer{}
	case KindReview:
		return &Review{}
	case KindDesigner:
		return &Designer{}
	case KindReactionPack:
		return &ReactionPack{}
	case KindReaction:
		return &Reaction{}
	case KindPurchase:
		return &Purchase{}
	case KindTokenReaction:
		return &TokenReaction{}
	case KindMetadata:
		return &Metadata{}
	case KindResponseMetadata:
		return &ResponseMetadata{}
	case KindBaseMetadata:
		return &BaseMetadata{}
	case KindReactionMetadata:
		return &ReactionMetadata{}
	case KindEventRecord:
		return &EventRecord{}
	default:
		return nil
	}
}

// All returns one empty record per kind, used for migrations
func All() []interface{} {
	return []interface{}{
		&Conductor{},
		&ConductorRegistry{},
		&NFT{},
		&Appraisal{},
		&ReactionUsage{},
		&Reviewer{},
		&Review{},
		&Designer{},
		&ReactionPack{},
		&Reaction{},
		&Purchase{},
		&TokenReaction{},
		&Metadata{},
		&ResponseMetadata{},
		&BaseMetadata{},
		&ReactionMetadata{},
		&EventRecord{},
		&KeyValueStore{},
	}
}
