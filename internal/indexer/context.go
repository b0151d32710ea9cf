package indexer

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ionic-indexer/internal/content"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/store"
)

// eventContext carries the state of the event being applied
type eventContext struct {
	kind    domain.ContractKind
	event   *domain.ContractEvent
	address common.Address

	// store is bound to the transaction of the event
	store store.Store
	// jobs are scheduled after the transaction commits
	jobs []content.Job
}

func newEventContext(kind domain.ContractKind, ev *domain.ContractEvent) *eventContext {
	return &eventContext{
		kind:    kind,
		event:   ev,
		address: common.HexToAddress(ev.ContractAddress),
	}
}

func (ec *eventContext) block() uint64 {
	return ec.event.BlockNumber
}

func (ec *eventContext) timestamp() int64 {
	return ec.event.BlockTimestamp.Unix()
}

// link returns the content id of uri and queues a job to resolve it.
// It returns nil when uri carries no content id.
func (ec *eventContext) link(shape content.Shape, uri string) *string {
	cid := domain.ContentID(uri)
	if cid == "" {
		return nil
	}

	job := content.Job{Shape: shape, ContentID: cid}
	for _, j := range ec.jobs {
		if j == job {
			return &cid
		}
	}
	ec.jobs = append(ec.jobs, job)
	return &cid
}
