package schema

import "gorm.io/datatypes"

// EventRecord is the immutable projection of a single log from the nft and
// access control contracts
type EventRecord struct {
	// ID is derived from the transaction hash and log index
	ID              string         `gorm:"column:id;primaryKey;type:text" json:"id"`
	Contract        string         `gorm:"column:contract;type:text;index:idx_event_records_contract_name,priority:1" json:"contract"`
	ContractAddress string         `gorm:"column:contract_address;type:text" json:"contract_address"`
	EventName       string         `gorm:"column:event_name;type:text;index:idx_event_records_contract_name,priority:2" json:"event_name"`
	Params          datatypes.JSON `gorm:"column:params" json:"params"`
	BlockNumber     uint64         `gorm:"column:block_number;index" json:"block_number"`
	BlockTimestamp  int64          `gorm:"column:block_timestamp" json:"block_timestamp"`
	TransactionHash string         `gorm:"column:transaction_hash;type:text" json:"transaction_hash"`
	LogIndex        uint           `gorm:"column:log_index" json:"log_index"`
}

func (EventRecord) TableName() string {
	return "event_records"
}

func (*EventRecord) Kind() Kind {
	return KindEventRecord
}

func (e *EventRecord) EntityID() string {
	return e.ID
}
