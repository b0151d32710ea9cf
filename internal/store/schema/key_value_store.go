package schema

import "time"

// KeyValueStore stores cursors and other small pieces of indexer state
type KeyValueStore struct {
	Key       string    `gorm:"primaryKey;type:text" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KeyValueStore) TableName() string {
	return "key_value_store"
}
