// Package relation holds the ordered id lists used for list-valued relationship fields.
//
// Lists are values: every edit returns a new list and the caller saves the
// whole field back to the store.
package relation

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// IDList is an ordered list of entity ids
type IDList []string

// Len returns the number of entries
func (l IDList) Len() int {
	return len(l)
}

// Contains reports whether id is present
func (l IDList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Append returns a copy of l with id added at the end, even if already present.
// Call sites that may see the same pair twice must use AppendUnique.
func (l IDList) Append(id string) IDList {
	out := make(IDList, len(l), len(l)+1)
	copy(out, l)
	return append(out, id)
}

// AppendUnique returns a copy of l with id added at the end unless it is already present
func (l IDList) AppendUnique(id string) IDList {
	if l.Contains(id) {
		return l.Clone()
	}
	return l.Append(id)
}

// Remove returns a copy of l without any entry equal to id
func (l IDList) Remove(id string) IDList {
	out := make(IDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Clone returns a copy of l. A nil list clones to an empty one.
func (l IDList) Clone() IDList {
	out := make(IDList, len(l))
	copy(out, l)
	return out
}

// Of builds a list from ids, dropping duplicates while keeping first-seen order
func Of(ids ...string) IDList {
	out := make(IDList, 0, len(ids))
	for _, id := range ids {
		out = out.AppendUnique(id)
	}
	return out
}

// Scan implements the sql.Scanner interface for reading from database
func (l *IDList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported id list value type %T", value)
	}

	return json.Unmarshal(bytes, l)
}

// Value implements the driver.Valuer interface for writing to database
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// GormDataType implements schema.GormDataTypeInterface
func (IDList) GormDataType() string {
	return "json"
}

// GormDBDataType picks the column type per dialect
func (IDList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Name() {
	case "postgres":
		return "JSONB"
	default:
		return "JSON"
	}
}
