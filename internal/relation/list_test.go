package relation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ionic-indexer/internal/relation"
)

func TestIDList_AppendUnique(t *testing.T) {
	var l relation.IDList

	l = l.AppendUnique("a")
	l = l.AppendUnique("b")
	l = l.AppendUnique("a")

	assert.Equal(t, relation.IDList{"a", "b"}, l)
}

func TestIDList_AppendKeepsDuplicates(t *testing.T) {
	l := relation.IDList{"a"}.Append("a")
	assert.Equal(t, relation.IDList{"a", "a"}, l)
}

func TestIDList_AppendDoesNotAlias(t *testing.T) {
	base := make(relation.IDList, 1, 4)
	base[0] = "a"

	x := base.Append("x")
	y := base.Append("y")

	assert.Equal(t, relation.IDList{"a", "x"}, x)
	assert.Equal(t, relation.IDList{"a", "y"}, y)
	assert.Equal(t, relation.IDList{"a"}, base)
}

func TestIDList_Remove(t *testing.T) {
	tests := []struct {
		name string
		in   relation.IDList
		id   string
		want relation.IDList
	}{
		{name: "nil list", in: nil, id: "a", want: relation.IDList{}},
		{name: "absent", in: relation.IDList{"b"}, id: "a", want: relation.IDList{"b"}},
		{name: "single", in: relation.IDList{"a", "b"}, id: "a", want: relation.IDList{"b"}},
		{name: "all occurrences", in: relation.IDList{"a", "b", "a", "c", "a"}, id: "a", want: relation.IDList{"b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Remove(tt.id))
		})
	}
}

func TestIDList_RemoveAfterAppendLeavesNoStrayCopy(t *testing.T) {
	l := relation.IDList{"x", "a", "x"}

	got := l.Append("x").Remove("x")

	assert.Equal(t, relation.IDList{"a"}, got)
	assert.False(t, got.Contains("x"))
}

func TestOf(t *testing.T) {
	assert.Equal(t, relation.IDList{"b", "a"}, relation.Of("b", "a", "b"))
	assert.Equal(t, relation.IDList{}, relation.Of())
}

func TestIDList_ScanValue(t *testing.T) {
	l := relation.IDList{"0x01", "0x02"}

	v, err := l.Value()
	require.NoError(t, err)
	assert.Equal(t, `["0x01","0x02"]`, v)

	var out relation.IDList
	require.NoError(t, out.Scan([]byte(`["0x01","0x02"]`)))
	assert.Equal(t, l, out)

	require.NoError(t, out.Scan(nil))
	assert.Nil(t, out)

	assert.Error(t, out.Scan(42))

	empty, err := relation.IDList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}
