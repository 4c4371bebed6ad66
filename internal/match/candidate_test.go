package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type named string

func (n named) Ident() string { return string(n) }

func names(items ...string) []named {
	out := make([]named, len(items))
	for i, s := range items {
		out[i] = named(s)
	}

	return out
}

func TestRank(t *testing.T) {
	list := Rank(DefaultMatcher(), "chil", names("parent", "children", "child", "sibling"))
	require.Len(t, list, 4)

	assert.Equal(t, named("children"), list[0].Item)
	assert.Equal(t, 4, list[0].Score)
	assert.Equal(t, named("child"), list[1].Item, "equal scores keep scan order")
	assert.Equal(t, 4, list[1].Score)
}

func TestCandidateList_Top(t *testing.T) {
	list := CandidateList[named]{{Item: "a", Score: 3}, {Item: "b", Score: 2}, {Item: "c", Score: 1}}

	assert.Len(t, list.Top(2), 2)
	assert.Len(t, list.Top(10), 3)
	assert.Empty(t, list.Top(-1))
}

func TestCandidateList_Best(t *testing.T) {
	var empty CandidateList[named]
	assert.Nil(t, empty.Best())

	list := CandidateList[named]{{Item: "a", Score: 3}}
	require.NotNil(t, list.Best())
	assert.Equal(t, named("a"), list.Best().Item)
}

func TestCandidateList_AtLeast(t *testing.T) {
	list := CandidateList[named]{{Item: "a", Score: 3}, {Item: "b", Score: 2}, {Item: "c", Score: 1}}

	got := list.AtLeast(2)
	require.Len(t, got, 2)
	assert.Equal(t, named("b"), got[1].Item)
}
