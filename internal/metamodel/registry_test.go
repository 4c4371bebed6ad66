package metamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	a := &Package{NsURI: "a"}
	a.Classifiers = []*Classifier{
		{Package: a, Name: "Abs", Abstract: true},
		{Package: a, Name: "X"},
	}
	b := &Package{NsURI: "b"}
	b.Classifiers = []*Classifier{{Package: b, Name: "Y"}}

	reg := NewRegistry(a)
	assert.True(t, reg.Register(b))
	assert.False(t, reg.Register(b), "re-registering the same package is a no-op")

	p, ok := reg.Lookup("b")
	require.True(t, ok)
	assert.Same(t, b, p)

	_, ok = reg.Lookup("c")
	assert.False(t, ok)

	var names []string
	for _, c := range reg.ConcreteClassifiers() {
		names = append(names, c.ID().String())
	}

	assert.Equal(t, []string{"a#X", "b#Y"}, names)

	a2 := &Package{NsURI: "a"}
	assert.True(t, reg.Register(a2))
	assert.Equal(t, []*Package{a2, b}, reg.Packages())

	c, ok := reg.Classifier(ClassifierID{NsURI: "b", Name: "Y"})
	require.True(t, ok)
	assert.Equal(t, "Y", c.Ident())
}
