package load

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"flexmap/internal/diagnostic"
	"flexmap/internal/metamodel"
	"flexmap/internal/model"
)

const treeSchema = `
nsuri: http://example.org/tree
enums:
  - name: Color
    literals: [red, green, blue]
classes:
  - name: Node
    abstract: true
    attributes:
      - {name: name, type: string, id: true}
  - name: Tree
    supertypes: [Node]
    attributes:
      - {name: color, type: Color}
      - {name: tags, type: string, many: true}
      - {name: size, type: int}
      - {name: sizes, type: int, many: true}
    references:
      - {name: children, type: Tree, many: true, containment: true}
      - {name: left, type: Tree, containment: true}
      - {name: leaves, type: Leaf, many: true, containment: true}
      - {name: friends, type: Tree, many: true}
      - {name: parent, type: Tree}
  - name: Leaf
    supertypes: [Node]
`

func treePackage(t *testing.T) *metamodel.Package {
	t.Helper()

	pkg, err := metamodel.Parse([]byte(treeSchema), nil)
	require.NoError(t, err)

	return pkg
}

func newTreeResource(t *testing.T, opts ...Option) *Resource {
	t.Helper()

	opts = append([]Option{WithPackages(treePackage(t)), WithRegistry(metamodel.NewRegistry())}, opts...)

	return NewResource(opts...)
}

func mustLoad(t *testing.T, r *Resource, src string, options map[string]string) {
	t.Helper()
	require.NoError(t, r.Load(strings.NewReader(src), options))
}

// snap is a comparable picture of an instance and its contents.
type snap struct {
	Class    string
	Line     int
	Values   map[string][]string
	Children []snap
}

func snapshot(r *Resource, insts []*model.Instance) []snap {
	out := make([]snap, 0, len(insts))

	for _, inst := range insts {
		line, _ := r.Line(inst)
		s := snap{Class: inst.Classifier.Name, Line: line, Values: map[string][]string{}}

		for _, f := range inst.Classifier.AllFeatures() {
			if f.IsContainment() || !inst.IsSet(f) {
				continue
			}

			for _, v := range inst.List(f) {
				if ref, ok := v.(*model.Instance); ok {
					s.Values[f.Name] = append(s.Values[f.Name], ref.String())
				} else {
					s.Values[f.Name] = append(s.Values[f.Name], f.DataType.ToString(v))
				}
			}
		}

		s.Children = snapshot(r, inst.Contents())
		out = append(out, s)
	}

	return out
}

func messages(ds []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Message)
	}

	return out
}

func feature(t *testing.T, inst *model.Instance, name string) *metamodel.Feature {
	t.Helper()

	f, ok := inst.Classifier.Feature(name)
	require.True(t, ok, "feature %s", name)

	return f
}

func labels(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.(*model.Instance).Label())
	}

	return out
}
