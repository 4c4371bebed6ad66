package load

import (
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flexmap/internal/diagnostic"
	"flexmap/internal/metamodel"
)

type spySimilarity struct {
	calls int
}

func (s *spySimilarity) Similarity(a, b string) int {
	s.calls++
	return 100
}

func TestLoad_TreeExample(t *testing.T) {
	r := newTreeResource(t)
	mustLoad(t, r, `<Tree name="t1"><children><Tree name="t2"/></children></Tree>`, nil)

	assert.Empty(t, r.Diagnostics())
	require.Len(t, r.Contents(), 1)

	root := r.Contents()[0]
	assert.Equal(t, "Tree(t1)", root.String())
	assert.Equal(t, []string{"t2"}, labels(root.List(feature(t, root, "children"))))
	assert.Len(t, r.AllContents(), 2)
}

func TestLoad_ExactMatchNeverConsultsSimilarity(t *testing.T) {
	spy := &spySimilarity{}
	r := newTreeResource(t, WithSimilarity(spy))

	mustLoad(t, r, `<Tree name="t1"><children><Tree name="t2"/></children></Tree>`, nil)
	assert.Empty(t, r.Diagnostics())
	assert.Zero(t, spy.calls)

	// The spy scores every candidate equally high, so a fuzzy pass would pick Tree.
	mustLoad(t, r, `<leaf name="l"/>`, nil)
	require.Len(t, r.Contents(), 1)
	assert.Equal(t, "Leaf", r.Contents()[0].Classifier.Name)
	assert.Zero(t, spy.calls)
}

func TestLoad_FuzzyThresholdBoundary(t *testing.T) {
	r := newTreeResource(t)

	mustLoad(t, r, "<Tree name=\"a\">\n  <Trx/>\n</Tree>", nil)
	ws := r.Warnings()
	require.Len(t, ws, 1)
	assert.Equal(t, diagnostic.CodeUnmappedElement, ws[0].Code)
	assert.Equal(t, "Could not map element Trx to an object", ws[0].Message)
	assert.Equal(t, 2, ws[0].Line)
	assert.Equal(t, []string{"Tree"}, ws[0].Suggestions)
	assert.Empty(t, r.Contents()[0].Contents())

	mustLoad(t, r, "<Tree name=\"a\">\n  <Tre name=\"b\"/>\n</Tree>", nil)
	assert.Empty(t, r.Diagnostics())
	require.Len(t, r.AllContents(), 2)
	assert.Equal(t, "Tree(b)", r.AllContents()[1].String())

	mustLoad(t, r, "<Tr/>", nil)
	require.Len(t, r.Warnings(), 1)
	assert.Empty(t, r.Contents())

	mustLoad(t, r, "<?fuzzy-matching-threshold 1?>\n<Tr/>", nil)
	assert.Empty(t, r.Diagnostics())
	require.Len(t, r.Contents(), 1)
	assert.Equal(t, "Tree", r.Contents()[0].Classifier.Name)
}

func TestLoad_WildcardReference(t *testing.T) {
	r := newTreeResource(t)
	src := `<Tree name="a" friends="*">
  <children>
    <Tree name="b"/>
    <Tree name="c" friends="a,x,y"/>
    <Tree name="d" friends="*"/>
  </children>
  <leaves><Leaf name="l"/></leaves>
</Tree>`

	mustLoad(t, r, src, nil)

	all := r.AllContents()
	require.Len(t, all, 5)

	a, c, d := all[0], all[2], all[3]
	assert.Equal(t, []string{"a", "b", "c", "d"}, labels(a.List(feature(t, a, "friends"))))
	assert.Equal(t, []string{"a", "b", "c", "d"}, labels(d.List(feature(t, d, "friends"))))
	assert.Equal(t, []string{"a"}, labels(c.List(feature(t, c, "friends"))))

	ws := r.Warnings()
	assert.Equal(t, []string{
		"Could not resolve target x for reference friends (friends)",
		"Could not resolve target y for reference friends (friends)",
	}, messages(ws))

	for _, w := range ws {
		assert.Equal(t, diagnostic.CodeUnresolvedReference, w.Code)
		assert.Equal(t, 4, w.Line)
	}
}

func TestLoad_SingleReference(t *testing.T) {
	r := newTreeResource(t)
	src := `<Tree name="a">
  <children>
    <Tree name="b" parent="a"/>
    <Tree name="c" parnt="l"/>
  </children>
  <leaves><Leaf name="l"/></leaves>
</Tree>`

	mustLoad(t, r, src, nil)

	all := r.AllContents()
	b := all[1]
	v, ok := b.Get(feature(t, b, "parent"))
	require.True(t, ok)
	assert.Same(t, all[0], v)

	// "l" names a Leaf, which parent does not accept.
	assert.Equal(t, []string{"Could not resolve target l for reference parnt (parent)"}, messages(r.Warnings()))
}

func TestLoad_UnknownDirective(t *testing.T) {
	r := newTreeResource(t)

	mustLoad(t, r, "<?colour blue?>\n<Tree name=\"a\"/>", nil)

	ws := r.Warnings()
	require.Len(t, ws, 1)
	assert.Equal(t, diagnostic.CodeInvalidOption, ws[0].Code)
	assert.Equal(t, "Could not process option colour: unknown option", ws[0].Message)
	assert.Equal(t, 1, ws[0].Line)
	assert.Len(t, r.Contents(), 1)
}

func TestLoad_InvalidOptionValues(t *testing.T) {
	r := newTreeResource(t)

	mustLoad(t, r, "<?orphans-as-top-level maybe?>\n<Tree/>", map[string]string{
		"fuzzyMatchingThreshold": "two",
		"bogus":                  "1",
	})

	assert.Equal(t, []string{
		"Could not process option bogus: unknown option",
		`Could not process option fuzzyMatchingThreshold: invalid integer "two"`,
		`Could not process option orphans-as-top-level: invalid boolean "maybe"`,
	}, messages(r.Warnings()))
}

func TestLoad_Idempotent(t *testing.T) {
	src := `<?eol print("hi");?>
<Tree name="a" friends="b,zz" colour="red">
  <children>
    <Tree name="b"/>
    <Bush/>
  </children>
</Tree>`

	r := newTreeResource(t)
	mustLoad(t, r, src, nil)

	firstContents := snapshot(r, r.Contents())
	firstDiags := r.Diagnostics()
	firstScripts := r.Scripts()
	require.NotEmpty(t, firstDiags)

	mustLoad(t, r, src, nil)
	assert.Empty(t, cmp.Diff(firstContents, snapshot(r, r.Contents())))
	assert.Empty(t, cmp.Diff(firstDiags, r.Diagnostics()))
	assert.Equal(t, firstScripts, r.Scripts())

	fresh := newTreeResource(t)
	mustLoad(t, fresh, src, nil)
	assert.Empty(t, cmp.Diff(firstContents, snapshot(fresh, fresh.Contents())))
	assert.Empty(t, cmp.Diff(firstDiags, fresh.Diagnostics()))
}

func TestLoad_LineFidelity(t *testing.T) {
	src := `<Tree name="a">
  <children>
    <Tree name="b">
      <children>
        <Tree
          name="c"/>
      </children>
    </Tree>
  </children>
</Tree>`

	r := newTreeResource(t)
	mustLoad(t, r, src, nil)

	want := map[string]int{"a": 1, "b": 3, "c": 5}
	all := r.AllContents()
	require.Len(t, all, 3)

	for _, inst := range all {
		line, ok := r.Line(inst)
		require.True(t, ok)
		assert.Equal(t, want[inst.Label()], line, inst.Label())
	}
}

func TestLoad_OrphansAsTopLevel(t *testing.T) {
	src := "<Unknown>\n  <Tree name=\"x\"/>\n</Unknown>"

	r := newTreeResource(t)
	mustLoad(t, r, src, nil)
	assert.Empty(t, r.Contents())
	assert.Equal(t, []int{1, 2}, lines(r.Warnings()))

	mustLoad(t, r, src, map[string]string{"orphansAsTopLevel": "true"})
	require.Len(t, r.Contents(), 1)
	assert.Equal(t, "Tree(x)", r.Contents()[0].String())
	assert.Equal(t, []int{1}, lines(r.Warnings()))

	line, ok := r.Line(r.Contents()[0])
	require.True(t, ok)
	assert.Equal(t, 2, line)
}

func TestLoad_ContainmentSlots(t *testing.T) {
	r := newTreeResource(t)

	mustLoad(t, r, `<Tree name="a"><child><Tree name="b"/></child></Tree>`, nil)
	assert.Empty(t, r.Diagnostics())
	assert.Len(t, r.AllContents(), 2)

	mustLoad(t, r, `<?fuzzy-containment-matching false?><Tree name="a"><child><Tree name="b"/></child></Tree>`, nil)
	assert.Equal(t, []string{
		"Could not map element child to an object",
		"Could not map element Tree to an object",
	}, messages(r.Warnings()))
	assert.Len(t, r.AllContents(), 1)
}

func TestLoad_TypedChildWithoutSlot(t *testing.T) {
	r := newTreeResource(t)
	mustLoad(t, r, `<Tree name="a"><Tree name="b"/><Leaf name="l"/><leaves/></Tree>`, nil)

	assert.Empty(t, r.Diagnostics())

	root := r.Contents()[0]
	assert.Equal(t, []string{"b"}, labels(root.List(feature(t, root, "children"))))
	assert.Equal(t, []string{"l"}, labels(root.List(feature(t, root, "leaves"))))
}

func TestLoad_ContainmentConflict(t *testing.T) {
	r := newTreeResource(t)
	mustLoad(t, r, "<Tree name=\"a\">\n<left>\n<Tree name=\"b\"/>\n<Tree name=\"c\"><Tree name=\"d\"/></Tree>\n</left>\n</Tree>", nil)

	ws := r.Warnings()
	require.Len(t, ws, 2)
	assert.Equal(t, diagnostic.CodeContainmentConflict, ws[0].Code)
	assert.Equal(t, 4, ws[0].Line)
	assert.Equal(t, diagnostic.CodeUnmappedElement, ws[1].Code)

	root := r.Contents()[0]
	v, ok := root.Get(feature(t, root, "left"))
	require.True(t, ok)
	assert.Equal(t, "Tree(b)", v.(interface{ String() string }).String())
	assert.Len(t, r.AllContents(), 2)
}

func TestLoad_Attributes(t *testing.T) {
	r := newTreeResource(t)
	src := `<Tree name="a" nam="b" size="x" sizes="1, x ,3" tags="p, q">
  <color>green</color>
  <tag>r</tag>
</Tree>`

	mustLoad(t, r, src, nil)

	root := r.Contents()[0]
	assert.Equal(t, "a", root.Label())
	assert.False(t, root.IsSet(feature(t, root, "size")))
	assert.Equal(t, []any{int64(1), int64(3)}, root.List(feature(t, root, "sizes")))
	assert.Equal(t, []any{"p", "q", "r"}, root.List(feature(t, root, "tags")))

	color, _ := root.Get(feature(t, root, "color"))
	assert.Equal(t, "green", color)

	assert.Equal(t, []string{
		"Could not map attribute nam to a structural feature of Tree",
		`For input string: "x" in the value of size`,
		`For input string: "x" in the value of sizes`,
	}, messages(r.Warnings()))

	for _, w := range r.Warnings() {
		assert.Equal(t, 1, w.Line)
	}
}

func TestLoad_Directives(t *testing.T) {
	extra, err := metamodel.Parse([]byte("nsuri: http://example.org/extra\nclasses: [{name: Gadget}]"), nil)
	require.NoError(t, err)

	r := NewResource(WithPackages(treePackage(t)), WithRegistry(metamodel.NewRegistry(extra)))

	mustLoad(t, r, "<?nsuri http://example.org/extra?>\n<?eol var x = 1;?>\n<Gadget/>", nil)
	assert.Empty(t, r.Diagnostics())
	require.Len(t, r.Contents(), 1)
	assert.Equal(t, "Gadget", r.Contents()[0].Classifier.Name)
	assert.Len(t, r.Packages(), 2)
	assert.Equal(t, []string{"var x = 1;"}, r.Scripts())

	mustLoad(t, r, "<?NSURI http://example.org/none?>\n<Gadget/>", nil)
	assert.Len(t, r.Packages(), 1, "packages reset between loads")
	assert.Empty(t, r.Scripts())

	ws := r.Warnings()
	require.Len(t, ws, 2)
	assert.Equal(t, diagnostic.CodeUnknownPackage, ws[0].Code)
	assert.Equal(t, "Failed to locate package for nsuri http://example.org/none", ws[0].Message)
	assert.Equal(t, diagnostic.CodeUnmappedElement, ws[1].Code)
}

func TestLoad_SyntaxError(t *testing.T) {
	r := newTreeResource(t)
	mustLoad(t, r, `<Tree name="a"/>`, nil)
	require.Len(t, r.Contents(), 1)

	err := r.Load(strings.NewReader("<Tree>\n<children>\n</Tree>"), nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Empty(t, r.Contents())

	ds := r.Diagnostics()
	require.Len(t, ds, 1)
	assert.Equal(t, diagnostic.DiagnosticError, ds[0].Severity)
	assert.Equal(t, diagnostic.CodeSyntaxError, ds[0].Code)
	assert.Equal(t, 3, ds[0].Line)
}

func TestLoadFile_Missing(t *testing.T) {
	r := newTreeResource(t)

	err := r.LoadFile("testdata/missing.xml", nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func lines(ds []diagnostic.Diagnostic) []int {
	out := make([]int, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Line)
	}

	return out
}
