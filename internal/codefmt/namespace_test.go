package codefmt

import (
	"go/token"
	"go/types"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisambiguate(t *testing.T) {
	pull, stop := iter.Pull(DisambiguateName("example"))
	defer stop()

	var name string
	var more bool

	name, more = pull()
	assert.Equal(t, "example", name)
	assert.True(t, more)

	name, more = pull()
	assert.Equal(t, "example2", name)
	assert.True(t, more)

	name, more = pull()
	assert.Equal(t, "example3", name)
	assert.True(t, more)
}

func TestDisambiguateNumSuffix(t *testing.T) {
	pull, stop := iter.Pull(DisambiguateName("answer42"))
	defer stop()

	var name string
	var more bool

	name, more = pull()
	assert.Equal(t, "answer42", name)
	assert.True(t, more)

	name, more = pull()
	assert.Equal(t, "answer42_2", name)
	assert.True(t, more)

	name, more = pull()
	assert.Equal(t, "answer42_3", name)
	assert.True(t, more)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "other", NormalizeName("other"))
	assert.Equal(t, "pointX", NormalizeName("point.x"))
	assert.Equal(t, "aB2", NormalizeName("a-b2"))
	assert.Panics(t, func() { NormalizeName("") })
}

func TestNSName(t *testing.T) {
	ns := make(NS)
	assert.Equal(t, "o", ns.Name("o"))
	assert.Equal(t, "o2", ns.Name("o"))
	assert.False(t, ns.Reserve("o2"))
	assert.True(t, ns.Reserve("h"))
	assert.Equal(t, "h2", ns.Name("h"))

	var nilNS NS
	assert.Equal(t, "o", nilNS.Name("o"))
}

func TestNewMethodNS(t *testing.T) {
	pkg := types.NewPackage("example.com/shape", "shape")
	named := types.NewNamed(types.NewTypeName(token.NoPos, pkg, "Point", nil), types.NewStruct(nil, nil), nil)
	recv := types.NewVar(token.NoPos, pkg, "o", types.NewPointer(named))
	params := types.NewTuple(types.NewVar(token.NoPos, pkg, "other", types.Universe.Lookup("any").Type()))
	results := types.NewTuple(types.NewVar(token.NoPos, pkg, "", types.Typ[types.Bool]))
	sig := types.NewSignatureType(recv, nil, nil, params, results, false)
	fn := types.NewFunc(token.NoPos, pkg, "Equal", sig)

	parent := NS{"Point": {}}
	ns := NewMethodNS(parent, fn, "fmt")
	assert.Equal(t, "o2", ns.Name("o"))
	assert.Equal(t, "other2", ns.Name("other"))
	assert.Equal(t, "fmt2", ns.Name("fmt"))
	assert.Equal(t, "ok", ns.Name("ok"))
	assert.Equal(t, "Point2", ns.Name("Point"))
	assert.NotContains(t, parent, "ok", "parent must not be modified")
}
