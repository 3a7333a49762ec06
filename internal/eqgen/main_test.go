package eqgeninternal

import (
	"errors"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sublee/eqgen/internal/codefmt"
	"github.com/sublee/eqgen/internal/diag"
)

func TestReorderErrors(t *testing.T) {
	a, b, c := errors.New("a"), errors.New("b"), errors.New("c")

	err := reorderErrors(errors.Join(c, errors.Join(b, nil, a)))
	assert.Equal(t, "a\nb\nc", err.Error())
	assert.Equal(t, []error{a, b, c}, Errors(err))

	assert.NoError(t, reorderErrors(nil))
	assert.Nil(t, Errors(nil))
}

func TestPanicBody(t *testing.T) {
	d := diag.New(diag.MissingEquals, "Point", token.NoPos).Detailf("declare Equal")
	err := codefmt.Wrap(codefmt.Pkg(nil), codefmt.Pos(token.NoPos), d)

	assert.Equal(t,
		"panic(\"eqgen: eqgen.Hash requires eqgen.Equal in the Equal method of the same type: Point\")\n",
		panicBody(err))

	assert.Equal(t, "panic(\"eqgen: oops\")\n", panicBody(errors.New("oops\nmore")))
}
