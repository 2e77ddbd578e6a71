package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

func TestCompileEmpty(t *testing.T) {
	pred, ignored := Compile(nil)
	assert.Equal(t, "1=1", pred.SQL)
	assert.Empty(t, pred.Args)
	assert.Empty(t, ignored)
}

func TestCompileSimpleConjunction(t *testing.T) {
	pred, ignored := Compile([]domain.FilterSpec{
		{Column: "saldo", Kind: domain.FilterNumeric, Operator: domain.OpGte, Value: "100"},
		{Column: "regiao", Kind: domain.FilterCategorical, Operator: domain.OpEquals, Value: "sul"},
	})
	require.Empty(t, ignored)
	assert.Equal(t, "saldo >= $1 AND regiao = $2", pred.SQL)
	assert.Equal(t, []interface{}{"100", "sul"}, pred.Args)
}

func TestCompileIN(t *testing.T) {
	pred, ignored := Compile([]domain.FilterSpec{
		{Column: "status", Operator: domain.OpIn, Values: []string{"ativo", "suspenso", "novo"}},
		{Column: "saldo", Operator: domain.OpLt, Value: "500"},
	})
	require.Empty(t, ignored)
	assert.Equal(t, "status IN ($1, $2, $3) AND saldo < $4", pred.SQL)
	assert.Equal(t, []interface{}{"ativo", "suspenso", "novo", "500"}, pred.Args)
}

func TestCompileFromOffset(t *testing.T) {
	pred, ignored := CompileFrom([]domain.FilterSpec{
		{Column: "regiao", Operator: domain.OpEquals, Value: "norte"},
	}, 3)
	require.Empty(t, ignored)
	assert.Equal(t, "regiao = $3", pred.SQL)
}

func TestCompileSkipsMalformedSpecs(t *testing.T) {
	pred, ignored := Compile([]domain.FilterSpec{
		{Column: "saldo; DROP TABLE x", Operator: domain.OpEquals, Value: "1"},
		{Column: "saldo", Operator: "LIKE", Value: "abc"},
		{Column: "regiao", Operator: domain.OpEquals, Value: "   "},
		{Column: "status", Operator: domain.OpIn, Values: nil},
		{Column: "saldo", Operator: domain.OpGt, Value: "10"},
	})

	require.Len(t, ignored, 4)
	assert.Equal(t, "invalid column name", ignored[0].Reason)
	assert.Equal(t, `unknown operator "LIKE"`, ignored[1].Reason)
	assert.Equal(t, "missing value", ignored[2].Reason)
	assert.Equal(t, "IN requires at least one value", ignored[3].Reason)

	// The one valid spec still compiles, numbered from $1.
	assert.Equal(t, "saldo > $1", pred.SQL)
	assert.Equal(t, []interface{}{"10"}, pred.Args)
}

func TestCompileAllSkippedFallsBackToAlwaysTrue(t *testing.T) {
	pred, ignored := Compile([]domain.FilterSpec{
		{Column: "1 OR 1", Operator: domain.OpEquals, Value: "x"},
	})
	assert.Equal(t, "1=1", pred.SQL)
	assert.Len(t, ignored, 1)
}
