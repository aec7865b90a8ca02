package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveLevel(t *testing.T) {
	assert.Equal(t, "unallocated", Unallocated.String())
	assert.Equal(t, "scalar", Scalar.String())
	assert.Equal(t, "linear", Linear.String())
	assert.Equal(t, "square", Square.String())
	assert.Equal(t, "ActiveLevel(9)", ActiveLevel(9).String())
	for _, l := range []ActiveLevel{Unallocated, Scalar, Linear, Square} {
		assert.Equal(t, l, LevelNameMap[l.String()])
	}
	assert.True(t, Scalar < Linear && Linear < Square)
}

func TestSmootherNames(t *testing.T) {
	assert.Equal(t, GaussSeidel, SmootherNameMap["gaussseidel"])
	assert.Equal(t, Jacobi, SmootherNameMap["jacobi"])
	assert.Equal(t, Cholesky, SmootherNameMap["ilu"])
	assert.Equal(t, "gaussSeidel", GaussSeidel.String())
	assert.Equal(t, "cholesky", Cholesky.String())
	for _, s := range []SmootherType{GaussSeidel, Jacobi, Cholesky} {
		assert.Equal(t, s, SmootherNameMap[strings.ToLower(s.String())])
	}
	_, ok := SmootherNameMap["sor"]
	assert.False(t, ok)
}
