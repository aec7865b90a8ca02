// Package dimension pairs numeric values with SI base dimensions.
package dimension

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	Mass = iota
	Length
	Time
	Temperature
	Moles
	Current
	LuminousIntensity
	NDimensions
)

// Set holds the exponent of each base dimension.
type Set [NDimensions]float64

var Dimless = Set{}

func New(mass, length, time, temperature, moles, current, luminousIntensity float64) Set {
	return Set{mass, length, time, temperature, moles, current, luminousIntensity}
}

func (s Set) Dimensionless() bool { return s == Dimless }

func (s Set) Equal(o Set) bool { return s == o }

// Multiply adds exponents, the dimension of a product.
func (s Set) Multiply(o Set) (r Set) {
	for i := range s {
		r[i] = s[i] + o[i]
	}
	return
}

// Divide subtracts exponents, the dimension of a quotient.
func (s Set) Divide(o Set) (r Set) {
	for i := range s {
		r[i] = s[i] - o[i]
	}
	return
}

func (s Set) String() string {
	parts := make([]string, NDimensions)
	for i, e := range s {
		parts[i] = strconv.FormatFloat(e, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Dimensioned is a named value carrying its dimensions.
type Dimensioned[T any] struct {
	Name  string
	Dims  Set
	Value T
}

func NewDimensioned[T any](name string, dims Set, value T) Dimensioned[T] {
	return Dimensioned[T]{Name: name, Dims: dims, Value: value}
}

func (d Dimensioned[T]) String() string {
	return fmt.Sprintf("%s %s %v", d.Name, d.Dims, d.Value)
}

// Lift applies f to the value only. Dimensions are carried over unchanged
// and the result is named op(name).
func Lift[T, R any](d Dimensioned[T], op string, f func(T) R) Dimensioned[R] {
	return Dimensioned[R]{
		Name:  op + "(" + d.Name + ")",
		Dims:  d.Dims,
		Value: f(d.Value),
	}
}
