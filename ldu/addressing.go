// Package ldu holds block coupled matrices in lower-diagonal-upper form:
// one coefficient per cell on the diagonal and one per face off it.
package ldu

import (
	"errors"
	"fmt"
	"sort"
)

var ErrBadAddressing = errors.New("bad ldu addressing")

// Addressing lists each face as a (Lower, Upper) cell pair with Lower < Upper,
// faces ordered by Lower.
type Addressing struct {
	Size         int
	Lower, Upper []int
	// OwnerStart[c]:OwnerStart[c+1] are the faces owned by cell c
	OwnerStart []int
	// LosortAddr orders faces by Upper, LosortStart indexes it per cell
	LosortAddr, LosortStart []int
}

func NewAddressing(size int, lower, upper []int) (a *Addressing, err error) {
	if len(lower) != len(upper) {
		err = fmt.Errorf("%d lower and %d upper addresses: %w", len(lower), len(upper), ErrBadAddressing)
		return
	}
	for f := range lower {
		l, u := lower[f], upper[f]
		switch {
		case l < 0 || u >= size:
			err = fmt.Errorf("face %d (%d %d) outside %d cells: %w", f, l, u, size, ErrBadAddressing)
		case l >= u:
			err = fmt.Errorf("face %d lower %d not below upper %d: %w", f, l, u, ErrBadAddressing)
		case f > 0 && lower[f-1] > l:
			err = fmt.Errorf("face %d not ordered by lower address: %w", f, ErrBadAddressing)
		}
		if err != nil {
			return
		}
	}
	a = &Addressing{
		Size:  size,
		Lower: append([]int(nil), lower...),
		Upper: append([]int(nil), upper...),
	}
	a.OwnerStart = startIndex(size, a.Lower)
	a.LosortAddr = make([]int, len(upper))
	for f := range a.LosortAddr {
		a.LosortAddr[f] = f
	}
	sort.SliceStable(a.LosortAddr, func(i, j int) bool {
		return a.Upper[a.LosortAddr[i]] < a.Upper[a.LosortAddr[j]]
	})
	a.LosortStart = startIndex(size, a.Upper)
	return
}

// ChainAddressing couples each cell to the next, faces (i, i+1).
func ChainAddressing(m int) *Addressing {
	var lower, upper []int
	for i := 0; i+1 < m; i++ {
		lower = append(lower, i)
		upper = append(upper, i+1)
	}
	a, err := NewAddressing(m, lower, upper)
	if err != nil {
		panic(err)
	}
	return a
}

func startIndex(size int, addr []int) (start []int) {
	start = make([]int, size+1)
	for _, c := range addr {
		start[c+1]++
	}
	for c := 0; c < size; c++ {
		start[c+1] += start[c]
	}
	return
}

func (a *Addressing) NFaces() int { return len(a.Lower) }
