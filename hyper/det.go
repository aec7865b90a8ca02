package hyper

import (
	"golang.org/x/exp/constraints"
)

// Det returns the determinant. Row lengths up to 4 use closed forms that
// follow the same first column expansion as DetLaplace.
func Det[T constraints.Float](t Tensor[T]) T {
	a := t.v
	switch t.rowLength {
	case 1:
		return a[0]
	case 2:
		return det2(a[0], a[1], a[2], a[3])
	case 3:
		return det3(a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7], a[8])
	case 4:
		return det4(a)
	default:
		return DetLaplace(t)
	}
}

// DetLaplace is the general determinant, a recursive Laplace expansion
// along the first column.
func DetLaplace[T constraints.Float](t Tensor[T]) (result T) {
	n := t.rowLength
	switch n {
	case 0:
		return 1
	case 1:
		return t.v[0]
	case 2:
		return det2(t.v[0], t.v[1], t.v[2], t.v[3])
	}
	sub := NewTensor[T](n - 1)
	sign := T(1)
	for i := 0; i < n; i++ {
		// Cross out row i and column 0
		var js int
		for j := 1; j < n; j++ {
			var is int
			for k := 0; k < n; k++ {
				if k == i {
					continue
				}
				sub.v[is*(n-1)+js] = t.v[k*n+j]
				is++
			}
			js++
		}
		result += sign * t.v[i*n] * DetLaplace(sub)
		sign = -sign
	}
	return
}

func det2[T constraints.Float](a00, a01, a10, a11 T) T {
	return a00*a11 - a01*a10
}

func det3[T constraints.Float](a00, a01, a02, a10, a11, a12, a20, a21, a22 T) T {
	return a00*det2(a11, a12, a21, a22) -
		a10*det2(a01, a02, a21, a22) +
		a20*det2(a01, a02, a11, a12)
}

func det4[T constraints.Float](a []T) T {
	return a[0]*det3(a[5], a[6], a[7], a[9], a[10], a[11], a[13], a[14], a[15]) -
		a[4]*det3(a[1], a[2], a[3], a[9], a[10], a[11], a[13], a[14], a[15]) +
		a[8]*det3(a[1], a[2], a[3], a[5], a[6], a[7], a[13], a[14], a[15]) -
		a[12]*det3(a[1], a[2], a[3], a[5], a[6], a[7], a[9], a[10], a[11])
}
