package hyper

import (
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Inv returns the inverse. Row lengths 1 to 4 use closed forms divided by the
// determinant, larger tensors use InvGaussJordan. When the determinant is zero,
// subnormal or not finite the closed forms hand over to InvGaussJordan, so a
// tensor is only rejected for an exactly zero pivot, with a *SingularError.
func Inv[T constraints.Float](t Tensor[T]) Tensor[T] {
	switch t.rowLength {
	case 1:
		if !closedFormDet(t.v[0]) {
			return InvGaussJordan(t)
		}
		return NewTensorFill(1, 1/t.v[0])
	case 2:
		return inv2(t)
	case 3:
		return inv3(t)
	case 4:
		return inv4(t)
	default:
		return InvGaussJordan(t)
	}
}

// InvGaussJordan inverts by Gauss-Jordan elimination with full pivoting on
// a working copy, then unscrambles the column interchanges.
func InvGaussJordan[T constraints.Float](t Tensor[T]) Tensor[T] {
	var (
		n                  = t.rowLength
		result             = t.Copy()
		r                  = result.v
		iRow, iCol         int
		largestCoeff, temp T
		// Pivot bookkeeping
		indexCol = make([]int, n)
		indexRow = make([]int, n)
		piv      = make([]int, n)
	)
	for i := 0; i < n; i++ {
		largestCoeff = 0
		// Search for the pivot among rows and columns not yet reduced
		for j := 0; j < n; j++ {
			if piv[j] == 1 {
				continue
			}
			for k := 0; k < n; k++ {
				if piv[k] != 0 {
					continue
				}
				if temp = T(math.Abs(float64(r[j*n+k]))); temp >= largestCoeff {
					largestCoeff = temp
					iRow, iCol = j, k
				}
			}
		}
		piv[iCol]++
		// Move the pivot onto the diagonal
		if iRow != iCol {
			for j := 0; j < n; j++ {
				r[iRow*n+j], r[iCol*n+j] = r[iCol*n+j], r[iRow*n+j]
			}
		}
		indexRow[i], indexCol[i] = iRow, iCol

		pivot := iCol*n + iCol
		if r[pivot] == 0 {
			panic(&SingularError{Op: "InvGaussJordan", RowLength: n, Step: i, Row: iRow, Col: iCol})
		}
		temp = 1 / r[pivot]
		r[pivot] = 1
		for j := 0; j < n; j++ {
			r[iCol*n+j] *= temp
		}
		// Reduce every other row
		for j := 0; j < n; j++ {
			if j == iCol {
				continue
			}
			temp = r[j*n+iCol]
			r[j*n+iCol] = 0
			for k := 0; k < n; k++ {
				r[j*n+k] -= r[iCol*n+k] * temp
			}
		}
	}
	// Undo the interchanges as column swaps, in reverse order
	for i := n - 1; i >= 0; i-- {
		if indexRow[i] == indexCol[i] {
			continue
		}
		src, dst := indexRow[i], indexCol[i]
		for j := 0; j < n; j++ {
			r[j*n+src], r[j*n+dst] = r[j*n+dst], r[j*n+src]
		}
	}
	return result
}

// closedFormDet reports whether dividing by det keeps full precision.
func closedFormDet[T constraints.Float](det T) bool {
	var (
		x         T
		smallest  = 0x1p-1022
		magnitude = math.Abs(float64(det))
	)
	if unsafe.Sizeof(x) == 4 {
		smallest = 0x1p-126
	}
	if math.IsNaN(magnitude) || magnitude < smallest {
		return false
	}
	return !math.IsInf(float64(1/det), 0) && !math.IsInf(float64(det), 0)
}

func inv2[T constraints.Float](t Tensor[T]) (r Tensor[T]) {
	a := t.v
	det := det2(a[0], a[1], a[2], a[3])
	if !closedFormDet(det) {
		return InvGaussJordan(t)
	}
	oneOverDet := 1 / det
	r = NewTensor[T](2)
	r.v[0] = oneOverDet * a[3]
	r.v[1] = -oneOverDet * a[1]
	r.v[2] = -oneOverDet * a[2]
	r.v[3] = oneOverDet * a[0]
	return
}

func inv3[T constraints.Float](t Tensor[T]) (r Tensor[T]) {
	a := t.v
	det := Det(t)
	if !closedFormDet(det) {
		return InvGaussJordan(t)
	}
	r = NewTensor[T](3)
	b := r.v
	b[0] = (a[4]*a[8] - a[5]*a[7]) / det
	b[1] = (a[2]*a[7] - a[1]*a[8]) / det
	b[2] = (a[1]*a[5] - a[2]*a[4]) / det
	b[3] = (a[5]*a[6] - a[3]*a[8]) / det
	b[4] = (a[0]*a[8] - a[2]*a[6]) / det
	b[5] = (a[2]*a[3] - a[0]*a[5]) / det
	b[6] = (a[3]*a[7] - a[4]*a[6]) / det
	b[7] = (a[1]*a[6] - a[0]*a[7]) / det
	b[8] = (a[0]*a[4] - a[1]*a[3]) / det
	return
}

func inv4[T constraints.Float](t Tensor[T]) (r Tensor[T]) {
	a := t.v
	det := Det(t)
	if !closedFormDet(det) {
		return InvGaussJordan(t)
	}
	var (
		s0 = a[0]*a[5] - a[4]*a[1]
		s1 = a[0]*a[6] - a[4]*a[2]
		s2 = a[0]*a[7] - a[4]*a[3]
		s3 = a[1]*a[6] - a[5]*a[2]
		s4 = a[1]*a[7] - a[5]*a[3]
		s5 = a[2]*a[7] - a[6]*a[3]

		c5 = a[10]*a[15] - a[14]*a[11]
		c4 = a[9]*a[15] - a[13]*a[11]
		c3 = a[9]*a[14] - a[13]*a[10]
		c2 = a[8]*a[15] - a[12]*a[11]
		c1 = a[8]*a[14] - a[12]*a[10]
		c0 = a[8]*a[13] - a[12]*a[9]

		invDet = 1 / det
	)
	r = NewTensor[T](4)
	b := r.v
	b[0] = (a[5]*c5 - a[6]*c4 + a[7]*c3) * invDet
	b[1] = (-a[1]*c5 + a[2]*c4 - a[3]*c3) * invDet
	b[2] = (a[13]*s5 - a[14]*s4 + a[15]*s3) * invDet
	b[3] = (-a[9]*s5 + a[10]*s4 - a[11]*s3) * invDet

	b[4] = (-a[4]*c5 + a[6]*c2 - a[7]*c1) * invDet
	b[5] = (a[0]*c5 - a[2]*c2 + a[3]*c1) * invDet
	b[6] = (-a[12]*s5 + a[14]*s2 - a[15]*s1) * invDet
	b[7] = (a[8]*s5 - a[10]*s2 + a[11]*s1) * invDet

	b[8] = (a[4]*c4 - a[5]*c2 + a[7]*c0) * invDet
	b[9] = (-a[0]*c4 + a[1]*c2 - a[3]*c0) * invDet
	b[10] = (a[12]*s4 - a[13]*s2 + a[15]*s0) * invDet
	b[11] = (-a[8]*s4 + a[9]*s2 - a[11]*s0) * invDet

	b[12] = (-a[4]*c3 + a[5]*c1 - a[6]*c0) * invDet
	b[13] = (a[0]*c3 - a[1]*c1 + a[2]*c0) * invDet
	b[14] = (-a[12]*s3 + a[13]*s1 - a[14]*s0) * invDet
	b[15] = (a[8]*s3 - a[9]*s1 + a[10]*s0) * invDet
	return
}
