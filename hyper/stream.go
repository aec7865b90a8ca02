package hyper

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/exp/constraints"
)

/*
	Components are streamed as a flat, whitespace separated sequence in row
	major order. Shape is never part of the stream, the reader supplies N. An
	enclosing "( ... )" pair is accepted and written, nothing else is.
*/

func writeComponents[T constraints.Float](buf *bytes.Buffer, v []T) {
	buf.WriteByte('(')
	for i, val := range v {
		if i != 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(strconv.FormatFloat(float64(val), 'g', -1, bitSize[T]()))
	}
	buf.WriteByte(')')
}

func bitSize[T constraints.Float]() int {
	var x T
	return int(unsafe.Sizeof(x)) * 8
}

func readComponents[T constraints.Float](r io.Reader, count int) (data []T, err error) {
	var (
		sc     = bufio.NewScanner(r)
		opened bool
	)
	sc.Split(bufio.ScanWords)
	data = make([]T, 0, count)
	for len(data) < count && sc.Scan() {
		tok := sc.Text()
		if !opened && strings.HasPrefix(tok, "(") {
			opened = true
			tok = tok[1:]
		}
		if opened && len(data) == count-1 {
			tok = strings.TrimSuffix(tok, ")")
		}
		if len(tok) == 0 {
			continue
		}
		var val float64
		if val, err = strconv.ParseFloat(tok, bitSize[T]()); err != nil {
			return nil, fmt.Errorf("component %d %q: %v: %w", len(data), tok, err, ErrStream)
		}
		data = append(data, T(val))
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrStream)
	}
	if len(data) != count {
		return nil, fmt.Errorf("expected %d components, read %d: %w", count, len(data), ErrStream)
	}
	return
}

// ReadVector reads n components.
func ReadVector[T constraints.Float](r io.Reader, n int) (v Vector[T], err error) {
	var data []T
	if data, err = readComponents[T](r, n); err != nil {
		return
	}
	return Vector[T](data), nil
}

// ReadTensor reads n*n components in row major order.
func ReadTensor[T constraints.Float](r io.Reader, n int) (t Tensor[T], err error) {
	var data []T
	if data, err = readComponents[T](r, n*n); err != nil {
		return
	}
	return Tensor[T]{rowLength: n, v: data}, nil
}

// MarshalJSON writes the components as a flat row major array.
func (t Tensor[T]) MarshalJSON() ([]byte, error) {
	data := make([]float64, len(t.v))
	for i, val := range t.v {
		data[i] = float64(val)
	}
	return json.Marshal(data)
}

// UnmarshalJSON reads a flat row major array, N is the square root of its length.
func (t *Tensor[T]) UnmarshalJSON(b []byte) (err error) {
	var data []float64
	if err = json.Unmarshal(b, &data); err != nil {
		return fmt.Errorf("%v: %w", err, ErrStream)
	}
	n := int(math.Round(math.Sqrt(float64(len(data)))))
	if n*n != len(data) {
		return fmt.Errorf("%d components is not a square tensor: %w", len(data), ErrStream)
	}
	t.rowLength = n
	t.v = make([]T, len(data))
	for i, val := range data {
		t.v[i] = T(val)
	}
	return
}
