package types

import "strconv"

type ActiveLevel uint8

const (
	Unallocated ActiveLevel = iota
	Scalar
	Linear
	Square
)

var levelNames = [...]string{
	Unallocated: "unallocated",
	Scalar:      "scalar",
	Linear:      "linear",
	Square:      "square",
}

func (l ActiveLevel) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "ActiveLevel(" + strconv.Itoa(int(l)) + ")"
}

var LevelNameMap = map[string]ActiveLevel{
	"unallocated": Unallocated,
	"scalar":      Scalar,
	"linear":      Linear,
	"diagonal":    Linear,
	"square":      Square,
	"full":        Square,
}

type SmootherType uint8

const (
	SmootherNone SmootherType = iota
	GaussSeidel
	Jacobi
	Cholesky
)

var SmootherNameMap = map[string]SmootherType{
	"gaussseidel":  GaussSeidel,
	"gauss-seidel": GaussSeidel,
	"gs":           GaussSeidel,
	"jacobi":       Jacobi,
	"cholesky":     Cholesky,
	"ilu":          Cholesky,
}

func (s SmootherType) String() string {
	switch s {
	case GaussSeidel:
		return "gaussSeidel"
	case Jacobi:
		return "jacobi"
	case Cholesky:
		return "cholesky"
	}
	return "none"
}
