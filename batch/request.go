package batch

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expki/go-numutil/compute"
	_ "github.com/expki/go-numutil/env"
	"gorgonia.org/tensor"
)

type Operation string

const (
	OpProdNonZeroDiag   Operation = "prod_non_zero_diag"
	OpAreMultisetsEqual Operation = "are_multisets_equal"
	OpMaxAfterZero      Operation = "max_after_zero"
	OpConvertImage      Operation = "convert_image"
	OpRunLengthEncoding Operation = "run_length_encoding"
	OpPairwiseDistance  Operation = "pairwise_distance"
)

// Operations lists every supported operation.
var Operations = []Operation{
	OpProdNonZeroDiag,
	OpAreMultisetsEqual,
	OpMaxAfterZero,
	OpConvertImage,
	OpRunLengthEncoding,
	OpPairwiseDistance,
}

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrNonFinite        = errors.New("result is not finite")
)

type Request struct {
	ID      string          `json:"id"`
	Op      Operation       `json:"op"`
	X       json.RawMessage `json:"x"`
	Y       json.RawMessage `json:"y,omitempty"`
	Weights []float64       `json:"weights,omitempty"`
	Cast    string          `json:"cast,omitempty"`
}

type Response struct {
	ID     string    `json:"id"`
	Op     Operation `json:"op"`
	Result any       `json:"result,omitempty"`
	Error  string    `json:"error,omitempty"`
}

type EncodingResult[T cmp.Ordered] struct {
	Elements []T   `json:"elements"`
	Counters []int `json:"counters"`
}

// Dispatch decodes the operands of req and evaluates its operation.
// cast is used for convert_image unless the request names its own policy.
// Operands written only with integer literals are evaluated as int64, anything else as float64.
func Dispatch(req Request, cast compute.CastPolicy) (result any, err error) {
	result, err = dispatch(req, cast)
	if err != nil {
		return nil, err
	}
	if err = finite(result); err != nil {
		return nil, err
	}
	return result, nil
}

func dispatch(req Request, cast compute.CastPolicy) (result any, err error) {
	switch req.Op {
	case OpProdNonZeroDiag:
		x, integral, err := numeric(req.X, "x", compute.NewMatrix[int64], compute.NewMatrix[float64])
		if err != nil {
			return nil, err
		}
		if !integral {
			return compute.ProdNonZeroDiag[float64, float64](x)
		}
		return integerProduct(x)
	case OpAreMultisetsEqual:
		x, xIntegral, err := numeric(req.X, "x", compute.NewVector[int64], compute.NewVector[float64])
		if err != nil {
			return nil, err
		}
		y, yIntegral, err := numeric(req.Y, "y", compute.NewVector[int64], compute.NewVector[float64])
		if err != nil {
			return nil, err
		}
		switch {
		case xIntegral && yIntegral:
			return compute.AreMultisetsEqual[int64](x, y)
		case xIntegral:
			x, err = operand(req.X, "x", compute.NewVector[float64])
		case yIntegral:
			y, err = operand(req.Y, "y", compute.NewVector[float64])
		}
		if err != nil {
			return nil, err
		}
		return compute.AreMultisetsEqual[float64](x, y)
	case OpMaxAfterZero:
		x, integral, err := numeric(req.X, "x", compute.NewVector[int64], compute.NewVector[float64])
		if err != nil {
			return nil, err
		}
		if integral {
			return compute.MaxAfterZero[int64](x)
		}
		return compute.MaxAfterZero[float64](x)
	case OpConvertImage:
		if req.Cast != "" {
			cast, err = compute.ParseCastPolicy(req.Cast)
			if err != nil {
				return nil, err
			}
		}
		img, err := operand(req.X, "x", compute.NewImage[float64])
		if err != nil {
			return nil, err
		}
		out, err := compute.ConvertImage[float64](img, req.Weights, compute.WithCastPolicy(cast))
		if err != nil {
			return nil, err
		}
		cells, err := compute.MatrixOf[uint8](out)
		if err != nil {
			return nil, err
		}
		return widen(cells), nil
	case OpRunLengthEncoding:
		x, integral, err := numeric(req.X, "x", compute.NewVector[int64], compute.NewVector[float64])
		if err != nil {
			return nil, err
		}
		if integral {
			return encode[int64](x)
		}
		return encode[float64](x)
	case OpPairwiseDistance:
		x, err := operand(req.X, "x", compute.NewMatrix[float64])
		if err != nil {
			return nil, err
		}
		y, err := operand(req.Y, "y", compute.NewMatrix[float64])
		if err != nil {
			return nil, err
		}
		out, err := compute.PairwiseDistance[float64](x, y)
		if err != nil {
			return nil, err
		}
		return compute.MatrixOf[float64](out)
	default:
		return nil, fmt.Errorf("%w %q: want one of %s", ErrUnknownOperation, req.Op, OperationNames())
	}
}

// OperationNames lists the supported operations separated by commas.
func OperationNames() string {
	names := make([]string, len(Operations))
	for i, op := range Operations {
		names[i] = string(op)
	}
	return strings.Join(names, ", ")
}

// integerProduct multiplies the diagonal exactly in int64 and falls back to float64 once the
// product leaves the int64 range.
func integerProduct(x *tensor.Dense) (any, error) {
	exact, err := compute.ProdNonZeroDiag[int64, int64](x)
	if err != nil {
		return nil, err
	}
	approx, err := compute.ProdNonZeroDiag[int64, float64](x)
	if err != nil {
		return nil, err
	}
	if approx >= math.MaxInt64 || approx < math.MinInt64 {
		return approx, nil
	}
	return exact, nil
}

func encode[T cmp.Ordered](x *tensor.Dense) (EncodingResult[T], error) {
	encoding, err := compute.RunLengthEncoding[T](x)
	if err != nil {
		return EncodingResult[T]{}, err
	}
	return EncodingResult[T]{Elements: encoding.Elements, Counters: encoding.Counters}, nil
}

// finite rejects results JSON cannot represent.
func finite(result any) error {
	var values []float64
	switch v := result.(type) {
	case float64:
		values = []float64{v}
	case [][]float64:
		for _, row := range v {
			values = append(values, row...)
		}
	}
	for _, value := range values {
		if math.IsInf(value, 0) || math.IsNaN(value) {
			return fmt.Errorf("%w: %v", ErrNonFinite, value)
		}
	}
	return nil
}

// numeric decodes raw as integers when every literal is an integer, as floats otherwise.
func numeric[I, F any](raw json.RawMessage, name string, exact func(I) (*tensor.Dense, error), approx func(F) (*tensor.Dense, error)) (dense *tensor.Dense, integral bool, err error) {
	if len(raw) == 0 {
		return nil, false, fmt.Errorf("operand %s: %w", name, compute.ErrEmptySequence)
	}
	var ints I
	if json.Unmarshal(raw, &ints) == nil {
		dense, err = exact(ints)
		return dense, err == nil, err
	}
	dense, err = operand(raw, name, approx)
	return dense, false, err
}

// operand unmarshals raw into V and builds a dense array from it.
func operand[V any, D any](raw json.RawMessage, name string, build func(V) (D, error)) (dense D, err error) {
	var value V
	if len(raw) == 0 {
		return dense, fmt.Errorf("operand %s: %w", name, compute.ErrEmptySequence)
	}
	if err = json.Unmarshal(raw, &value); err != nil {
		return dense, errors.Join(fmt.Errorf("decode operand %s", name), err)
	}
	return build(value)
}

// widen keeps uint8 cells from being marshaled as base64 strings.
func widen(cells [][]uint8) [][]int {
	rows := make([][]int, len(cells))
	for i, row := range cells {
		rows[i] = make([]int, len(row))
		for j, value := range row {
			rows[i][j] = int(value)
		}
	}
	return rows
}
