package batch_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/expki/go-numutil/batch"
	"github.com/expki/go-numutil/compute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(t *testing.T, raw string) batch.Request {
	t.Helper()
	var req batch.Request
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	return req
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name string
		req  string
		want any
	}{
		{
			name: "diagonal product",
			req:  `{"op":"prod_non_zero_diag","x":[[1,0,1],[2,0,2],[3,0,3],[4,4,4]]}`,
			want: int64(3),
		},
		{
			name: "multisets equal",
			req:  `{"op":"are_multisets_equal","x":[1,2,2,3],"y":[3,2,1,2]}`,
			want: true,
		},
		{
			name: "multisets differ",
			req:  `{"op":"are_multisets_equal","x":[1,2],"y":[1,2,2]}`,
			want: false,
		},
		{
			name: "max after zero",
			req:  `{"op":"max_after_zero","x":[6,2,0,3,0,0,5,7,0]}`,
			want: int64(5),
		},
		{
			name: "convert image",
			req:  `{"op":"convert_image","x":[[[10,20,30]]],"weights":[0.5,0.25,0.25]}`,
			want: [][]int{{17}},
		},
		{
			name: "run length encoding",
			req:  `{"op":"run_length_encoding","x":[2,1,1,3]}`,
			want: batch.EncodingResult[int64]{Elements: []int64{1, 2, 3}, Counters: []int{2, 1, 1}},
		},
		{
			name: "pairwise distance",
			req:  `{"op":"pairwise_distance","x":[[0,0]],"y":[[3,4]]}`,
			want: [][]float64{{5}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := batch.Dispatch(request(t, tc.req), compute.CastWrap)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDispatch_NumericOperands(t *testing.T) {
	tests := []struct {
		name string
		req  string
		want any
	}{
		{
			name: "diagonal product beyond float precision",
			req:  `{"op":"prod_non_zero_diag","x":[[3037000493,0],[0,3037000493]]}`,
			want: int64(9223371994482243049),
		},
		{
			name: "diagonal product leaving int64",
			req:  `{"op":"prod_non_zero_diag","x":[[4294967296,0],[0,4294967296]]}`,
			want: 18446744073709551616.0,
		},
		{
			name: "fractional diagonal",
			req:  `{"op":"prod_non_zero_diag","x":[[0.5,0],[0,4]]}`,
			want: 2.0,
		},
		{
			name: "max after zero with floats",
			req:  `{"op":"max_after_zero","x":[0,2.5,0,1]}`,
			want: 2.5,
		},
		{
			name: "run length encoding beyond float precision",
			req:  `{"op":"run_length_encoding","x":[9007199254740993,9007199254740992]}`,
			want: batch.EncodingResult[int64]{Elements: []int64{9007199254740992, 9007199254740993}, Counters: []int{1, 1}},
		},
		{
			name: "run length encoding with floats",
			req:  `{"op":"run_length_encoding","x":[1.5,-1,1.5]}`,
			want: batch.EncodingResult[float64]{Elements: []float64{-1, 1.5}, Counters: []int{1, 2}},
		},
		{
			name: "multisets mixing integer and float literals",
			req:  `{"op":"are_multisets_equal","x":[1,2],"y":[2.0,1.0]}`,
			want: true,
		},
		{
			name: "multisets distinct beyond float precision",
			req:  `{"op":"are_multisets_equal","x":[9007199254740993],"y":[9007199254740992]}`,
			want: false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := batch.Dispatch(request(t, tc.req), compute.CastWrap)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDispatch_NonFinite(t *testing.T) {
	tests := []struct {
		name string
		req  string
	}{
		{"float overflow", `{"op":"prod_non_zero_diag","x":[[1e308,0],[0,1e308]]}`},
		{"integer overflow past float64", `{"op":"prod_non_zero_diag","x":` + diagonal(t, 17, math.MaxInt64) + `}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := batch.Dispatch(request(t, tc.req), compute.CastWrap)
			require.ErrorIs(t, err, batch.ErrNonFinite)
		})
	}
}

// diagonal renders an n by n matrix with value on its diagonal as JSON.
func diagonal(t *testing.T, n int, value int64) string {
	t.Helper()
	matrix := make([][]int64, n)
	for i := range matrix {
		matrix[i] = make([]int64, n)
		matrix[i][i] = value
	}
	raw, err := json.Marshal(matrix)
	require.NoError(t, err)
	return string(raw)
}

func TestDispatch_UnknownOperationListsOperations(t *testing.T) {
	_, err := batch.Dispatch(request(t, `{"op":"transpose","x":[1]}`), compute.CastWrap)
	require.ErrorIs(t, err, batch.ErrUnknownOperation)
	for _, op := range batch.Operations {
		assert.Contains(t, err.Error(), string(op))
	}
}

func TestDispatch_CastOverride(t *testing.T) {
	req := request(t, `{"op":"convert_image","x":[[[200,100,0]]],"weights":[1,1,0]}`)

	got, err := batch.Dispatch(req, compute.CastWrap)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{44}}, got)

	got, err = batch.Dispatch(req, compute.CastClamp)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{255}}, got)

	req.Cast = "wrap"
	got, err = batch.Dispatch(req, compute.CastClamp)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{44}}, got)

	req.Cast = "round"
	_, err = batch.Dispatch(req, compute.CastClamp)
	require.Error(t, err)
}

func TestDispatch_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  string
		want error
	}{
		{"unknown op", `{"op":"transpose","x":[1]}`, batch.ErrUnknownOperation},
		{"missing operand", `{"op":"max_after_zero"}`, compute.ErrEmptySequence},
		{"missing second operand", `{"op":"pairwise_distance","x":[[0,0]]}`, compute.ErrEmptySequence},
		{"empty vector", `{"op":"run_length_encoding","x":[]}`, compute.ErrEmptySequence},
		{"ragged matrix", `{"op":"prod_non_zero_diag","x":[[1,2],[3]]}`, compute.ErrInvalidShape},
		{"wrong weights", `{"op":"convert_image","x":[[[1,2,3]]],"weights":[1]}`, compute.ErrInvalidShape},
		{"point count mismatch", `{"op":"pairwise_distance","x":[[0,0],[1,1]],"y":[[0,0]]}`, compute.ErrShapeMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := batch.Dispatch(request(t, tc.req), compute.CastWrap)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDispatch_DecodeError(t *testing.T) {
	_, err := batch.Dispatch(request(t, `{"op":"max_after_zero","x":{"a":1}}`), compute.CastWrap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode operand x")
}
