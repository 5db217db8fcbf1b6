package compute_test

import (
	"testing"

	"github.com/expki/go-numutil/compute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestConvertImage_SinglePixel(t *testing.T) {
	img, err := compute.NewImage([][][]uint8{{{10, 20, 30}}})
	require.NoError(t, err)

	out, err := compute.ConvertImage[uint8](img, []float64{0.5, 0.25, 0.25})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 1}, out.Shape())

	got, err := compute.MatrixOf[uint8](out)
	require.NoError(t, err)
	assert.Equal(t, [][]uint8{{17}}, got)
}

func TestConvertImage_PerPixel(t *testing.T) {
	img, err := compute.NewImage([][][]int{
		{{0, 0, 0}, {255, 255, 255}, {1, 2, 3}},
		{{100, 0, 0}, {0, 100, 0}, {0, 0, 100}},
	})
	require.NoError(t, err)

	out, err := compute.ConvertImage[int](img, []float64{0.5, 0.25, 0.25})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())

	got, err := compute.MatrixOf[uint8](out)
	require.NoError(t, err)
	assert.Equal(t, [][]uint8{
		{0, 255, 1},
		{50, 25, 25},
	}, got)
}

func TestConvertImage_CastPolicy(t *testing.T) {
	img, err := compute.NewImage([][][]int{{{200, 100, 0}, {-10, 0, 0}}})
	require.NoError(t, err)
	weights := []float64{1, 1, 0}

	wrapped, err := compute.ConvertImage[int](img, weights)
	require.NoError(t, err)
	got, err := compute.MatrixOf[uint8](wrapped)
	require.NoError(t, err)
	assert.Equal(t, [][]uint8{{44, 246}}, got)

	clamped, err := compute.ConvertImage[int](img, weights, compute.WithCastPolicy(compute.CastClamp))
	require.NoError(t, err)
	got, err = compute.MatrixOf[uint8](clamped)
	require.NoError(t, err)
	assert.Equal(t, [][]uint8{{255, 0}}, got)
}

func TestConvertImage_DoesNotModifyInput(t *testing.T) {
	img, err := compute.NewImage([][][]float64{{{1, 2, 3}}})
	require.NoError(t, err)
	before := img.Clone().(*tensor.Dense)

	_, err = compute.ConvertImage[float64](img, []float64{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, before.Data(), img.Data())
}

func TestConvertImage_Errors(t *testing.T) {
	rgb, err := compute.NewImage([][][]uint8{{{1, 2, 3}}})
	require.NoError(t, err)
	rgba, err := compute.NewImage([][][]uint8{{{1, 2, 3, 4}}})
	require.NoError(t, err)

	_, err = compute.ConvertImage[uint8](rgb, []float64{1, 1})
	require.ErrorIs(t, err, compute.ErrInvalidShape)

	_, err = compute.ConvertImage[uint8](rgba, []float64{1, 1, 1})
	require.ErrorIs(t, err, compute.ErrInvalidShape)

	_, err = compute.ConvertImage[uint8](mustMatrix(t, [][]uint8{{1, 2, 3}}), []float64{1, 1, 1})
	require.ErrorIs(t, err, compute.ErrInvalidShape)

	_, err = compute.ConvertImage[uint8](nil, []float64{1, 1, 1})
	require.ErrorIs(t, err, compute.ErrNilTensor)
}
