package compute

import (
	"gorgonia.org/tensor"
)

// Channels is the number of color channels ConvertImage expects per pixel.
const Channels = 3

// ConvertImage collapses an (H, W, 3) image into an (H, W) uint8 array where every cell is
// weights[0]*R + weights[1]*G + weights[2]*B stored with the configured CastPolicy
// (CastWrap unless overridden with WithCastPolicy).
func ConvertImage[T Number](img *tensor.Dense, weights []float64, opts ...Option) (*tensor.Dense, error) {
	o := gatherOptions(opts)
	if len(weights) != Channels {
		return nil, opErrorf("convert image", ErrInvalidShape, "%d weights, want %d", len(weights), Channels)
	}
	data, shape, err := backing[T]("convert image", img, 3)
	if err != nil {
		return nil, err
	}
	height, width, channels := shape[0], shape[1], shape[2]
	if channels != Channels {
		return nil, opErrorf("convert image", ErrInvalidShape, "%d channels, want %d", channels, Channels)
	}
	result := make([]uint8, height*width)
	for i := range result {
		pixel := data[i*Channels : (i+1)*Channels]
		sum := float64(pixel[0])*weights[0] + float64(pixel[1])*weights[1] + float64(pixel[2])*weights[2]
		result[i] = CastUint8(sum, o.cast)
	}
	return tensor.New(tensor.WithBacking(result), tensor.WithShape(height, width)), nil
}
