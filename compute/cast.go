package compute

import (
	"fmt"
	"math"
)

// CastPolicy selects how an out-of-range weighted sum is stored in a uint8 cell.
type CastPolicy string

const (
	// CastWrap truncates toward zero and then wraps modulo 256, matching a native unsigned byte cast.
	CastWrap CastPolicy = "wrap"
	// CastClamp truncates toward zero and then saturates into [0, 255].
	CastClamp CastPolicy = "clamp"
)

func (p CastPolicy) String() string {
	return string(p)
}

// ParseCastPolicy maps a configuration string onto a policy. The empty string selects CastWrap.
func ParseCastPolicy(raw string) (CastPolicy, error) {
	switch CastPolicy(raw) {
	case "", CastWrap, "truncate":
		return CastWrap, nil
	case CastClamp, "saturate":
		return CastClamp, nil
	default:
		return "", fmt.Errorf("unknown cast policy %q", raw)
	}
}

// CastUint8 converts value to a byte under policy. NaN becomes 0 under both policies,
// and so do infinities under CastWrap.
func CastUint8(value float64, policy CastPolicy) uint8 {
	if math.IsNaN(value) {
		return 0
	}
	value = math.Trunc(value)
	if policy == CastClamp {
		if value < 0 {
			return 0
		} else if value > math.MaxUint8 {
			return math.MaxUint8
		}
		return uint8(value)
	}
	if math.IsInf(value, 0) {
		return 0
	}
	wrapped := math.Mod(value, 256)
	if wrapped < 0 {
		wrapped += 256
	}
	return uint8(wrapped)
}

// Option configures ConvertImage.
type Option func(*options)

type options struct {
	cast CastPolicy
}

func gatherOptions(opts []Option) options {
	o := options{cast: CastWrap}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithCastPolicy overrides the default CastWrap policy.
func WithCastPolicy(policy CastPolicy) Option {
	return func(o *options) {
		o.cast = policy
	}
}
