package compute

// Signed is a constraint for signed integer types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint for unsigned integer types.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float is a constraint for floating-point types.
type Float interface {
	~float32 | ~float64
}

// Number is a constraint for every element type the numeric functions accept.
type Number interface {
	Signed | Unsigned | Float
}
