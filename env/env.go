package env

import (
	"os"
)

func init() {
	// gorgonia.org/tensor pulls in go4.org/unsafe/assume-no-moving-gc which refuses to run on unknown toolchains unless this is set.
	os.Setenv("ASSUME_NO_MOVING_GC_UNSAFE_RISK_IT_WITH", "go1.24")
}
