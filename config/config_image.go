package config

import (
	"github.com/expki/go-numutil/compute"
)

type Image struct {
	// Cast is "wrap" (native byte cast) or "clamp" (saturate into [0, 255]).
	Cast string `json:"cast"`
}

func (c Image) Policy() (compute.CastPolicy, error) {
	return compute.ParseCastPolicy(c.Cast)
}
