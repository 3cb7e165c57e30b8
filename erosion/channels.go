package erosion

import (
	"fmt"
	"math"
	"strings"
)

// Channel names a per-cell diagnostic that can be exported as vertex weights.
type Channel int

const (
	ChannelRain Channel = iota
	ChannelAvalanced
	ChannelWater
	ChannelScour
	ChannelDeposit
	ChannelFlowrate
	ChannelSediment
	ChannelSedimentPct
	ChannelCapacity
)

var channelNames = map[Channel]string{
	ChannelRain:        "rain",
	ChannelAvalanced:   "avalanced",
	ChannelWater:       "water",
	ChannelScour:       "scour",
	ChannelDeposit:     "deposit",
	ChannelFlowrate:    "flowrate",
	ChannelSediment:    "sediment",
	ChannelSedimentPct: "sedimentpct",
	ChannelCapacity:    "capacity",
}

func (c Channel) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

func Channels() []Channel {
	return []Channel{
		ChannelRain, ChannelAvalanced, ChannelWater, ChannelScour, ChannelDeposit,
		ChannelFlowrate, ChannelSediment, ChannelSedimentPct, ChannelCapacity,
	}
}

func ParseChannel(name string) (Channel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range channelNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
}

// normalize writes transform(v)/top for every value, or zeros when top is not
// positive.
func normalize(src []float64, top float64, transform func(float64) float64) []float64 {
	out := make([]float64, len(src))
	if top <= 0 {
		return out
	}
	for i, v := range src {
		out[i] = transform(v) / top
	}
	return out
}

func identity(v float64) float64 { return v }

func positive(v float64) float64 { return math.Max(v, 0) }

func negative(v float64) float64 { return math.Max(-v, 0) }

func maxOf(src []float64, transform func(float64) float64) float64 {
	top := 0.0
	for _, v := range src {
		if t := transform(v); t > top {
			top = t
		}
	}
	return top
}

// Weights returns a diagnostic as row-major per-cell weights in [0, 1].
// Scour and deposit are the committed erosion and deposition so far.
func (g *Grid) Weights(c Channel) ([]float64, error) {
	var src []float64
	transform := identity
	switch c {
	case ChannelRain:
		src = g.Rained.Data
	case ChannelAvalanced:
		src = g.Avalanced.Data
		transform = math.Abs
	case ChannelWater:
		return normalize(g.Water.Data, g.Water.Max(), positive), nil
	case ChannelScour:
		src, transform = g.Eroded.Data, positive
	case ChannelDeposit:
		src, transform = g.Eroded.Data, negative
	case ChannelFlowrate:
		src = g.Flowrate.Data
	case ChannelSediment:
		src = g.Sediment.Data
	case ChannelSedimentPct:
		src = g.SedimentPct.Data
	case ChannelCapacity:
		src = g.Capacity.Data
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownChannel, c)
	}
	return normalize(src, maxOf(src, transform), transform), nil
}
