package led

import "math"

// Post is the output stage applied to every frame before it reaches the
// driver. Each step is off at its zero value.
//
//   - Gamma: perceptual correction, out = in^Gamma (e.g. 2.2).
//   - WhiteCap: per-LED cap on R+G+B in linear units (3.0 = no cap).
//   - BudgetMA: global current budget. Load above Knee*BudgetMA is compressed
//     so the frame never exceeds the budget.
type Post struct {
	Gamma     float64
	WhiteCap  float64
	ChannelMA float64 // mA per channel at full scale; WS2812 is about 20
	BudgetMA  float64
	Knee      float64

	lut      [256]uint8
	lutGamma float64
}

const (
	defaultChannelMA = 20.0
	defaultKnee      = 0.9
)

// Apply rewrites rgb in place.
func (p *Post) Apply(rgb []byte) {
	if p.Gamma > 0 && p.Gamma != 1 {
		p.gammaLUT()
		for i, v := range rgb {
			rgb[i] = p.lut[v]
		}
	}
	p.capWhite(rgb)
	p.limit(rgb)
}

// EstimateMA is the current the frame would draw at the configured per-channel rate.
func (p *Post) EstimateMA(rgb []byte) float64 {
	var sum float64
	for _, v := range rgb {
		sum += float64(v)
	}
	return sum / 255 * p.channelMA()
}

func (p *Post) gammaLUT() {
	if p.lutGamma == p.Gamma {
		return
	}
	for i := range p.lut {
		p.lut[i] = uint8(math.Round(255 * math.Pow(float64(i)/255, p.Gamma)))
	}
	p.lutGamma = p.Gamma
}

func (p *Post) capWhite(rgb []byte) {
	if p.WhiteCap <= 0 || p.WhiteCap >= 3 {
		return
	}
	limit := p.WhiteCap * 255
	for i := 0; i+2 < len(rgb); i += 3 {
		s := float64(rgb[i]) + float64(rgb[i+1]) + float64(rgb[i+2])
		if s > limit {
			scaleBytes(rgb[i:i+3], limit/s)
		}
	}
}

func (p *Post) limit(rgb []byte) {
	if p.BudgetMA <= 0 {
		return
	}
	total := p.EstimateMA(rgb)
	if total <= 0 {
		return
	}
	knee := p.Knee
	if knee <= 0 || knee >= 1 {
		knee = defaultKnee
	}
	ratio := total / p.BudgetMA
	if ratio <= knee {
		return
	}
	// Above the knee the load is compressed toward the budget, never past it.
	x := (ratio - knee) / (1 - knee)
	out := knee + (1-knee)*(1-math.Exp(-x))
	scaleBytes(rgb, out/ratio)
}

func (p *Post) channelMA() float64 {
	if p.ChannelMA > 0 {
		return p.ChannelMA
	}
	return defaultChannelMA
}

func scaleBytes(b []byte, s float64) {
	if s >= 1 {
		return
	}
	for i, v := range b {
		b[i] = uint8(math.Floor(float64(v) * s))
	}
}
