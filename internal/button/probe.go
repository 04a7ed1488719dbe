package button

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Options names the candidate inputs. Empty fields are skipped.
type Options struct {
	Chip   string // gpiocdev chip, e.g. "gpiochip0"
	Offset int    // line offset on Chip; negative disables the line source
	Pin    string // periph gpioreg name, e.g. "GPIO3"
}

// Probe tries the gpiocdev line, then the periph pin, then gives up and
// returns NoButton. It never fails; fallbacks are logged.
func Probe(o Options) Reader {
	if o.Chip != "" && o.Offset >= 0 {
		l, err := OpenLine(o.Chip, o.Offset)
		if err == nil {
			return Safe(fmt.Sprintf("gpiocdev:%s:%d", o.Chip, o.Offset), l)
		}
		log.Warn().Err(err).Str("chip", o.Chip).Int("offset", o.Offset).Msg("button line unavailable")
	}
	if o.Pin != "" {
		p, err := OpenPin(o.Pin)
		if err == nil {
			return Safe("gpio:"+o.Pin, p)
		}
		log.Warn().Err(err).Str("pin", o.Pin).Msg("button pin unavailable")
	}
	return NoButton{}
}
