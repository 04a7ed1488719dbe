package led

import (
	"fmt"
	"strings"
)

// ColorOrder maps wire position to source channel (0=R, 1=G, 2=B).
type ColorOrder [3]int

var (
	RGB = ColorOrder{0, 1, 2}
	GRB = ColorOrder{1, 0, 2}
)

// ParseOrder accepts any permutation of "RGB", case-insensitive.
func ParseOrder(s string) (ColorOrder, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 3 {
		return ColorOrder{}, fmt.Errorf("color order %q: want a permutation of RGB", s)
	}
	var o ColorOrder
	var seen [3]bool
	for i, c := range s {
		ch := strings.IndexRune("RGB", c)
		if ch < 0 || seen[ch] {
			return ColorOrder{}, fmt.Errorf("color order %q: want a permutation of RGB", s)
		}
		seen[ch] = true
		o[i] = ch
	}
	return o, nil
}

func (o ColorOrder) String() string {
	b := make([]byte, 3)
	for i, ch := range o {
		b[i] = "RGB"[ch]
	}
	return string(b)
}

// Apply writes src (RGB triples) into dst in wire order.
func (o ColorOrder) Apply(dst, src []byte) {
	for i := 0; i+2 < len(src) && i+2 < len(dst); i += 3 {
		dst[i], dst[i+1], dst[i+2] = src[i+o[0]], src[i+o[1]], src[i+o[2]]
	}
}
