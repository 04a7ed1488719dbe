package solid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/plasmaglow/internal/render"
)

func TestSolidFillsEveryPixel(t *testing.T) {
	s := New("flash", 35.0/360, 0.35, 0.35)
	assert.Equal(t, "flash", s.Name())
	buf := render.NewBuffer(5)
	s.Render(buf, 123456, 1)
	for _, p := range buf {
		assert.Equal(t, render.Pixel{Model: render.HSV, H: 35.0 / 360, S: 0.35, V: 0.35}, p)
	}
	s.Render(buf, 0, 0)
	assert.Zero(t, buf[4].V)
}
