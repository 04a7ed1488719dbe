// Package control holds the scene and brightness selection shared by the
// button, the render loop and the console.
package control

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/plasmaglow/internal/button"
	diag "github.com/coreman2200/plasmaglow/internal/diagnostics"
)

var (
	ErrInvalidScene = errors.New("invalid scene")
	ErrNoPresets    = errors.New("no brightness presets")
)

// Status is a point-in-time copy of the control state.
type Status struct {
	Scene           int      `json:"scene"`
	SceneName       string   `json:"scene_name"`
	Brightness      float64  `json:"brightness"`
	BrightnessIndex int      `json:"brightness_index"`
	ButtonAvailable bool     `json:"button_available"`
	ButtonSource    string   `json:"button_source"`
	Scenes          []string `json:"scenes"`
}

// Surface is safe for concurrent use. Scene ordinals are 1-based.
type Surface struct {
	mu      sync.Mutex
	presets []float64
	index   int
	scene   int
	names   []string

	buttonSource    string
	buttonAvailable bool
	sink            diag.Sink
}

// New copies presets and scene names. The starting scene is kept as given;
// EnsureScene folds it into range once the loop starts.
func New(presets []float64, index, scene int, names []string) (*Surface, error) {
	if len(presets) == 0 {
		return nil, ErrNoPresets
	}
	s := &Surface{
		presets:      append([]float64(nil), presets...),
		scene:        scene,
		names:        append([]string(nil), names...),
		buttonSource: "none",
	}
	s.index = wrap(index, len(presets))
	return s, nil
}

// SetButton records which input, if any, feeds button events.
func (s *Surface) SetButton(source string, available bool) {
	s.mu.Lock()
	s.buttonSource, s.buttonAvailable = source, available
	s.mu.Unlock()
}

// SetSink routes scene and brightness changes to d. Pushes happen after the
// surface lock is released.
func (s *Surface) SetSink(d diag.Sink) {
	s.mu.Lock()
	s.sink = d
	s.mu.Unlock()
}

func (s *Surface) Count() int { return len(s.names) }

// EnsureScene resets an out-of-range scene to 1 and returns the current one.
func (s *Surface) EnsureScene() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scene < 1 || s.scene > len(s.names) {
		s.scene = 1
	}
	return s.scene
}

// SetScene selects scene n. Out-of-range requests leave the state unchanged.
func (s *Surface) SetScene(n int) error {
	s.mu.Lock()
	d, err := s.setSceneLocked(n)
	s.mu.Unlock()
	s.emit(d)
	return err
}

func (s *Surface) setSceneLocked(n int) (*diag.Diagnostic, error) {
	if n < 1 || n > len(s.names) {
		log.Warn().Int("scene", n).Int("count", len(s.names)).Msg("scene out of range")
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidScene, n, len(s.names))
	}
	prev := s.scene
	s.scene = n
	log.Info().Int("scene", n).Str("name", s.names[n-1]).Msg("scene")
	if prev == n {
		return nil, nil
	}
	return &diag.Diagnostic{
		Severity: diag.Info, Code: diag.SceneChanged, Summary: "Scene " + s.names[n-1],
		Evidence: map[string]any{"from": prev, "to": n},
	}, nil
}

// NextScene advances one scene, wrapping from the last back to 1.
func (s *Surface) NextScene() {
	s.mu.Lock()
	if len(s.names) == 0 {
		s.mu.Unlock()
		return
	}
	d, _ := s.setSceneLocked(1 + wrap(s.scene, len(s.names)))
	s.mu.Unlock()
	s.emit(d)
}

// SetBrightness selects preset i modulo the preset count; negatives wrap too.
func (s *Surface) SetBrightness(i int) {
	s.mu.Lock()
	d := s.setBrightnessLocked(i)
	s.mu.Unlock()
	s.emit(d)
}

func (s *Surface) setBrightnessLocked(i int) *diag.Diagnostic {
	prev := s.index
	s.index = wrap(i, len(s.presets))
	log.Info().Int("index", s.index).Float64("brightness", s.presets[s.index]).Msg("brightness")
	if prev == s.index {
		return nil
	}
	return &diag.Diagnostic{
		Severity: diag.Info, Code: diag.BrightnessChange, Summary: "Brightness preset changed",
		Evidence: map[string]any{"index": s.index, "brightness": s.presets[s.index]},
	}
}

func (s *Surface) NextBrightness() {
	s.mu.Lock()
	d := s.setBrightnessLocked(s.index + 1)
	s.mu.Unlock()
	s.emit(d)
}

func (s *Surface) emit(d *diag.Diagnostic) {
	if d == nil {
		return
	}
	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	if sink != nil {
		sink.Push(*d)
	}
}

func (s *Surface) Brightness() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presets[s.index]
}

func (s *Surface) BrightnessIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Surface) Scene() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

func (s *Surface) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		Scene:           s.scene,
		Brightness:      s.presets[s.index],
		BrightnessIndex: s.index,
		ButtonAvailable: s.buttonAvailable,
		ButtonSource:    s.buttonSource,
		Scenes:          append([]string(nil), s.names...),
	}
	if s.scene >= 1 && s.scene <= len(s.names) {
		st.SceneName = s.names[s.scene-1]
	}
	return st
}

// Apply maps a button event onto the surface: short advances the scene, long
// advances the brightness.
func (s *Surface) Apply(ev button.Event) {
	switch ev {
	case button.Short:
		s.NextScene()
	case button.Long:
		s.NextBrightness()
	}
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
