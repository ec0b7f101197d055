package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefault(t *testing.T) *Selector {
	t.Helper()
	s, err := NewSelector(DefaultPresets())
	require.NoError(t, err)
	return s
}

func TestStartsDark(t *testing.T) {
	s := newDefault(t)
	assert.Equal(t, None, s.Active())
	assert.Empty(t, s.VisibleLights())
}

func TestSetActiveShowsOnlyThatPreset(t *testing.T) {
	s := newDefault(t)
	presets := map[string]int{"studio": 3, "ambient": 1, "sunset": 2, "night": 3}

	for _, name := range []string{"studio", "ambient", "night", "sunset", "ambient"} {
		require.True(t, s.SetActive(name))
		assert.Equal(t, name, s.Active())
		assert.Len(t, s.VisibleLights(), presets[name], name)
	}
}

func TestSetActiveAmbientHidesOthers(t *testing.T) {
	s := newDefault(t)
	s.SetActive("studio")
	s.SetActive("AMBIENT")

	lights := s.VisibleLights()
	require.Len(t, lights, 1)
	assert.Equal(t, Ambient, lights[0].Kind)
	for _, p := range s.presets {
		for _, l := range p.Lights {
			assert.Equal(t, p.Name == "ambient", l.Visible, p.Name)
		}
	}
}

func TestSetActiveNone(t *testing.T) {
	s := newDefault(t)
	s.SetActive("night")
	assert.False(t, s.SetActive(None))
	assert.Equal(t, None, s.Active())
	assert.Empty(t, s.VisibleLights())
}

func TestSetActiveUnknown(t *testing.T) {
	s := newDefault(t)
	s.SetActive("studio")
	assert.False(t, s.SetActive("disco"))
	assert.Empty(t, s.VisibleLights())
	assert.Equal(t, None, s.Active())
}

func TestNamesAndOptions(t *testing.T) {
	s := newDefault(t)
	assert.Equal(t, []string{"studio", "ambient", "sunset", "night"}, s.Names())
	assert.Equal(t, []string{"studio", "ambient", "sunset", "night", "none"}, s.Options())
	assert.True(t, s.Has(" Night "))
	assert.False(t, s.Has("none"))
}

func TestNewSelectorValidation(t *testing.T) {
	_, err := NewSelector([]Preset{{Name: ""}})
	assert.ErrorContains(t, err, "missing name")
	_, err = NewSelector([]Preset{{Name: "None"}})
	assert.ErrorContains(t, err, "reserved")
	_, err = NewSelector([]Preset{{Name: "a"}, {Name: "A"}})
	assert.ErrorContains(t, err, "duplicate")
}
