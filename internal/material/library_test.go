package material

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#fff", RGB(255, 255, 255), false},
		{"#b01010", RGB(0xb0, 0x10, 0x10), false},
		{"  #B01010 ", RGB(0xb0, 0x10, 0x10), false},
		{"#11223380", Color{R: 0x11, G: 0x22, B: 0x33, A: 0x80}, false},
		{"red", Color{}, true},
		{"#12", Color{}, true},
		{"#12345", Color{}, true},
		{"#zzzzzz", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "#b01010", RGB(0xb0, 0x10, 0x10).String())
	assert.Equal(t, "#11223380", Color{R: 0x11, G: 0x22, B: 0x33, A: 0x80}.String())
}

func TestDefaultLibrary(t *testing.T) {
	lib := Default()

	assert.Equal(t, []string{"red", "black", "white", "silver", "blue", "gold", "matte"}, lib.Names(Main))
	assert.Equal(t, []string{"clear", "tinted", "smoked", "blue"}, lib.Names(Glass))

	red, ok := lib.Lookup(Main, "Red")
	require.True(t, ok)
	assert.Equal(t, "red", red.Name)
	assert.False(t, red.Transparent())

	clear, ok := lib.Lookup(Glass, "clear")
	require.True(t, ok)
	assert.True(t, clear.Transparent())

	_, ok = lib.Lookup(Glass, "red")
	assert.False(t, ok, "main materials are not glass materials")
}

func TestLookupReturnsSharedReference(t *testing.T) {
	lib := Default()
	a, _ := lib.Lookup(Main, "black")
	b, _ := lib.Lookup(Main, "black")
	assert.Same(t, a, b)
	assert.Same(t, a, lib.Category(Main)[1])
}

func TestNewValidation(t *testing.T) {
	_, err := New(File{Main: []Material{{Name: ""}}})
	assert.ErrorContains(t, err, "missing name")

	_, err = New(File{Glass: []Material{{Name: "clear"}, {Name: "CLEAR"}}})
	assert.ErrorContains(t, err, "duplicate name")

	lib, err := New(File{Main: []Material{{Name: " Teal "}}})
	require.NoError(t, err)
	m, ok := lib.Lookup(Main, "teal")
	require.True(t, ok)
	assert.Equal(t, float32(1), m.Opacity, "zero opacity defaults to opaque")
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "materials.yaml")
	data := `main:
  - name: lime
    color: "#0f0"
    metalness: 0.5
    roughness: 0.4
  - name: orange
    color: "#ff8800"
glass:
  - name: frosted
    color: "#eeeeee"
    opacity: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	lib, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"lime", "orange"}, lib.Names(Main))

	lime, _ := lib.Lookup(Main, "lime")
	assert.Equal(t, RGB(0, 255, 0), lime.Color)
	assert.Equal(t, float32(0.5), lime.Metalness)

	frosted, _ := lib.Lookup(Glass, "frosted")
	assert.True(t, frosted.Transparent())
}

func TestLoadRejectsBadColor(t *testing.T) {
	_, err := Parse([]byte("main:\n  - name: x\n    color: purple\n"))
	assert.ErrorContains(t, err, "line 3")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "material: read")
}
