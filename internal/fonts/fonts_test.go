package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("font"), 0644))
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Inter", "Inter-Bold.ttf"))
	touch(t, filepath.Join(dir, "Inter", "OFL.txt"))
	touch(t, filepath.Join(dir, "Mono.OTF"))

	list, err := ScanDir(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Inter/Inter-Bold.ttf", "Mono.OTF"}, list)

	list, err = ScanDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Inter", "Inter-Bold.ttf"))
	touch(t, filepath.Join(dir, "Inter", "Inter-Regular.ttf"))
	touch(t, filepath.Join(dir, "Google_Sans_Code", "GoogleSansCode-Medium.ttf"))

	got, err := Find([]string{dir}, "inter")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Inter", "Inter-Regular.ttf"), got)

	got, err = Find([]string{dir}, "Google Sans Code")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Google_Sans_Code", "GoogleSansCode-Medium.ttf"), got)

	direct := filepath.Join(dir, "Inter", "Inter-Bold.ttf")
	got, err = Find(nil, direct)
	require.NoError(t, err)
	assert.Equal(t, direct, got)

	_, err = Find([]string{dir}, "Comic")
	assert.ErrorContains(t, err, "no font matching")
	_, err = Find([]string{dir}, " ")
	assert.Error(t, err)
}
