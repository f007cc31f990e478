package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestParseHex(t *testing.T) {
	c, ok := ParseHex("#22c55e")
	require.True(t, ok)
	assert.Equal(t, drawing.Color{R: 0x22, G: 0xc5, B: 0x5e, A: 255}, c)

	c, ok = ParseHex("f00")
	require.True(t, ok)
	assert.Equal(t, drawing.Color{R: 255, A: 255}, c)

	c, ok = ParseHex("#00000080")
	require.True(t, ok)
	assert.Equal(t, uint8(0x80), c.A)

	for _, bad := range []string{"", "#12", "#zzzzzz", "red"} {
		_, ok := ParseHex(bad)
		assert.False(t, ok, bad)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: light\ntokens:\n  \"--red\": \"#dc2626\"\n  \"--green\": nope\n"), 0o644))

	th, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "light", th.Name)

	red, ok := th.Color("--red")
	require.True(t, ok)
	assert.Equal(t, uint8(0xdc), red.R)

	_, ok = th.Color("--green")
	assert.False(t, ok)
	_, ok = th.Color("--orange")
	assert.False(t, ok)

	def := drawing.Color{R: 1, A: 255}
	assert.Equal(t, def, th.ColorOr("--orange", def))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: dark\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan Theme, 16)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, func(th Theme) { got <- th }) }()

	body := []byte("name: light\ntokens:\n  \"--green\": \"#00ff00\"\n")
	deadline := time.After(5 * time.Second)
	write := time.NewTicker(100 * time.Millisecond)
	defer write.Stop()
	for {
		select {
		case th := <-got:
			if th.Name != "light" {
				continue
			}
			c, ok := th.Color("--green")
			require.True(t, ok)
			assert.Equal(t, uint8(255), c.G)
			cancel()
			assert.NoError(t, <-done)
			return
		case <-write.C:
			// the watcher may not be registered yet, so keep writing
			require.NoError(t, os.WriteFile(path, body, 0o644))
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}
