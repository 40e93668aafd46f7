package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorLoader_Load_EmbeddedOnly(t *testing.T) {
	colors, err := newColorLoader(DefaultsFS()).Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "138,138,138", colors.Loading, "loading color should be gray (#8a8a8a)")
	assert.Equal(t, "255,0,0", colors.Error, "error color should be red (#ff0000)")
	assert.Equal(t, "0,255,0", colors.Success, "success color should be green (#00ff00)")
	assert.Equal(t, "0,255,255", colors.Info, "info color should be cyan (#00ffff)")
}

func TestColorLoader_Load_LocalOverridesGlobal(t *testing.T) {
	tmpDir := t.TempDir()
	globalConfig := filepath.Join(tmpDir, "global-config")
	localConfig := filepath.Join(tmpDir, "local-config")

	require.NoError(t, os.WriteFile(globalConfig, []byte("color_error = #00ff00\ncolor_info = #0000ff\n"), 0o600))
	require.NoError(t, os.WriteFile(localConfig, []byte("color_error = #112233\n"), 0o600))

	colors, err := newColorLoader(DefaultsFS()).Load(localConfig, globalConfig)
	require.NoError(t, err)

	assert.Equal(t, "17,34,51", colors.Error, "local overrides global")
	assert.Equal(t, "0,0,255", colors.Info, "global preserved when not overridden")
	assert.Equal(t, "0,255,0", colors.Success, "embedded preserved")
}

func TestColorLoader_Load_InvalidHex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("color_loading = red\n"), 0o600))

	_, err := newColorLoader(DefaultsFS()).Load(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid color_loading")
}

func Test_parseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		r, g, b int
		wantErr bool
	}{
		{name: "red", hex: "#ff0000", r: 255},
		{name: "mixed case", hex: "#AbCdEf", r: 171, g: 205, b: 239},
		{name: "missing hash", hex: "ff0000", wantErr: true},
		{name: "short", hex: "#fff", wantErr: true},
		{name: "not hex", hex: "#gggggg", wantErr: true},
		{name: "empty", hex: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b, err := parseHexColor(tc.hex)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int{tc.r, tc.g, tc.b}, []int{r, g, b})
		})
	}
}
