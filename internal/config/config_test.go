package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bhaddad5/Scrap-Merchant/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFPSLimitClamp(t *testing.T) {
	defer config.SetFPSLimit(config.GetFPSLimit())

	tests := []struct {
		in, want int
	}{
		{0, 0},
		{-5, 0},
		{3, config.MinFPSLimit},
		{144, 144},
		{5000, config.MaxFPSLimit},
	}
	for _, tt := range tests {
		config.SetFPSLimit(tt.in)
		assert.Equal(t, tt.want, config.GetFPSLimit(), "SetFPSLimit(%d)", tt.in)
	}
}

func TestFollowLerpClamp(t *testing.T) {
	defer config.SetFollowLerp(config.GetFollowLerp())

	config.SetFollowLerp(0.1)
	assert.Equal(t, float32(config.MinFollowLerp), config.GetFollowLerp())
	config.SetFollowLerp(100)
	assert.Equal(t, float32(config.MaxFollowLerp), config.GetFollowLerp())
	config.SetFollowLerp(12)
	assert.Equal(t, float32(12), config.GetFollowLerp())
}

func TestDefaultIsValid(t *testing.T) {
	f := config.Default()
	require.NoError(t, f.Validate())
	assert.Len(t, f.Containers, 2)
}

func TestParse_OverridesDefaults(t *testing.T) {
	f, err := config.Parse([]byte(`
fps_limit: 30
catalog: items.yaml
pickup:
  follow_lerp: 9
containers:
  - name: crate
    size: 2
    position: [0, 0.5, -2]
    extents: [0.5, 0.5, 0.5]
starter_items:
  - container: crate
    item: bolt
    count: 3
  - item: plate
    count: 1
observer:
  addr: 127.0.0.1:8088
`))
	require.NoError(t, err)
	assert.Equal(t, 30, f.FPSLimit)
	assert.Equal(t, "items.yaml", f.Catalog)
	assert.Equal(t, float32(9), f.Pickup.FollowLerp)
	assert.Equal(t, 9, f.PlayerInventorySize, "unset keys keep their default")
	require.Len(t, f.Containers, 1)
	assert.Equal(t, "crate", f.Containers[0].Name)
	assert.Nil(t, f.Containers[0].BuildPose)
	assert.Len(t, f.StarterItems, 2)
	assert.Equal(t, "127.0.0.1:8088", f.Observer.Addr)

	defer config.SetFPSLimit(config.GetFPSLimit())
	defer config.SetFollowLerp(config.GetFollowLerp())
	f.Apply()
	assert.Equal(t, 30, config.GetFPSLimit())
	assert.Equal(t, float32(9), config.GetFollowLerp())
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":         "fps_limit: [",
		"empty catalog":    `catalog: ""`,
		"inventory size":   "player_inventory_size: 0",
		"duplicate":        "containers: [{name: a, size: 1}, {name: a, size: 1}]",
		"output range":     "containers: [{name: a, size: 1, output_slot: 1}]",
		"unknown starter":  "starter_items: [{container: attic, item: bolt, count: 1}]",
		"starter no count": "starter_items: [{item: bolt}]",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(raw))
			require.Error(t, err)
			if name != "bad yaml" {
				assert.ErrorIs(t, err, config.ErrInvalidConfig)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps_limit: 0\n"), 0o644))

	f, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, f.FPSLimit)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
