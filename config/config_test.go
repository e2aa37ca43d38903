package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-dishub/pkg/types"
)

// TestNewConfig 默认配置有效
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())

	assert.True(t, cfg.Network.Enable)
	assert.Equal(t, types.ModeBroadcast, cfg.Network.Mode)
	assert.Equal(t, 3000, cfg.Network.Port)
	assert.Equal(t, "239.1.2.3", cfg.Network.MulticastGroup)
	assert.Equal(t, 8192, cfg.Network.MaxDatagramSize)

	assert.False(t, cfg.Bridge.Enable)
	assert.Equal(t, "localhost:6379", cfg.Bridge.Addr())
	assert.Equal(t, "DIS", cfg.Bridge.Channel)

	assert.Equal(t, "aoim", cfg.Filter.EntryPoint)
	assert.Equal(t, 1, cfg.Distributor.Workers)
	assert.Equal(t, 0, cfg.Distributor.QueueCapacity)
}

func TestValidateAll_Nil(t *testing.T) {
	assert.ErrorIs(t, ValidateAll(nil), ErrNilConfig)
	assert.Panics(t, func() { MustValidate(nil) })
}

// ============================================================================
//                              子配置校验
// ============================================================================

func TestNetworkConfig_Validate(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		cfg := NetworkConfig{Enable: false, Port: -1}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("BadPort", func(t *testing.T) {
		cfg := DefaultNetworkConfig()
		cfg.Port = 70000
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidPort)
	})

	t.Run("BadMulticastGroup", func(t *testing.T) {
		cfg := DefaultNetworkConfig()
		cfg.Mode = types.ModeMulticast
		cfg.MulticastGroup = "10.0.0.1"
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidMulticastGroup)
	})

	t.Run("BroadcastIgnoresGroup", func(t *testing.T) {
		cfg := DefaultNetworkConfig()
		cfg.MulticastGroup = ""
		assert.NoError(t, cfg.Validate())
	})

	t.Run("UnknownMode", func(t *testing.T) {
		cfg := DefaultNetworkConfig()
		cfg.Mode = types.NetworkMode(9)
		assert.ErrorIs(t, cfg.Validate(), types.ErrUnknownNetworkMode)
	})
}

func TestBridgeConfig_Validate(t *testing.T) {
	cfg := DefaultBridgeConfig()
	cfg.Enable = true
	assert.NoError(t, cfg.Validate())

	cfg.Channel = ""
	assert.Error(t, cfg.Validate())
}

func TestDistributorConfig_Validate(t *testing.T) {
	cfg := DefaultDistributorConfig()
	cfg.Workers = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultDistributorConfig()
	cfg.DrainTimeout = Duration(-time.Second)
	assert.ErrorIs(t, cfg.Validate(), ErrNegativeDuration)
}

func TestWebSocketConfig_Validate(t *testing.T) {
	cfg := DefaultWebSocketConfig()
	cfg.Path = "dis"
	assert.Error(t, cfg.Validate())

	cfg = DefaultWebSocketConfig()
	cfg.SendBuffer = 0
	assert.Error(t, cfg.Validate())
}

func TestRecorderAndMetrics_Validate(t *testing.T) {
	assert.Error(t, RecorderConfig{Enable: true}.Validate())
	assert.NoError(t, RecorderConfig{Enable: false}.Validate())
	assert.Error(t, MetricsConfig{Enable: true, Path: "metrics"}.Validate())
}

// ============================================================================
//                              JSON
// ============================================================================

func TestFromJSON_KeepsDefaults(t *testing.T) {
	cfg, err := FromJSON([]byte(`{
		"network": {"mode": "MULTICAST"},
		"bridge": {"enable": true, "host": "redis"},
		"distributor": {"drain_timeout": "250ms", "backpressure": "drop-oldest", "queue_capacity": 10}
	}`))
	require.NoError(t, err)

	assert.Equal(t, types.ModeMulticast, cfg.Network.Mode)
	assert.Equal(t, 3000, cfg.Network.Port)
	assert.Equal(t, "redis:6379", cfg.Bridge.Addr())
	assert.Equal(t, 250*time.Millisecond, cfg.Distributor.DrainTimeout.Duration())
	assert.Equal(t, types.BackpressureDropOldest, cfg.Distributor.Backpressure)
	assert.NoError(t, cfg.Validate())
}

func TestFromJSON_UnknownMode(t *testing.T) {
	_, err := FromJSON([]byte(`{"network": {"mode": "unicast"}}`))
	assert.ErrorIs(t, err, types.ErrUnknownNetworkMode)
}

func TestFromJSON_DurationNanos(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"filter": {"timeout": 1000000}}`))
	require.NoError(t, err)
	assert.Equal(t, time.Millisecond, cfg.Filter.Timeout.Duration())

	_, err = FromJSON([]byte(`{"filter": {"timeout": "soon"}}`))
	assert.Error(t, err)
}

func TestToJSON_RoundTrip(t *testing.T) {
	cfg := NewConfig()
	cfg.Network.Mode = types.ModeMulticast
	cfg.WebSocket.AllowedOrigins = []string{"https://example.org"}

	data, err := cfg.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mode": "multicast"`)
	assert.Contains(t, string(data), `"drain_timeout": "5s"`)

	back, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dishub.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"network": {"port": 3001}}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.Network.Port)

	require.NoError(t, os.WriteFile(path, []byte(`{"network": {"port": -1}}`), 0o600))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidPort)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	cfg := NewConfig()
	cfg.WebSocket.AllowedOrigins = []string{"a"}

	c := cfg.Clone()
	c.WebSocket.AllowedOrigins[0] = "b"
	c.Network.Port = 1

	assert.Equal(t, "a", cfg.WebSocket.AllowedOrigins[0])
	assert.Equal(t, 3000, cfg.Network.Port)
	assert.Nil(t, (*Config)(nil).Clone())
}
