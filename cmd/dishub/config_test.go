package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-dishub/config"
	"github.com/dep2p/go-dishub/pkg/types"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestBuildConfig_Defaults(t *testing.T) {
	f, err := parseFlags(nil)
	require.NoError(t, err)

	cfg, err := buildConfig(f, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), cfg)
}

func TestBuildConfig_Flags(t *testing.T) {
	f, err := parseFlags([]string{
		"-listen", ":9090",
		"-port", "3001",
		"-mode", "multicast",
		"-multicast", "239.9.9.9",
		"-bridge", "redis.local:6380",
		"-channel", "exercise-7",
		"-record", "out.pcap",
		"-replay", "in.pcap",
	})
	require.NoError(t, err)

	cfg, err := buildConfig(f, envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.WebSocket.ListenAddr)
	assert.True(t, cfg.Network.Enable)
	assert.Equal(t, types.ModeMulticast, cfg.Network.Mode)
	assert.Equal(t, 3001, cfg.Network.Port)
	assert.Equal(t, "239.9.9.9", cfg.Network.MulticastGroup)
	assert.True(t, cfg.Bridge.Enable)
	assert.Equal(t, "redis.local", cfg.Bridge.Host)
	assert.Equal(t, 6380, cfg.Bridge.Port)
	assert.Equal(t, "exercise-7", cfg.Bridge.Channel)
	assert.True(t, cfg.Recorder.Enable)
	assert.Equal(t, "out.pcap", cfg.Recorder.File)
	assert.Equal(t, "in.pcap", cfg.Recorder.ReplayFile)
}

func TestBuildConfig_ModeOff(t *testing.T) {
	f, err := parseFlags([]string{"-mode", "OFF"})
	require.NoError(t, err)

	cfg, err := buildConfig(f, envMap(nil))
	require.NoError(t, err)
	assert.False(t, cfg.Network.Enable)
}

func TestBuildConfig_InvalidFlags(t *testing.T) {
	cases := [][]string{
		{"-mode", "unicast"},
		{"-bridge", "no-port"},
		{"-bridge", "host:abc"},
		{"-port", "70000"},
	}
	for _, args := range cases {
		f, err := parseFlags(args)
		require.NoError(t, err)
		_, err = buildConfig(f, envMap(nil))
		assert.Error(t, err, "args %v", args)
	}
}

func TestBuildConfig_Env(t *testing.T) {
	f, err := parseFlags(nil)
	require.NoError(t, err)

	env := envMap(map[string]string{
		config.EnvPrefix + config.EnvNetworkMode:    "multicast",
		config.EnvPrefix + config.EnvNetworkPort:    "4000",
		config.EnvPrefix + config.EnvBridgeEnable:   "yes",
		config.EnvPrefix + config.EnvBridgeHost:     "10.0.0.5",
		config.EnvPrefix + config.EnvBridgePort:     "6379",
		config.EnvPrefix + config.EnvFilterEnable:   "1",
		config.EnvPrefix + config.EnvFilterScript:   "/etc/dishub/filter.lua",
		config.EnvPrefix + config.EnvListenAddr:     "127.0.0.1:8181",
		config.EnvPrefix + config.EnvMulticastGroup: "239.1.1.1",
	})
	cfg, err := buildConfig(f, env)
	require.NoError(t, err)

	assert.Equal(t, types.ModeMulticast, cfg.Network.Mode)
	assert.Equal(t, 4000, cfg.Network.Port)
	assert.Equal(t, "239.1.1.1", cfg.Network.MulticastGroup)
	assert.True(t, cfg.Bridge.Enable)
	assert.Equal(t, "10.0.0.5", cfg.Bridge.Host)
	assert.Equal(t, 6379, cfg.Bridge.Port)
	assert.True(t, cfg.Filter.Enable)
	assert.Equal(t, "/etc/dishub/filter.lua", cfg.Filter.ScriptFile)
	assert.Equal(t, "127.0.0.1:8181", cfg.WebSocket.ListenAddr)
}

func TestBuildConfig_EnvInvalid(t *testing.T) {
	f, err := parseFlags(nil)
	require.NoError(t, err)

	for _, kv := range [][2]string{
		{config.EnvNetworkMode, "anycast"},
		{config.EnvNetworkPort, "x"},
		{config.EnvBridgePort, "x"},
	} {
		_, err := buildConfig(f, envMap(map[string]string{config.EnvPrefix + kv[0]: kv[1]}))
		assert.Error(t, err, kv[0])
	}
}

func TestBuildConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dishub.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"network":{"port":5000},"websocket":{"listen_addr":":7000"}}`), 0o600))

	f, err := parseFlags([]string{"-config", path, "-port", "5002"})
	require.NoError(t, err)

	env := envMap(map[string]string{
		config.EnvPrefix + config.EnvNetworkPort: "5001",
		config.EnvPrefix + config.EnvListenAddr:  ":7001",
	})
	cfg, err := buildConfig(f, env)
	require.NoError(t, err)

	// 命令行 > 环境变量 > 文件
	assert.Equal(t, 5002, cfg.Network.Port)
	assert.Equal(t, ":7001", cfg.WebSocket.ListenAddr)
}

func TestBuildConfig_MissingFile(t *testing.T) {
	f, err := parseFlags([]string{"-config", filepath.Join(t.TempDir(), "nope.json")})
	require.NoError(t, err)

	_, err = buildConfig(f, envMap(nil))
	assert.Error(t, err)
}

func TestLogPath(t *testing.T) {
	f, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Empty(t, logPath(f, envMap(nil)))
	assert.Equal(t, "env.log", logPath(f, envMap(map[string]string{config.EnvPrefix + config.EnvLogFile: "env.log"})))

	f, err = parseFlags([]string{"-log", "flag.log"})
	require.NoError(t, err)
	assert.Equal(t, "flag.log", logPath(f, envMap(map[string]string{config.EnvPrefix + config.EnvLogFile: "env.log"})))
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "1", "yes", " on "} {
		assert.True(t, parseBool(s), s)
	}
	for _, s := range []string{"false", "0", "no", "", "maybe"} {
		assert.False(t, parseBool(s), s)
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	_, err := parseFlags([]string{"-nope"})
	assert.Error(t, err)
}
