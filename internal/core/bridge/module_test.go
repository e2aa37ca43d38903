package bridge

import (
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-dishub/config"
	"github.com/dep2p/go-dishub/internal/core/hub"
)

func unifiedConfig(t *testing.T, addr string) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Network.Enable = false
	cfg.Bridge.Enable = true
	host, port := splitAddr(t, addr)
	cfg.Bridge.Host = host
	cfg.Bridge.Port = port
	return cfg
}

func TestModule_Connects(t *testing.T) {
	srv := miniredis.RunT(t)

	var b *Bridge
	var h *hub.Hub
	app := fxtest.New(t,
		fx.Supply(unifiedConfig(t, srv.Addr())),
		hub.Module,
		Module,
		fx.Populate(&b, &h),
	)
	app.RequireStart()

	require.NotNil(t, b)
	assert.Len(t, h.Participants(), 1)

	app.RequireStop()
	assert.Empty(t, h.Participants())
}

func TestModule_UnreachableNotFatal(t *testing.T) {
	cfg := unifiedConfig(t, "127.0.0.1:1")
	cfg.Bridge.DialTimeout = config.Duration(100 * time.Millisecond)

	var h *hub.Hub
	app := fxtest.New(t,
		fx.Supply(cfg),
		hub.Module,
		Module,
		fx.Populate(&h),
	)
	app.RequireStart()
	assert.Empty(t, h.Participants())
	app.RequireStop()
}

func TestModule_Disabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Network.Enable = false

	var b *Bridge
	app := fxtest.New(t, fx.Supply(cfg), hub.Module, Module, fx.Populate(&b))
	app.RequireStart()
	assert.Nil(t, b)
	app.RequireStop()
}

func splitAddr(t *testing.T, addr string) (string, int) {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}
