package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-dishub/config"
	"github.com/dep2p/go-dishub/internal/core/hub"
)

func TestModule_Enabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Network.BindAddr = "127.0.0.1"
	cfg.Network.Port = 0
	cfg.Network.Destinations = []string{"127.0.0.1:9"}

	var tr *Transport
	var h *hub.Hub
	app := fxtest.New(t,
		fx.Supply(cfg),
		hub.Module,
		Module,
		fx.Populate(&tr, &h),
	)
	app.RequireStart()

	require.NotNil(t, tr)
	assert.NotNil(t, tr.LocalAddr())
	assert.Len(t, h.Participants(), 1)
	assert.Equal(t, "127.0.0.1:9", tr.Targets()[0].String())

	app.RequireStop()
	assert.Empty(t, h.Participants())
}

func TestModule_Disabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Network.Enable = false

	var tr *Transport
	app := fxtest.New(t,
		fx.Supply(cfg),
		hub.Module,
		Module,
		fx.Populate(&tr),
	)
	app.RequireStart()
	assert.Nil(t, tr)
	app.RequireStop()
}

// 绑定失败只记录日志，不阻止应用启动
func TestModule_BindFailureNotFatal(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Network.BindAddr = "203.0.113.1"
	cfg.Network.Port = 0

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
