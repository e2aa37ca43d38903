package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-dishub/config"
)

func TestModule(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Filter.Enable = true
	cfg.Filter.Script = entityOnly

	var f *Factory
	app := fxtest.New(t, fx.Supply(cfg), Module, fx.Populate(&f))
	app.RequireStart()
	defer app.RequireStop()

	assert.True(t, f.Enabled())
	flt := f.New()
	assert.NotNil(t, flt)
	Release(flt)
}

func TestModule_BrokenScriptNotFatal(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Filter.Enable = true
	cfg.Filter.Script = "function aoim("

	var f *Factory
	app := fxtest.New(t, fx.Supply(cfg), Module, fx.Populate(&f))
	app.RequireStart()
	defer app.RequireStop()

	assert.False(t, f.Enabled())
	assert.Nil(t, f.New())
}
