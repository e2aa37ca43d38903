package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-dishub/config"
	"github.com/dep2p/go-dishub/internal/core/hub"
	"github.com/dep2p/go-dishub/pkg/lib/pdu"
	"github.com/dep2p/go-dishub/tests/testutil"
)

func TestModule_ServesMetrics(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Network.Enable = false

	var h *hub.Hub
	var e *Exporter
	app := fxtest.New(t, fx.Supply(cfg), hub.Module, Module, fx.Populate(&h, &e))
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, e)
	assert.Equal(t, "/metrics", e.Path)
	assert.Len(t, h.Participants(), 1)

	msg, err := pdu.Build(pdu.Header{ProtocolVersion: 7, PDUType: 1, ProtocolFamily: 1}, nil)
	require.NoError(t, err)
	h.EnqueueBinary(msg, nil)
	testutil.Eventually(t, time.Second, func() bool { return e.Tap.PDUCount(1) == 1 }, "Tap 未收到")

	srv := httptest.NewServer(e.Handler)
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, `dishub_pdus_total{pdu_type="1"} 1`), text)
	assert.Contains(t, text, `dishub_participants{kind="observer"} 1`)
	assert.Contains(t, text, "go_goroutines")
}

func TestModule_Disabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Network.Enable = false
	cfg.Metrics.Enable = false

	var e *Exporter
	app := fxtest.New(t, fx.Supply(cfg), hub.Module, Module, fx.Populate(&e))
	app.RequireStart()
	defer app.RequireStop()
	assert.Nil(t, e)
}
