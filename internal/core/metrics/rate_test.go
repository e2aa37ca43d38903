package metrics

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
)

func newTestMeter(window time.Duration) (*RateMeter, *clock.Mock) {
	clk := clock.NewMock()
	clk.Set(time.Unix(1_700_000_000, 0))
	return newRateMeter(window, clk), clk
}

func TestRateMeter_Window(t *testing.T) {
	r, clk := newTestMeter(10 * time.Second)

	r.Add(50)
	clk.Add(time.Second)
	r.Add(50)
	assert.InDelta(t, 10.0, r.Rate(), 0.001)

	// 第一个桶滑出窗口
	clk.Add(9 * time.Second)
	assert.InDelta(t, 5.0, r.Rate(), 0.001)

	clk.Add(time.Minute)
	assert.Zero(t, r.Rate())
}

func TestRateMeter_SameSecond(t *testing.T) {
	r, clk := newTestMeter(2 * time.Second)
	r.Add(1)
	clk.Add(300 * time.Millisecond)
	r.Add(1)
	assert.InDelta(t, 1.0, r.Rate(), 0.001)

	r.Reset()
	assert.Zero(t, r.Rate())
}

func TestRateMeter_MinimumWindow(t *testing.T) {
	r, _ := newTestMeter(0)
	r.Add(7)
	assert.InDelta(t, 7.0, r.Rate(), 0.001)
}
