package types

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
//                              ConnectionStatistics 测试
// ============================================================================

func TestConnectionStatistics_Counters(t *testing.T) {
	s := NewConnectionStatistics()

	s.MessageSent(10)
	s.MessageSent(5)
	s.MessageReceived(7)
	s.MessageDropped()

	snap := s.Snapshot()
	assert.Equal(t, int64(2), snap.MessagesSent)
	assert.Equal(t, int64(15), snap.BytesSent)
	assert.Equal(t, int64(1), snap.MessagesReceived)
	assert.Equal(t, int64(7), snap.BytesReceived)
	assert.Equal(t, int64(1), snap.MessagesDropped)
	assert.False(t, snap.CreatedAt.IsZero())
}

func TestConnectionStatistics_Concurrent(t *testing.T) {
	s := NewConnectionStatistics()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s.MessageSent(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(8000), s.Snapshot().MessagesSent)
}

func TestLatencySummary(t *testing.T) {
	s := NewConnectionStatistics()
	assert.Equal(t, time.Duration(0), s.Snapshot().Latency.Mean())

	s.ObserveLatency(30 * time.Millisecond)
	s.ObserveLatency(10 * time.Millisecond)
	s.ObserveLatency(20 * time.Millisecond)

	lat := s.Snapshot().Latency
	assert.Equal(t, int64(3), lat.Count)
	assert.Equal(t, 10*time.Millisecond, lat.Min)
	assert.Equal(t, 30*time.Millisecond, lat.Max)
	assert.Equal(t, 20*time.Millisecond, lat.Mean())
}

// ============================================================================
//                              枚举解析测试
// ============================================================================

func TestParseNetworkMode(t *testing.T) {
	m, err := ParseNetworkMode("MULTICAST")
	assert.NoError(t, err)
	assert.Equal(t, ModeMulticast, m)

	m, err = ParseNetworkMode("broadcast")
	assert.NoError(t, err)
	assert.Equal(t, ModeBroadcast, m)

	_, err = ParseNetworkMode("unicast")
	assert.ErrorIs(t, err, ErrUnknownNetworkMode)

	_, err = ParseNetworkMode("")
	assert.ErrorIs(t, err, ErrUnknownNetworkMode)
}

func TestNetworkMode_Text(t *testing.T) {
	var m NetworkMode
	assert.NoError(t, m.UnmarshalText([]byte("multicast")))
	assert.Equal(t, ModeMulticast, m)

	b, err := m.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "multicast", string(b))

	assert.Error(t, m.UnmarshalText([]byte("anycast")))
}

func TestParseBackpressure(t *testing.T) {
	cases := map[string]Backpressure{
		"":            BackpressureBlock,
		"block":       BackpressureBlock,
		"drop-oldest": BackpressureDropOldest,
		"dropold":     BackpressureDropOldest,
		"Reject":      BackpressureReject,
	}
	for in, want := range cases {
		got, err := ParseBackpressure(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBackpressure("spill")
	assert.ErrorIs(t, err, ErrUnknownBackpressure)
}

func TestParticipantKind_String(t *testing.T) {
	assert.Equal(t, "client", KindClient.String())
	assert.Equal(t, "network", KindNetwork.String())
	assert.Equal(t, "bridge", KindBridge.String())
	assert.Equal(t, "recorder", KindRecorder.String())
	assert.Equal(t, "observer", KindObserver.String())
	assert.Equal(t, "unknown", ParticipantKind(42).String())
}
