package filter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-dishub/pkg/lib/pdu"
	"github.com/dep2p/go-dishub/pkg/types"
)

func buildPDU(t *testing.T, pduType, exercise uint8) []byte {
	t.Helper()
	msg, err := pdu.Build(pdu.Header{
		ProtocolVersion: 7,
		ExerciseID:      exercise,
		PDUType:         pduType,
		ProtocolFamily:  1,
	}, []byte{0xde, 0xad, 0xbe, 0xef})
	require.NoError(t, err)
	return msg
}

const entityOnly = `
function aoim(msg)
  return dis.pdu_type(msg) == 1
end
`

func TestLuaFilter_EntityStateOnly(t *testing.T) {
	f, err := NewLuaFilter(entityOnly, "", 0)
	require.NoError(t, err)
	defer f.Close()

	res, err := f.Evaluate(buildPDU(t, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, types.VerdictPass, res.Verdict)

	res, err = f.Evaluate(buildPDU(t, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, types.VerdictDrop, res.Verdict)
	assert.Equal(t, int64(2), f.Evaluations())
}

func TestLuaFilter_Rewrite(t *testing.T) {
	script := `
function aoim(msg)
  return string.sub(msg, 1, 1) .. string.char(9) .. string.sub(msg, 3)
end
`
	f, err := NewLuaFilter(script, "aoim", time.Second)
	require.NoError(t, err)
	defer f.Close()

	in := buildPDU(t, 1, 1)
	res, err := f.Evaluate(in)
	require.NoError(t, err)
	require.Equal(t, types.VerdictRewrite, res.Verdict)
	assert.Equal(t, byte(9), res.Message[1])
	assert.Equal(t, in[2:], res.Message[2:])
}

func TestLuaFilter_Helpers(t *testing.T) {
	script := `
function aoim(msg)
  if dis.len(msg) ~= 16 then return false end
  if dis.exercise_id(msg) ~= 5 then return false end
  if dis.u8(msg, 12) ~= 0xde then return false end
  if dis.u16(msg, 12) ~= 0xdead then return false end
  return dis.u32(msg, 12) == 0xdeadbeef
end
`
	f, err := NewLuaFilter(script, "", 0)
	require.NoError(t, err)
	defer f.Close()

	res, err := f.Evaluate(buildPDU(t, 1, 5))
	require.NoError(t, err)
	assert.Equal(t, types.VerdictPass, res.Verdict)
}

func TestLuaFilter_FailOpenShapes(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr bool
	}{
		{"nil return", "function aoim(msg) end", false},
		{"number return", "function aoim(msg) return 1 end", false},
		{"runtime error", "function aoim(msg) error('bad') end", true},
		{"helper out of range", "function aoim(msg) return dis.u32(msg, 100) end", true},
		{"short pdu", "function aoim(msg) return dis.pdu_type('ab') end", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewLuaFilter(tt.script, "", 0)
			require.NoError(t, err)
			defer f.Close()

			msg := buildPDU(t, 1, 1)
			res, err := f.Evaluate(msg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, types.VerdictNoOpinion, res.Verdict)

			out, send := Apply(f, msg)
			assert.True(t, send)
			assert.Equal(t, msg, out)
		})
	}
}

func TestLuaFilter_Timeout(t *testing.T) {
	f, err := NewLuaFilter("function aoim(msg) while true do end end", "", 20*time.Millisecond)
	require.NoError(t, err)
	defer f.Close()

	start := time.Now()
	_, err = f.Evaluate([]byte("x"))
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, int64(1), f.Errors())
}

func TestLuaFilter_ZeroTimeoutUsesDefault(t *testing.T) {
	f, err := NewLuaFilter("function aoim(msg) while true do end end", "", 0)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, DefaultTimeout, f.Timeout())

	done := make(chan error, 1)
	go func() {
		_, err := f.Evaluate([]byte("x"))
		done <- err
	}()
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("零超时的死循环脚本未被中断")
	}
}

func TestLuaFilter_Sandbox(t *testing.T) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "io", "os", "require"} {
		script := "function aoim(msg) return " + name + " == nil end"
		f, err := NewLuaFilter(script, "", 0)
		require.NoError(t, err)

		res, err := f.Evaluate([]byte("x"))
		require.NoError(t, err)
		assert.Equal(t, types.VerdictPass, res.Verdict, name)
		f.Close()
	}
}

func TestLuaFilter_Options(t *testing.T) {
	script := `
filter_options = { entry_point = "keep", timeout_ms = 250 }
function keep(msg) return true end
`
	f, err := NewLuaFilter(script, "aoim", 0)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "keep", f.EntryPoint())
	assert.Equal(t, 250*time.Millisecond, f.Timeout())
}

func TestNewLuaFilter_Errors(t *testing.T) {
	_, err := NewLuaFilter("", "", 0)
	assert.ErrorIs(t, err, ErrEmptyScript)

	_, err = NewLuaFilter("function other() end", "aoim", 0)
	assert.ErrorIs(t, err, ErrNoEntryPoint)

	_, err = NewLuaFilter("function aoim(", "aoim", 0)
	assert.Error(t, err)
}

func TestLuaFilter_Closed(t *testing.T) {
	f, err := NewLuaFilter(entityOnly, "", 0)
	require.NoError(t, err)
	f.Close()
	f.Close()

	_, err = f.Evaluate([]byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
}

// ============================================================================
//                              Factory
// ============================================================================

func TestFactory(t *testing.T) {
	cfg := DefaultConfig()
	f, err := NewFactory(cfg)
	require.NoError(t, err)
	assert.False(t, f.Enabled())
	assert.Nil(t, f.New())

	cfg.Enable = true
	cfg.Script = entityOnly
	f, err = NewFactory(cfg)
	require.NoError(t, err)
	assert.True(t, f.Enabled())

	a, b := f.New(), f.New()
	require.NotNil(t, a)
	assert.NotSame(t, a, b)
	assert.Equal(t, int64(2), f.Built())
	Release(a)
	Release(b)
	Release(nil)
}

func TestFactory_ScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aoim.lua")
	require.NoError(t, os.WriteFile(path, []byte(entityOnly), 0o600))

	cfg := DefaultConfig()
	cfg.Enable = true
	cfg.ScriptFile = path
	f, err := NewFactory(cfg)
	require.NoError(t, err)
	assert.True(t, f.Enabled())

	cfg.ScriptFile = filepath.Join(t.TempDir(), "missing.lua")
	f, err = NewFactory(cfg)
	assert.Error(t, err)
	assert.False(t, f.Enabled())
}

func TestFactory_BrokenScript(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enable = true
	cfg.Script = "function aoim("

	f := ProvideFactory(Params{})
	assert.False(t, f.Enabled())

	f, err := NewFactory(cfg)
	assert.Error(t, err)
	assert.False(t, f.Enabled())
	assert.Nil(t, f.New())
}
