package filter

import (
	"encoding/binary"

	lua "github.com/yuin/gopher-lua"

	"github.com/dep2p/go-dishub/pkg/lib/pdu"
)

// disHelpers 暴露给脚本的 dis 表
var disHelpers = map[string]lua.LGFunction{
	"len":         luaLen,
	"pdu_type":    luaPDUType,
	"exercise_id": luaExerciseID,
	"u8":          luaU8,
	"u16":         luaU16,
	"u32":         luaU32,
}

func luaLen(L *lua.LState) int {
	L.Push(lua.LNumber(len(L.CheckString(1))))
	return 1
}

func luaPDUType(L *lua.LState) int {
	h, err := pdu.Decode([]byte(L.CheckString(1)))
	if err != nil {
		L.RaiseError("dis.pdu_type: %v", err)
		return 0
	}
	L.Push(lua.LNumber(h.PDUType))
	return 1
}

func luaExerciseID(L *lua.LState) int {
	h, err := pdu.Decode([]byte(L.CheckString(1)))
	if err != nil {
		L.RaiseError("dis.exercise_id: %v", err)
		return 0
	}
	L.Push(lua.LNumber(h.ExerciseID))
	return 1
}

// checkRange 取出消息与偏移，越界时抛出参数错误
func checkRange(L *lua.LState, width int) (string, int) {
	msg := L.CheckString(1)
	off := L.CheckInt(2)
	if off < 0 || off+width > len(msg) {
		L.ArgError(2, "offset out of range")
	}
	return msg, off
}

func luaU8(L *lua.LState) int {
	msg, off := checkRange(L, 1)
	L.Push(lua.LNumber(msg[off]))
	return 1
}

func luaU16(L *lua.LState) int {
	msg, off := checkRange(L, 2)
	L.Push(lua.LNumber(binary.BigEndian.Uint16([]byte(msg[off : off+2]))))
	return 1
}

func luaU32(L *lua.LState) int {
	msg, off := checkRange(L, 4)
	L.Push(lua.LNumber(binary.BigEndian.Uint32([]byte(msg[off : off+4]))))
	return 1
}
