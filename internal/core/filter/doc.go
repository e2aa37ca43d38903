// Package filter 实现参与者级出站过滤
//
// 过滤器在扇出决定之后、发送给某个参与者之前对消息求值一次，
// 结果为放行、丢弃、改写或无意见。未配置、求值出错、返回无意见时消息一律放行。
//
// 脚本过滤器基于 gopher-lua，每个参与者独立一个 LState，建立连接时挂载，之后不再变化。
// 脚本运行在受限环境中：只开放 base/table/string/math 库，去掉 dofile/loadfile/load/loadstring 以及模块加载。
//
// 入口函数（默认 aoim）接收消息字节串，返回：
//
//	true / false  放行 / 丢弃
//	string        改写后的消息
//	其他          无意见
//
// 脚本可使用 dis 辅助表按字节读取 PDU 头：
//
//	dis.pdu_type(msg)  dis.exercise_id(msg)  dis.len(msg)
//	dis.u8(msg, off)   dis.u16(msg, off)     dis.u32(msg, off)
//
// off 从 0 开始，多字节按网络字节序。
package filter
