// Package types 定义 dishub 的公共数据结构
//
// 这是最底层包，不依赖任何其他 dishub 内部包。
//
// # 文件组织
//
//   - enums.go  - ParticipantKind, NetworkMode, Backpressure, FilterVerdict
//   - stats.go  - ConnectionStatistics 及其快照
//   - filter.go - FilterResult
//   - errors.go - 公共错误定义
package types
