// Package lib 包含与架构组件无关的基础工具库
//
//   - pdu: DIS PDU 头部解析、构造与出口标签读写
//
// # 与 pkg/ 其他目录的关系
//
//   - interfaces/: 组件公共接口（分发引擎、参与者、过滤器）
//   - types/: 公共类型定义（枚举、统计、过滤结果）
//   - lib/: 基础工具库（本目录）
//
// # 使用示例
//
//	import "github.com/dep2p/go-dishub/pkg/lib/pdu"
//
//	h, err := pdu.Decode(msg)
package lib
