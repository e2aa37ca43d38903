// Package interfaces 定义 dishub 的公共接口
//
//   - participant.go - Participant 参与者能力接口
//   - hub.go         - Hub 分发引擎入口
//   - filter.go      - Filter 出站过滤器
//
// 三种传输（客户端会话、本地网络、跨实例桥接）只共享 Participant
// 能力契约，不共享任何基类状态。
package interfaces
