// Package mocks 提供统一的测试 Mock 实现
//
//   - MockParticipant: 模拟 interfaces.Participant，记录收到的文本与二进制消息
//   - MockHub: 模拟 interfaces.Hub，记录入队与注册调用
//   - MockPubSub: 模拟桥接使用的发布订阅连接，可手动投递订阅消息
//
// # 设计原则
//
// 1. 函数式注入: 每个 Mock 都支持通过 XxxFunc 字段注入自定义行为
// 2. 调用记录: 记录调用历史，并发安全，便于在分发协程运行时断言
//
// # 使用示例
//
//	p := mocks.NewMockParticipant("a")
//	hub.Register(p)
//	hub.EnqueueBinary(msg, nil)
//
//	testutil.Eventually(t, time.Second, func() bool {
//	    return len(p.Binary()) == 1
//	}, "a 应收到一条消息")
package mocks
