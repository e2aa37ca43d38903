// Package distributor 实现分发队列与扇出工作协程
//
// 接收与扇出分为两段：各传输的接收协程只负责 Push 后立即返回读取，
// 工作协程 Pop 后对注册表中除来源外的每个参与者调用 SendBinary。
//
// # 顺序
//
// 单个工作协程时，所有参与者观察到的发送顺序与全局入队顺序一致。
// 多个工作协程提高吞吐，但不再保证跨协程的 FIFO。
//
// # 有界队列
//
// 默认无界，生产者永不阻塞。设置容量后由 Backpressure 决定满时行为：
//   - block: 阻塞生产者直到有空位或 ctx 结束
//   - drop-oldest: 丢弃队头最旧条目
//   - reject: 返回 ErrQueueFull
//
// # 停止
//
// Stop 先关闭队列拒绝新条目，工作协程继续排空已入队的消息，
// 直到队列为空或 ctx 到期；到期时剩余条目被放弃并计数。
package distributor
