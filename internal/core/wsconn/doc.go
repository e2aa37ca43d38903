// Package wsconn 实现客户端 WebSocket 会话参与者
//
// 每个升级成功的 WebSocket 连接对应一个 Conn 参与者：
//   - 建立时挂载过滤器并注册到分发引擎
//   - 入站文本消息走文本复述路径，二进制消息入队扇出
//   - 出站消息经过滤器后放入有界缓冲，由写协程带超时写出
//   - 连接关闭时注销并释放过滤器
//
// 分发协程调用 SendBinary/SendText 只做缓冲投递，不会因慢客户端阻塞。
package wsconn
