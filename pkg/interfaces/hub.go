package interfaces

// Hub 分发引擎入口
//
// 每个进程构造一个 Hub 并显式传给各传输，没有全局单例。
type Hub interface {
	// Register 注册参与者（幂等）
	Register(p Participant)

	// Unregister 注销参与者（幂等）
	Unregister(p Participant)

	// EnqueueBinary 将收到的消息排入分发队列后立即返回
	//
	// origin 为 nil 表示发给所有参与者。
	EnqueueBinary(msg []byte, origin Participant)

	// RepeatText 将文本消息转发给除 origin 外的所有参与者
	RepeatText(text string, origin Participant)
}
