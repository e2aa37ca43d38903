package interfaces

import "github.com/dep2p/go-dishub/pkg/types"

// Filter 参与者级出站过滤器
//
// 在扇出决定之后、实际发送之前对每条消息调用一次，不在接收路径上调用。
// 返回错误或 VerdictNoOpinion 时消息放行。
type Filter interface {
	Evaluate(msg []byte) (types.FilterResult, error)
}

// FilterFunc 函数适配器
type FilterFunc func(msg []byte) (types.FilterResult, error)

// Evaluate 实现 Filter
func (f FilterFunc) Evaluate(msg []byte) (types.FilterResult, error) {
	return f(msg)
}
