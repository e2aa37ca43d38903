package types

// FilterResult 过滤器对一条消息的求值结果
type FilterResult struct {
	Verdict FilterVerdict

	// Message 仅在 VerdictRewrite 时有效
	Message []byte
}

// Pass 放行结果
func Pass() FilterResult { return FilterResult{Verdict: VerdictPass} }

// Drop 丢弃结果
func Drop() FilterResult { return FilterResult{Verdict: VerdictDrop} }

// Rewrite 改写结果
func Rewrite(msg []byte) FilterResult { return FilterResult{Verdict: VerdictRewrite, Message: msg} }

// NoOpinion 无意见结果
func NoOpinion() FilterResult { return FilterResult{} }
