package filter

import (
	"time"

	"github.com/dep2p/go-dishub/internal/util/logger"
	"github.com/dep2p/go-dishub/pkg/interfaces"
	"github.com/dep2p/go-dishub/pkg/types"
)

var log = logger.Logger("core.filter")

var evalErrs = logger.NewLimited(log, 5*time.Second, 1)

// Apply 对一条出站消息求值，返回实际要发送的字节与是否发送
//
// f 为 nil、求值出错或无意见时原样放行。
func Apply(f interfaces.Filter, msg []byte) ([]byte, bool) {
	if f == nil {
		return msg, true
	}

	res, err := f.Evaluate(msg)
	if err != nil {
		evalErrs.Warn("过滤器求值失败，消息放行", "err", err)
		return msg, true
	}

	switch res.Verdict {
	case types.VerdictDrop:
		return nil, false
	case types.VerdictRewrite:
		if res.Message == nil {
			return msg, true
		}
		return res.Message, true
	default:
		return msg, true
	}
}
