package testutil

import (
	"context"
	"testing"
	"time"
)

// WaitForCondition 轮询条件直到满足或超时
//
// 返回条件是否满足（超时返回 false）。
func WaitForCondition(t *testing.T, timeout time.Duration, interval time.Duration, condition func() bool) bool {
	t.Helper()

	if condition() {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return condition()
		case <-ticker.C:
			if condition() {
				return true
			}
		}
	}
}

// Eventually 在 timeout 内以 10ms 间隔重试，超时则 fail 测试
//
//	testutil.Eventually(t, time.Second, func() bool {
//	    return len(p.Binary()) == 2
//	}, "应收到两条消息")
func Eventually(t *testing.T, timeout time.Duration, condition func() bool, msg string) {
	t.Helper()
	if !WaitForCondition(t, timeout, 10*time.Millisecond, condition) {
		t.Fatalf("等待超时: %s", msg)
	}
}

// Never 在 window 内条件始终不成立，否则 fail 测试
func Never(t *testing.T, window time.Duration, condition func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(window)
	for time.Now().Before(deadline) {
		if condition() {
			t.Fatalf("条件不应成立: %s", msg)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
