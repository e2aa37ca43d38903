// Package hub 组装分发引擎
//
// Hub 持有唯一的注册表、分发队列与分发器，由 fx 构造后显式注入
// 各传输，进程内"只有一个注册表和队列"是构造期约束而不是全局变量。
//
// 二进制消息走队列异步扇出；文本消息在调用方协程上同步转发给其他参与者。
package hub
