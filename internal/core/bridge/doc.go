// Package bridge 实现跨实例桥接传输
//
// 多个 dishub 实例位于负载均衡之后时，通过共享的发布订阅频道组成同一个扇出域。
// 每个进程一个 Bridge 参与者。
//
// 防环方式与本地网络不同：发布时在消息前加 4 字节大端序的实例标签，
// 订阅收到负载后读出前 4 字节，等于自身标签的丢弃，否则去掉前缀后
// 以桥接自身为来源入队，扇出时不会再发布回频道。
//
// 发布与订阅使用两条独立的长连接，订阅在专用协程上持续运行。
// 启动时连接失败只记录日志，桥接不注册，其余部分照常运行。
package bridge
