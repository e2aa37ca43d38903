// Package network 实现本地网络 UDP 传输
//
// Transport 作为一个参与者，把物理网络上的 DIS 广播/组播流量接入分发引擎：
//
//   - 启动时以 SO_REUSEADDR 绑定端口，组播模式下加入组播组，
//     广播模式下枚举所有 up 网卡的广播地址（跳过链路本地与 0.0.0.0）
//   - 接收循环读取数据报，解码头部读出 padding 字段中的标签，
//     等于自身标签的是自己发出的回环流量，丢弃；其余截断到实际长度后入队
//   - SendBinary 把标签写入 padding 字段后发往组播组或每个广播地址
//   - SendText 为空操作
//
// 无法解码的数据报被静默丢弃。接收路径从不改写标签。
package network
