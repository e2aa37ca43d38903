// Package dishub 提供 DIS PDU 中继枢纽
//
// dishub 把 Web 客户端（WebSocket）、本地网络（UDP 广播/组播）与
// 其他 dishub 实例（Redis 发布订阅）连接成同一个扇出域：
// 任一端收到的 PDU 会转发给除来源以外的所有参与者。
//
// # 核心概念
//
//   - Participant: 可接收消息的一端，客户端会话、本地网络、跨实例桥接都是参与者
//   - Hub: 参与者注册表加上分发队列与分发协程
//   - Filter: 每个客户端会话独立的出站过滤脚本，出错时放行
//
// # 快速开始
//
//	node, err := dishub.New(
//	    dishub.WithConfigFile("dishub.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := node.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer node.Close()
//
//	http.ListenAndServe(":8080", node.Handler())
//
// # 防环
//
// 本地网络发出的 PDU 在头部 padding 字段（偏移 10-11）写入实例标签，
// 收到带自身标签的报文直接丢弃。跨实例桥接在负载前加 4 字节实例标签，
// 收到自身标签的负载同样丢弃。两种标签互不相关。
package dishub
