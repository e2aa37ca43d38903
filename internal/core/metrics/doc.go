// Package metrics 提供 Prometheus 监控指标
//
// 指标分两类：
//
//   - Collector 在每次抓取时遍历分发引擎的参与者快照，导出每个参与者的
//     收发条数与字节数，以及队列深度、丢弃数等引擎计数
//   - Tap 作为观测参与者注册到分发引擎，按 PDU 类型计数扇出流量，
//     并用滑动窗口计算最近的扇出速率
//
// # 指标
//
//	dishub_messages_sent_total{kind,id}
//	dishub_messages_received_total{kind,id}
//	dishub_bytes_sent_total{kind,id}
//	dishub_bytes_received_total{kind,id}
//	dishub_messages_dropped_total{kind,id}
//	dishub_participants{kind}
//	dishub_queue_depth
//	dishub_queue_dropped_total
//	dishub_dispatched_total
//	dishub_abandoned_total
//	dishub_pdus_total{pdu_type}
//	dishub_fanout_bytes_per_second
//	dishub_fanout_messages_per_second
//
// 参与者级指标的 id 标签随连接变化，断开的参与者在下一次抓取时消失。
package metrics
