// Package recorder 实现扇出流量的抓包记录与回放
//
// Recorder 作为参与者注册到分发引擎，把收到的每条 PDU 封装成
// Ethernet/IPv4/UDP 帧写入 pcap 文件，可直接用 Wireshark 的 DIS 解析器查看。
//
// Replay 读取 pcap 或 pcapng 文件，取出每个 UDP 负载中的 PDU，
// 以无来源方式入队，扇出给全部参与者。
package recorder
