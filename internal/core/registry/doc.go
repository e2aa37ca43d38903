// Package registry 实现活跃参与者集合
//
// 写操作在互斥锁下重建一个不可变切片并原子发布，
// 遍历只读取发布时刻的快照，因此并发 Add/Remove 不会破坏遍历，
// 也不会出现重复或半个条目。Remove 返回之后开始的遍历不会再看到该参与者。
package registry
