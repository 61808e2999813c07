// Package mocks 提供测试用的模拟实现
//
// 每个 Mock 都有可覆盖的 *Func 字段，未设置时使用默认行为，
// 并记录调用次数便于断言。
package mocks
