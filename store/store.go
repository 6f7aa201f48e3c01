// Package store 提供存储实现。
//
// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.Store、core.KeyValueStore、core.ContentStore 接口。
//
// 示例：
//
//	var kv core.KeyValueStore = store.NewMemoryStore()
//	var content core.ContentStore = store.NewContentKV(kv)
package store
