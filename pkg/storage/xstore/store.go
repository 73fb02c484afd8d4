package xstore

import "context"

// Backend 定义设置项原生值的键值存储契约。
//
// 实现要求：
//   - Read 在键不存在时返回 ("", false, nil)，不得返回错误
//   - Write 覆盖已有值
//   - Delete 对不存在的键是空操作
//   - Keys 返回当前全部已知键，顺序不作保证
//
// 远程实现（Redis、etcd）应尊重 ctx 的取消与超时；
// 本地实现可以忽略 ctx。
type Backend interface {
	// Read 读取键对应的原生值。
	Read(ctx context.Context, key string) (raw string, ok bool, err error)

	// Write 写入键值。
	Write(ctx context.Context, key, raw string) error

	// Delete 删除键。
	Delete(ctx context.Context, key string) error

	// Keys 枚举全部已知键。
	Keys(ctx context.Context) ([]string, error)
}
