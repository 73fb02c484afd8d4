// Package xstore 定义设置项原生值的后端存储契约，并提供内存实现。
//
// # 契约
//
// Backend 是一个极简的键值存储：读、写、删、枚举键。
// 值始终是字符串形式的原生值，类型化与缓存由上层 xsettings 负责。
// 键不存在不是错误：Read 返回 (“”, false, nil)，上层据此回落默认值。
//
// 除内存实现外，具体后端由同目录的兄弟包提供：
//   - xfilestore：JSON/YAML 文件（通用回落后端）
//   - xredistore：Redis 哈希
//   - xetcdstore：etcd 前缀键空间
//   - xwinreg：Windows 注册表（仅 windows 构建）
//
// 后端自身不做缓存与排序保证；跨进程并发修改的一致性不在契约内。
package xstore
