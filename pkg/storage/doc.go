// Package storage 提供配置后端相关的子包。
//
// 子包列表：
//   - xstore: 后端接口定义与内存实现
//   - xfilestore: 本地 JSON/YAML 文件后端，支持变更监视
//   - xredistore: Redis Hash 后端
//   - xetcdstore: etcd 前缀键后端
//   - xwinreg: Windows 注册表后端（仅 windows）
//
// 设计原则：
//   - 后端只做原生字符串的键值存取，编解码与校验留在上层
//   - 键不存在不是错误，删除不存在的键是空操作
//   - 远程后端接受注入的客户端，连接生命周期由调用方管理
package storage
