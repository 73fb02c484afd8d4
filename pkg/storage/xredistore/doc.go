// Package xredistore 提供基于 Redis Hash 的配置后端。
//
// 所有设置项存放在同一个 Hash 键下，字段为设置项名称，值为原生字符串。
// 单 Hash 布局使 Keys 与整体清理只需一条命令，也便于多个应用实例
// 共享同一份配置。
//
// 包接受注入的 redis.UniversalClient，连接的生命周期由调用方管理；
// 基础 Redis 操作请直接使用 Client()。
package xredistore
