// Package xetcdstore 提供基于 etcd 的配置后端。
//
// 每个设置项是前缀下的一个独立键，值为原生字符串。独立键布局
// 让多个服务实例共享配置时可以利用 etcd 的单键事务与 Watch 能力。
//
// 包接受注入的 KV 客户端（*clientv3.Client 满足该接口），
// 连接的生命周期由调用方管理。
package xetcdstore
