// Package xoption 提供带类型的设置项（Option）声明与注册能力。
//
// # 设计理念
//
// 每个设置项的值存在三种表示：
//   - 类型化值（typed value）：应用代码使用的 Go 值（int64、string、[]any 等）
//   - 原生值（raw value）：后端实际存储的字符串形式
//   - JSON 值（JSON value）：快照/恢复及外部工具交互使用的 JSON 形式
//
// Codec 接口负责三种表示之间的双向转换与校验，是本库的核心扩展点：
// 新增一种设置项类型只需实现 Codec，注册表、缓存与迁移逻辑无需改动。
//
// Registry 按声明顺序收集 Option 描述符，顺序在派生（Derive）与
// 同名覆盖时保持稳定：覆盖原地替换槽位，不追加重复项。
//
// # 错误处理
//
// 声明期错误（空名称、重复名称、默认值不合法）在构造时立即返回，
// 不延迟到首次使用。运行期校验失败返回 *ValidationError，
// 反序列化失败返回 *DeserializationError，二者分别匹配
// ErrValidation 与 ErrDeserialization 哨兵。
package xoption
