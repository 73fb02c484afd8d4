// Package xsettings 将设置项注册表与后端存储组装为带类型的配置实例。
//
// # 读写管线
//
// 读取：环境变量覆盖 → 临时覆盖 → 缓存 → 后端原生值 → 编解码 → 校验。
// 解析或校验失败时进入解析器钩子（Resolver），其返回值作为读取结果并写入缓存，
// 因此只要设置项声明了默认值，读取永不硬性失败。
//
// 写入：校验 → 序列化 → 后端写入 → 缓存更新。校验失败直接返回
// ErrValidation，不进入解析器（写入路径严格、读取路径宽容是有意的不对称：
// 损坏的存储数据不应使长期运行的应用崩溃，而程序员的非法输入不应被吞掉）。
//
// # 缓存契约
//
// 缓存命中时读取不触达后端；写入时新值与缓存一致则完全跳过后端写入
// （连续两次相同的 Set 至多产生一次后端写入）。缓存只与本实例自身的
// 写入保持一致：后端被外部并发修改时，新值要到下一次未命中读取或
// InvalidateCache 之后才可见。
//
// # 迁移
//
// 构造时执行一次版本迁移：读取保留键（默认 "ConfigVersion"）下的已存版本，
// 交给 WithMigration 注册的迁移逻辑，结束后写入当前版本。
// Steps 辅助函数按版本边界从旧到新逐段应用，一次构造可跨越多个边界。
// 已存版本大于当前版本时保持不变（版本单调不减）。
//
// # 并发
//
// 单个 Config 实例内部使用互斥锁保证自身缓存与后端写入的一致性。
// 跨进程共享同一后端时，本包不提供跨进程锁；需要外部协调。
package xsettings
