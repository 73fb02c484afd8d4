// Package xfilestore 提供基于本地文件的配置后端。
//
// 文件是一个扁平对象（JSON 或 YAML，按扩展名检测），键为设置项名称，
// 值为原生字符串。文件整体读入内存，写入时全量序列化后以
// 临时文件加原子重命名落盘，避免写到一半的文件被其它进程读到。
//
// 文件不存在时后端从空状态启动，首次写入时创建文件。
// Watch 可监视文件被外部修改并通知调用方（典型动作是使配置缓存失效）。
package xfilestore
