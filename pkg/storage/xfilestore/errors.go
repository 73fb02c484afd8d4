package xfilestore

import "errors"

// 文件后端相关错误。
var (
	// ErrEmptyPath 表示未提供文件路径。
	ErrEmptyPath = errors.New("xfilestore: empty path")

	// ErrUnsupportedFormat 表示文件扩展名不是受支持的格式。
	ErrUnsupportedFormat = errors.New("xfilestore: unsupported format")

	// ErrParseFailed 表示文件内容无法按声明格式解析。
	ErrParseFailed = errors.New("xfilestore: parse failed")

	// ErrWriteFailed 表示文件落盘失败。
	ErrWriteFailed = errors.New("xfilestore: write failed")
)
