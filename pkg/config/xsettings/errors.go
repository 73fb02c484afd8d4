package xsettings

import "errors"

// 配置实例相关错误。
var (
	// ErrNilRegistry 表示未提供设置项注册表。
	ErrNilRegistry = errors.New("xsettings: nil registry")

	// ErrNilBackend 表示未提供后端存储。
	ErrNilBackend = errors.New("xsettings: nil backend")

	// ErrUnknownOption 表示按名称访问的设置项未注册。
	ErrUnknownOption = errors.New("xsettings: unknown option")

	// ErrVersionKeyCollision 表示版本保留键与某个已注册设置项同名。
	ErrVersionKeyCollision = errors.New("xsettings: version key collides with a registered option")

	// ErrResolver 表示解析器钩子自身失败。
	// 这是致命错误，中止本次访问，不再做任何回落。
	ErrResolver = errors.New("xsettings: resolver failed")

	// ErrMigration 表示构造期迁移失败。
	ErrMigration = errors.New("xsettings: migration failed")

	// ErrBadSnapshot 表示快照不是合法的 JSON 对象。
	ErrBadSnapshot = errors.New("xsettings: malformed snapshot")
)
