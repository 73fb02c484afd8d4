package xoption

import (
	"fmt"
	"slices"
)

// Registry 按声明顺序收集设置项描述符。
//
// 顺序规则：
//   - Register 追加到末尾，首次声明顺序即枚举顺序
//   - 同一注册表内重复声明同名设置项是声明错误
//   - Derive 派生的子注册表可重新声明继承的同名设置项，
//     此时原地替换槽位、位置保持不变（不追加重复项），
//     且编解码器种类必须与被覆盖项一致
//
// Registry 的修改方法不是并发安全的，应在组装阶段完成全部注册。
type Registry struct {
	names     []string
	slots     map[string]*Option
	inherited map[string]bool
}

// NewRegistry 构造注册表并依序注册给定设置项。
func NewRegistry(opts ...*Option) (*Registry, error) {
	r := &Registry{
		slots:     make(map[string]*Option),
		inherited: make(map[string]bool),
	}
	for _, o := range opts {
		if err := r.Register(o); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNewRegistry 与 NewRegistry 相同，声明不合法时 panic。
func MustNewRegistry(opts ...*Option) *Registry {
	r, err := NewRegistry(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register 注册一个设置项。
//
// 同名项已在本注册表声明过时返回 ErrDuplicateOption；
// 同名项继承自父注册表时原地覆盖（位置不变），
// 编解码器种类不一致时返回 ErrKindMismatch。
func (r *Registry) Register(opt *Option) error {
	if opt == nil {
		return fmt.Errorf("%w: nil option", ErrInitialization)
	}

	existing, ok := r.slots[opt.name]
	if !ok {
		r.names = append(r.names, opt.name)
		r.slots[opt.name] = opt
		return nil
	}

	if !r.inherited[opt.name] {
		return fmt.Errorf("%w: %q", ErrDuplicateOption, opt.name)
	}
	if existing.codec.Kind() != opt.codec.Kind() {
		return fmt.Errorf("%w: %q overridden as %q while expected %q",
			ErrKindMismatch, opt.name, opt.codec.Kind(), existing.codec.Kind())
	}

	// 覆盖继承项：槽位原地替换，枚举位置保持不变。
	r.slots[opt.name] = opt
	delete(r.inherited, opt.name)
	return nil
}

// MustRegister 与 Register 相同，失败时 panic。
func (r *Registry) MustRegister(opt *Option) {
	if err := r.Register(opt); err != nil {
		panic(err)
	}
}

// Derive 派生子注册表：继承全部槽位与顺序，并依序注册给定设置项。
// 子注册表与父注册表相互独立，互不影响。
func (r *Registry) Derive(opts ...*Option) (*Registry, error) {
	child := &Registry{
		names:     slices.Clone(r.names),
		slots:     make(map[string]*Option, len(r.slots)),
		inherited: make(map[string]bool, len(r.slots)),
	}
	for name, o := range r.slots {
		child.slots[name] = o
		child.inherited[name] = true
	}
	for _, o := range opts {
		if err := child.Register(o); err != nil {
			return nil, err
		}
	}
	return child, nil
}

// MustDerive 与 Derive 相同，失败时 panic。
func (r *Registry) MustDerive(opts ...*Option) *Registry {
	child, err := r.Derive(opts...)
	if err != nil {
		panic(err)
	}
	return child
}

// Lookup 按名称查找设置项。
func (r *Registry) Lookup(name string) (*Option, bool) {
	o, ok := r.slots[name]
	return o, ok
}

// Options 按声明顺序返回全部设置项。
// 顺序在同一声明序列下跨进程可复现。
func (r *Registry) Options() []*Option {
	opts := make([]*Option, 0, len(r.names))
	for _, name := range r.names {
		opts = append(opts, r.slots[name])
	}
	return opts
}

// Names 按声明顺序返回全部设置项名称。
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Len 返回设置项数量。
func (r *Registry) Len() int {
	return len(r.names)
}
