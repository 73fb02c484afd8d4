package xsettings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyChain 表示链中没有任何配置实例。
var ErrEmptyChain = errors.New("xsettings: empty chain")

// Chain 把多个配置实例按优先级组成只读视图。
//
// 读取逐个实例查询，返回第一个非默认值；所有实例都只有默认值时
// 返回最后一个实例的默认值。典型用法是用户级配置叠加在系统级配置之上。
type Chain struct {
	configs []*Config
}

// NewChain 构造配置链，实例按优先级从高到低排列。
func NewChain(configs ...*Config) (*Chain, error) {
	if len(configs) == 0 {
		return nil, ErrEmptyChain
	}
	for i, c := range configs {
		if c == nil {
			return nil, fmt.Errorf("xsettings: chain config at index %d is nil", i)
		}
	}
	chain := &Chain{configs: make([]*Config, len(configs))}
	copy(chain.configs, configs)
	return chain, nil
}

// Get 返回链中第一个非默认来源的值。
func (ch *Chain) Get(ctx context.Context, name string) (any, error) {
	value, _, err := ch.GetSource(ctx, name)
	return value, err
}

// GetSource 与 Get 相同，并额外报告值的来源。
// 所有实例都回落默认值时返回第一个实例的默认值，来源为 SourceDefault。
func (ch *Chain) GetSource(ctx context.Context, name string) (any, ValueSource, error) {
	var (
		firstDefault     any
		haveFirstDefault bool
	)
	for _, c := range ch.configs {
		value, source, err := c.GetSource(ctx, name)
		if err != nil {
			return nil, source, err
		}
		if source != SourceDefault {
			return value, source, nil
		}
		if !haveFirstDefault {
			firstDefault, haveFirstDefault = value, true
		}
	}
	return firstDefault, SourceDefault, nil
}

// GetJSON 返回链中首个非默认值的 JSON 形式。
// 所有实例都回落默认值时返回第一个实例的默认值。
func (ch *Chain) GetJSON(ctx context.Context, name string) (json.RawMessage, error) {
	for _, c := range ch.configs {
		_, source, err := c.GetSource(ctx, name)
		if err != nil {
			return nil, err
		}
		if source != SourceDefault {
			return c.GetJSON(ctx, name)
		}
	}
	return ch.configs[0].GetJSON(ctx, name)
}
