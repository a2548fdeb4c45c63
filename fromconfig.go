package componentbuilder

import (
	"errors"

	"github.com/foomo/componentbuilder/config"
)

// NewFromConfig creates a builder with the rules and options of a config,
// opts are applied after the config and win
func NewFromConfig(conf *config.Config, opts ...Option) (b *Builder, err error) {
	if conf == nil {
		return nil, errors.New("config must not be nil")
	}
	ruleList, errRules := conf.CompileRules()
	if errRules != nil {
		return nil, errRules
	}
	confOpts := []Option{
		WithMinify(conf.Minify),
		WithMaxDepth(conf.MaxDepth),
	}
	switch conf.Keys {
	case config.KeysUUID:
		confOpts = append(confOpts, WithKeyGenerator(NewUUIDKeys()))
	default:
		if conf.KeyPrefix != "" {
			confOpts = append(confOpts, WithKeyGenerator(NewCounterKeys(conf.KeyPrefix)))
		}
	}
	if conf.DroppedChildren == config.DroppedChildrenSkip {
		confOpts = append(confOpts, WithDroppedChildren(DroppedChildrenSkip))
	}
	return New(ruleList, append(confOpts, opts...)...), nil
}
