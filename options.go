package componentbuilder

import (
	"github.com/foomo/componentbuilder/vo"
	"go.uber.org/zap"
)

// CreateFunc constructs an element. Terminal elements are created with nil
// children, all other elements get a non nil slice, which may be empty.
type CreateFunc func(elementType string, props vo.Props, children []interface{}) interface{}

// DroppedChildren decides what happens with children, that did not produce an element
type DroppedChildren int

const (
	// DroppedChildrenKeep appends a nil placeholder
	DroppedChildrenKeep DroppedChildren = iota
	// DroppedChildrenSkip leaves no trace in the children
	DroppedChildrenSkip
)

// DefaultMaxDepth of element nesting
const DefaultMaxDepth = 10000

// Option configures a Builder
type Option func(b *Builder)

// WithCreateFunc sets the element construction primitive, default is vo.NewElement
func WithCreateFunc(create CreateFunc) Option {
	return func(b *Builder) {
		b.create = create
	}
}

// WithKeyGenerator sets the source of key props, default is DefaultKeys
func WithKeyGenerator(keys KeyGenerator) Option {
	return func(b *Builder) {
		b.keys = keys
	}
}

// WithDroppedChildren sets the policy for dropped children
func WithDroppedChildren(dc DroppedChildren) Option {
	return func(b *Builder) {
		b.droppedChildren = dc
	}
}

// WithMaxDepth limits element nesting, values < 1 fall back to DefaultMaxDepth
func WithMaxDepth(maxDepth int) Option {
	return func(b *Builder) {
		b.maxDepth = maxDepth
	}
}

// WithMinify minifies markup before parsing it
func WithMinify(minify bool) Option {
	return func(b *Builder) {
		b.minify = minify
	}
}

// WithLogger sets the logger, default is a no-op logger
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		b.l = l
	}
}

// WithMetrics records builds in m
func WithMetrics(m *Metrics) Option {
	return func(b *Builder) {
		b.metrics = m
	}
}
