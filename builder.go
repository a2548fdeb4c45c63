package componentbuilder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/foomo/componentbuilder/rules"
	"github.com/foomo/componentbuilder/vo"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// ErrMaxDepthExceeded is returned for markup nested deeper than the configured max depth
var ErrMaxDepthExceeded = errors.New("max depth exceeded")

// Builder converts markup into element trees. A Builder is immutable and
// can be used from multiple goroutines.
type Builder struct {
	matcher         *rules.Matcher
	create          CreateFunc
	keys            KeyGenerator
	droppedChildren DroppedChildren
	maxDepth        int
	minify          bool
	l               *zap.Logger
	metrics         *Metrics
}

// New builder, rules are evaluated in the given order and the first match wins
func New(ruleList []rules.Rule, opts ...Option) *Builder {
	b := &Builder{
		matcher:         rules.NewMatcher(ruleList...),
		create:          vo.NewElement,
		keys:            DefaultKeys,
		droppedChildren: DroppedChildrenKeep,
		maxDepth:        DefaultMaxDepth,
		l:               zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.maxDepth < 1 {
		b.maxDepth = DefaultMaxDepth
	}
	if b.create == nil {
		b.create = vo.NewElement
	}
	if b.keys == nil {
		b.keys = DefaultKeys
	}
	if b.l == nil {
		b.l = zap.NewNop()
	}
	return b
}

// Build parses markup and converts the first node in its body. Further top
// level siblings are ignored. An empty body yields nil without an error.
func (b *Builder) Build(markup string) (element interface{}, err error) {
	start := time.Now()
	defer func() {
		b.metrics.observeBuild(start, err)
	}()
	if b.minify {
		minified, errMinify := minifyMarkup(markup)
		if errMinify != nil {
			return nil, fmt.Errorf("could not minify markup: %w", errMinify)
		}
		markup = minified
	}
	doc, errDoc := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if errDoc != nil {
		return nil, errDoc
	}
	body := doc.Find("body")
	if body.Length() == 0 || body.Get(0).FirstChild == nil {
		b.l.Debug("nothing to build, empty body")
		return nil, nil
	}
	element, err = b.BuildNode(body.Get(0).FirstChild)
	if err != nil {
		return nil, err
	}
	b.l.Debug("built element tree", zap.Duration("duration", time.Since(start)), zap.Bool("empty", element == nil))
	return element, nil
}

// frame of an element under construction
type frame struct {
	elementType string
	props       vo.Props
	// nil for terminal elements
	children []interface{}
	// next child node to visit
	next  *html.Node
	depth int
}

// BuildNode converts a parsed node. Anything but an element node and nodes
// dropped by an ignore rule yield nil.
func (b *Builder) BuildNode(root *html.Node) (element interface{}, err error) {
	if root == nil || root.Type != html.ElementNode {
		return nil, nil
	}
	rootFrame, errOpen := b.open(root, 1)
	if errOpen != nil || rootFrame == nil {
		return nil, errOpen
	}
	// depth first, an element is created once all its children are done
	stack := []*frame{rootFrame}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		var pushed *frame
		for top.next != nil && pushed == nil {
			n := top.next
			top.next = n.NextSibling
			switch n.Type {
			case html.TextNode:
				top.children = append(top.children, collapseWhitespace(n.Data))
			case html.ElementNode:
				childFrame, errOpenChild := b.open(n, top.depth+1)
				if errOpenChild != nil {
					return nil, errOpenChild
				}
				if childFrame == nil {
					if b.droppedChildren == DroppedChildrenKeep {
						top.children = append(top.children, nil)
					}
					continue
				}
				pushed = childFrame
			}
		}
		if pushed != nil {
			stack = append(stack, pushed)
			continue
		}
		stack = stack[:len(stack)-1]
		el := b.create(top.elementType, top.props, top.children)
		b.metrics.countElement(top.elementType)
		if len(stack) == 0 {
			return el, nil
		}
		parent := stack[len(stack)-1]
		parent.children = append(parent.children, el)
	}
	return nil, nil
}

// open classifies an element node and prepares its frame, a nil frame means
// the node was dropped
func (b *Builder) open(n *html.Node, depth int) (f *frame, err error) {
	if depth > b.maxDepth {
		return nil, fmt.Errorf("%w: <%s> at depth %d", ErrMaxDepthExceeded, n.Data, depth)
	}
	c, errClassify := b.matcher.Classify(n)
	if errClassify != nil {
		return nil, errClassify
	}
	if c == nil {
		b.l.Debug("dropping node", zap.String("tag", n.Data), zap.Int("depth", depth))
		b.metrics.countDropped()
		return nil, nil
	}
	f = &frame{
		elementType: c.Use,
		props:       b.props(n, c.WithProps),
		depth:       depth,
	}
	if !c.SelfClosing {
		f.children = []interface{}{}
		f.next = n.FirstChild
	}
	return f, nil
}

// props of a node, attributes win over defaults, the key always comes from the key generator
func (b *Builder) props(n *html.Node, defaultProps vo.Props) vo.Props {
	props := defaultProps.Copy()
	for _, attr := range n.Attr {
		name := attr.Key
		if attr.Namespace != "" {
			name = attr.Namespace + ":" + attr.Key
		}
		props[rules.PropName(name)] = attr.Val
	}
	props[vo.PropKey] = b.keys.NextKey()
	return props
}
