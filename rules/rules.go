package rules

import (
	"fmt"
	"strings"

	"github.com/foomo/componentbuilder/vo"
	"golang.org/x/net/html"
)

// Predicate decides, if a rule applies to an element node. An error aborts
// the classification and with it the whole conversion.
type Predicate func(n *html.Node) (match bool, err error)

// Rule overrides how a matching element is converted
type Rule struct {
	// When must hold for the rule to apply, a rule without a predicate never matches
	When Predicate
	// Ignore drops the node and its complete subtree
	Ignore bool
	// Use is the element type to emit instead of the tag name
	Use string
	// WithProps are default props, attributes of the node win over them
	WithProps vo.Props
	// SelfClosing elements are emitted without children
	SelfClosing bool
}

// Classification tells the builder what to emit for a node
type Classification struct {
	Use         string
	WithProps   vo.Props
	SelfClosing bool
}

// Matcher resolves the first matching rule of an ordered rule list
type Matcher struct {
	rules []Rule
}

// NewMatcher takes a copy of the rules, the first rule has the highest priority
func NewMatcher(rules ...Rule) *Matcher {
	m := &Matcher{
		rules: make([]Rule, len(rules)),
	}
	copy(m.rules, rules)
	return m
}

// Len number of rules
func (m *Matcher) Len() int {
	return len(m.rules)
}

// Classify an element node. A nil classification without an error means the
// node was ignored by a rule and must not produce any output.
func (m *Matcher) Classify(n *html.Node) (c *Classification, err error) {
	for i, rule := range m.rules {
		if rule.When == nil {
			continue
		}
		match, errMatch := rule.When(n)
		if errMatch != nil {
			return nil, fmt.Errorf("rule %d failed on <%s>: %w", i, n.Data, errMatch)
		}
		if !match {
			continue
		}
		if rule.Ignore {
			return nil, nil
		}
		return &Classification{
			Use:         rule.Use,
			WithProps:   rule.WithProps.Copy(),
			SelfClosing: rule.SelfClosing,
		}, nil
	}
	tagName := strings.ToLower(n.Data)
	return &Classification{
		Use:         tagName,
		WithProps:   vo.Props{},
		SelfClosing: IsVoid(tagName),
	}, nil
}
