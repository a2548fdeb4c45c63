package rules

import (
	"errors"
	"strings"
	"testing"

	"github.com/foomo/componentbuilder/vo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func getNode(t *testing.T, markup string, tagName string) *html.Node {
	doc, errParse := html.Parse(strings.NewReader(markup))
	require.NoError(t, errParse)
	var find func(n *html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.Data == tagName {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := find(c); found != nil {
				return found
			}
		}
		return nil
	}
	n := find(doc)
	require.NotNil(t, n, "no <"+tagName+"> in "+markup)
	return n
}

func TestClassifyIdentity(t *testing.T) {
	m := NewMatcher()
	c, errClassify := m.Classify(getNode(t, `<div id="a">x</div>`, "div"))
	assert.NoError(t, errClassify)
	assert.Equal(t, &Classification{Use: "div", WithProps: vo.Props{}, SelfClosing: false}, c)

	for _, tagName := range []string{"br", "img", "hr", "input", "wbr"} {
		c, errClassify := m.Classify(getNode(t, "<p><"+tagName+"></p>", tagName))
		assert.NoError(t, errClassify)
		assert.Equal(t, tagName, c.Use)
		assert.True(t, c.SelfClosing, tagName)
	}
}

func TestClassifyLowerCasesHandBuiltNodes(t *testing.T) {
	c, errClassify := NewMatcher().Classify(&html.Node{Type: html.ElementNode, Data: "BR"})
	assert.NoError(t, errClassify)
	assert.Equal(t, "br", c.Use)
	assert.True(t, c.SelfClosing)
}

func TestClassifyFirstMatchWins(t *testing.T) {
	m := NewMatcher(
		Rule{When: Tag("b"), Use: "strong", WithProps: vo.Props{"weight": "bold"}},
		Rule{When: Tag("b", "i"), Use: "em"},
	)
	c, errClassify := m.Classify(getNode(t, `<b>hi</b>`, "b"))
	assert.NoError(t, errClassify)
	assert.Equal(t, "strong", c.Use)
	assert.Equal(t, vo.Props{"weight": "bold"}, c.WithProps)
	assert.False(t, c.SelfClosing)

	c, errClassify = m.Classify(getNode(t, `<i>hi</i>`, "i"))
	assert.NoError(t, errClassify)
	assert.Equal(t, "em", c.Use)
	assert.Equal(t, vo.Props{}, c.WithProps)
}

func TestClassifyCopiesDefaultProps(t *testing.T) {
	defaults := vo.Props{"a": "b"}
	m := NewMatcher(Rule{When: Tag("b"), Use: "strong", WithProps: defaults})
	c, _ := m.Classify(getNode(t, `<b>hi</b>`, "b"))
	c.WithProps["c"] = "d"
	assert.Equal(t, vo.Props{"a": "b"}, defaults)
}

func TestClassifyIgnore(t *testing.T) {
	m := NewMatcher(
		Rule{When: Tag("script"), Ignore: true},
		Rule{When: Tag("script"), Use: "never"},
	)
	c, errClassify := m.Classify(getNode(t, `<script>alert(1)</script>`, "script"))
	assert.NoError(t, errClassify)
	assert.Nil(t, c)
}

func TestClassifySelfClosingRule(t *testing.T) {
	m := NewMatcher(Rule{When: Tag("div"), Use: "Placeholder", SelfClosing: true})
	c, errClassify := m.Classify(getNode(t, `<div><p>a</p></div>`, "div"))
	assert.NoError(t, errClassify)
	assert.True(t, c.SelfClosing)

	// a matching rule decides, the void set only applies to the identity fallback
	m = NewMatcher(Rule{When: Tag("img"), Use: "Image"})
	c, errClassify = m.Classify(getNode(t, `<img src="a.png">`, "img"))
	assert.NoError(t, errClassify)
	assert.False(t, c.SelfClosing)
}

func TestClassifySkipsRulesWithoutPredicate(t *testing.T) {
	m := NewMatcher(Rule{Use: "nope"}, Rule{})
	assert.Equal(t, 2, m.Len())
	c, errClassify := m.Classify(getNode(t, `<span>a</span>`, "span"))
	assert.NoError(t, errClassify)
	assert.Equal(t, "span", c.Use)
}

func TestClassifyPropagatesPredicateErrors(t *testing.T) {
	errBroken := errors.New("broken predicate")
	called := false
	m := NewMatcher(
		Rule{When: func(n *html.Node) (bool, error) { return false, errBroken }},
		Rule{When: func(n *html.Node) (bool, error) {
			called = true
			return true, nil
		}, Use: "x"},
	)
	c, errClassify := m.Classify(getNode(t, `<span>a</span>`, "span"))
	assert.Nil(t, c)
	assert.ErrorIs(t, errClassify, errBroken)
	assert.Contains(t, errClassify.Error(), "rule 0")
	assert.False(t, called)
}

func TestNewMatcherCopiesRules(t *testing.T) {
	ruleList := []Rule{{When: Tag("b"), Use: "strong"}}
	m := NewMatcher(ruleList...)
	ruleList[0].Use = "changed"
	c, _ := m.Classify(getNode(t, `<b>x</b>`, "b"))
	assert.Equal(t, "strong", c.Use)
}

func TestPropName(t *testing.T) {
	for attr, prop := range map[string]string{
		"class":       "className",
		"for":         "htmlFor",
		"crossorigin": "crossOrigin",
		"srclang":     "srcLang",
		"accesskey":   "accessKey",
		"id":          "id",
		"data-foo":    "data-foo",
		"xlink:href":  "xlink:href",
	} {
		assert.Equal(t, prop, PropName(attr))
	}
}

func TestIsVoid(t *testing.T) {
	assert.True(t, IsVoid("br"))
	assert.True(t, IsVoid("keygen"))
	assert.False(t, IsVoid("div"))
	assert.False(t, IsVoid("BR"))
}
