package rules

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// LengthOp compares the length of an attribute value
type LengthOp string

const (
	LengthMin   LengthOp = "min-length"
	LengthExact LengthOp = "length"
	LengthMax   LengthOp = "max-length"
)

func getAttr(n *html.Node, name string) (value string, ok bool) {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// Tag matches element nodes by tag name, case insensitive
func Tag(names ...string) Predicate {
	lowerNames := make(map[string]bool, len(names))
	for _, name := range names {
		lowerNames[strings.ToLower(name)] = true
	}
	return func(n *html.Node) (bool, error) {
		return n.Type == html.ElementNode && lowerNames[strings.ToLower(n.Data)], nil
	}
}

// HasAttr matches nodes carrying the attribute
func HasAttr(name string) Predicate {
	return func(n *html.Node) (bool, error) {
		_, ok := getAttr(n, name)
		return ok, nil
	}
}

// AttrEquals matches an exact attribute value
func AttrEquals(name, value string) Predicate {
	return func(n *html.Node) (bool, error) {
		v, ok := getAttr(n, name)
		return ok && v == value, nil
	}
}

// AttrRegex matches the attribute value against a regular expression, the
// expression may be percent escaped
func AttrRegex(name, regexString string) (p Predicate, err error) {
	regexString, errUnescape := url.PathUnescape(regexString)
	if errUnescape != nil {
		return nil, errUnescape
	}
	regex, errParse := regexp.Compile(regexString)
	if errParse != nil {
		return nil, errParse
	}
	return func(n *html.Node) (bool, error) {
		v, ok := getAttr(n, name)
		return ok && regex.MatchString(v), nil
	}, nil
}

// AttrLength matches on the length of an attribute value, a missing attribute has length 0
func AttrLength(name string, op LengthOp, length int) (p Predicate, err error) {
	var lengthMatch func(actual int) bool
	switch op {
	case LengthMin:
		lengthMatch = func(actual int) bool { return actual >= length }
	case LengthExact:
		lengthMatch = func(actual int) bool { return actual == length }
	case LengthMax:
		lengthMatch = func(actual int) bool { return actual <= length }
	default:
		return nil, errors.New("unknown length rule " + string(op))
	}
	return func(n *html.Node) (bool, error) {
		v, _ := getAttr(n, name)
		return lengthMatch(len(v)), nil
	}, nil
}

// Selector matches nodes against a css selector, ancestors of the node are
// taken into account, so "ul > li" works as expected
func Selector(selector string) (p Predicate, err error) {
	sel, errCompile := cascadia.Compile(selector)
	if errCompile != nil {
		return nil, errCompile
	}
	return func(n *html.Node) (bool, error) {
		return goquery.NewDocumentFromNode(n).IsMatcher(sel), nil
	}, nil
}

// ParseAttr compiles an attribute rule like "href; regex:^https; max-length:200".
// The first part names the attribute, without further parts the attribute
// only has to be present.
func ParseAttr(attrRule string) (p Predicate, err error) {
	parts := strings.Split(attrRule, ";")
	name := strings.Trim(parts[0], " \t\n")
	if name == "" {
		return nil, errors.New("missing attribute name in " + strconv.Quote(attrRule))
	}
	predicates := []Predicate{HasAttr(name)}
	for _, part := range parts[1:] {
		part = strings.Trim(part, " \t\n")
		if part == "" {
			continue
		}
		ruleParts := strings.SplitN(part, ":", 2)
		if len(ruleParts) != 2 {
			return nil, errors.New("invalid attribute rule " + strconv.Quote(part) + " in " + strconv.Quote(attrRule))
		}
		ruleName := strings.Trim(ruleParts[0], "\t ")
		ruleData := strings.Trim(ruleParts[1], "\t ")
		switch ruleName {
		case "regex":
			ruleRegex, errRegex := AttrRegex(name, ruleData)
			if errRegex != nil {
				return nil, errRegex
			}
			predicates = append(predicates, ruleRegex)
		case string(LengthMin), string(LengthExact), string(LengthMax):
			ruleDataInt, errRuleDataInt := strconv.Atoi(ruleData)
			if errRuleDataInt != nil {
				return nil, errRuleDataInt
			}
			ruleLength, errLength := AttrLength(name, LengthOp(ruleName), ruleDataInt)
			if errLength != nil {
				return nil, errLength
			}
			predicates = append(predicates, ruleLength)
		case "equals":
			predicates = append(predicates, AttrEquals(name, ruleData))
		default:
			return nil, errors.New("unknown attribute rule " + strconv.Quote(ruleName))
		}
	}
	return All(predicates...), nil
}

// All predicates must match, evaluation stops at the first miss or error
func All(predicates ...Predicate) Predicate {
	return func(n *html.Node) (bool, error) {
		for _, p := range predicates {
			match, err := p(n)
			if err != nil || !match {
				return false, err
			}
		}
		return true, nil
	}
}

// Any predicate must match, evaluation stops at the first hit or error
func Any(predicates ...Predicate) Predicate {
	return func(n *html.Node) (bool, error) {
		for _, p := range predicates {
			match, err := p(n)
			if err != nil || match {
				return match && err == nil, err
			}
		}
		return false, nil
	}
}

// Not inverts a predicate, errors pass through
func Not(p Predicate) Predicate {
	return func(n *html.Node) (bool, error) {
		match, err := p(n)
		if err != nil {
			return false, err
		}
		return !match, nil
	}
}
