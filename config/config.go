package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/foomo/componentbuilder/rules"
	"github.com/foomo/componentbuilder/vo"
	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	KeysCounter = "counter"
	KeysUUID    = "uuid"

	DroppedChildrenKeep = "keep"
	DroppedChildrenSkip = "skip"
)

// Rule is the declarative form of a rules.Rule, all given conditions must match
type Rule struct {
	Tag         []string               `yaml:"tag" validate:"required_without_all=Selector Attr"`
	Selector    string                 `yaml:"selector"`
	Attr        string                 `yaml:"attr"`
	Ignore      bool                   `yaml:"ignore"`
	Use         string                 `yaml:"use" validate:"required_unless=Ignore true"`
	WithProps   map[string]interface{} `yaml:"withProps"`
	SelfClosing bool                   `yaml:"selfClosing"`
}

type Config struct {
	Minify          bool   `yaml:"minify"`
	Keys            string `yaml:"keys" validate:"oneof=counter uuid"`
	KeyPrefix       string `yaml:"keyPrefix" validate:"required_if=Keys counter"`
	DroppedChildren string `yaml:"droppedChildren" validate:"oneof=keep skip"`
	MaxDepth        int    `yaml:"maxDepth" validate:"gte=1"`
	Rules           []Rule `yaml:"rules"`
}

var validate = validator.New()

func defaults() *Config {
	return &Config{
		Keys:            KeysCounter,
		KeyPrefix:       "key",
		DroppedChildren: DroppedChildrenKeep,
		MaxDepth:        10000,
	}
}

// Load and validate a yaml config
func Load(yamlBytes []byte) (conf *Config, err error) {
	conf = defaults()
	errUnmarshal := yaml.Unmarshal(yamlBytes, conf)
	if errUnmarshal != nil {
		return nil, errUnmarshal
	}
	errValidate := conf.Validate()
	if errValidate != nil {
		return nil, errValidate
	}
	return conf, nil
}

// Get loads a config file
func Get(filename string) (conf *Config, err error) {
	yamlBytes, errRead := os.ReadFile(filename)
	if errRead != nil {
		return nil, errRead
	}
	conf, errLoad := Load(yamlBytes)
	if errLoad != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, errLoad)
	}
	return conf, nil
}

// Validate the config and every rule, all problems are reported at once
func (c *Config) Validate() (err error) {
	err = multierr.Append(err, validationError("config", validate.Struct(c)))
	for i, r := range c.Rules {
		err = multierr.Append(err, validationError(fmt.Sprint("rule ", i), validate.Struct(r)))
	}
	return err
}

func validationError(context string, err error) error {
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%s: %w", context, err)
	}
	var combined error
	for _, fieldError := range validationErrors {
		combined = multierr.Append(combined, fmt.Errorf("%s: %s failed on %s", context, fieldError.Field(), fieldError.Tag()))
	}
	return combined
}

// CompileRules compiles the declarative rules in their configured order
func (c *Config) CompileRules() (ruleList []rules.Rule, err error) {
	ruleList = make([]rules.Rule, 0, len(c.Rules))
	for i, r := range c.Rules {
		rule, errRule := r.compile()
		if errRule != nil {
			err = multierr.Append(err, fmt.Errorf("rule %d: %w", i, errRule))
			continue
		}
		ruleList = append(ruleList, rule)
	}
	if err != nil {
		return nil, err
	}
	return ruleList, nil
}

func (r Rule) compile() (rule rules.Rule, err error) {
	predicates := []rules.Predicate{}
	if len(r.Tag) > 0 {
		predicates = append(predicates, rules.Tag(r.Tag...))
	}
	if r.Selector != "" {
		selector, errSelector := rules.Selector(r.Selector)
		if errSelector != nil {
			return rule, errSelector
		}
		predicates = append(predicates, selector)
	}
	if r.Attr != "" {
		attr, errAttr := rules.ParseAttr(r.Attr)
		if errAttr != nil {
			return rule, errAttr
		}
		predicates = append(predicates, attr)
	}
	if len(predicates) == 0 {
		return rule, errors.New("a rule needs a tag, selector or attr condition")
	}
	var withProps vo.Props
	if len(r.WithProps) > 0 {
		withProps = vo.Props(r.WithProps)
	}
	return rules.Rule{
		When:        rules.All(predicates...),
		Ignore:      r.Ignore,
		Use:         r.Use,
		WithProps:   withProps,
		SelfClosing: r.SelfClosing,
	}, nil
}
