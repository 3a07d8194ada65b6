// Package config reads the settings of the algebra engine from a
// gcfg (INI style) file.
package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/gcfg.v1"

	"zappem.net/pub/math/algebrars/constants"
	"zappem.net/pub/math/algebrars/lexer"
	"zappem.net/pub/math/algebrars/simplify"
	"zappem.net/pub/math/algebrars/token"
)

// Example is a complete configuration file.
const Example = `[Simplify]
# Upper limit on simplification passes.
MaxPasses = 256

# Named constants substituted during evaluation. These replace the
# built in pi, π and e when they share a name.
[Constant "tau"]
Value = 6.2831853071795864769252867666
`

type SimplifyConfig struct {
	MaxPasses int
}

type ConstantConfig struct {
	Value string

	parsed decimal.Decimal
}

// CheckInit validates a constant and parses its value.
func (c *ConstantConfig) CheckInit(name string) error {
	if toks, err := lexer.Lex(name); err != nil || len(toks) != 1 || !toks[0].IsVar() {
		return fmt.Errorf("Constant '%s' is not a valid variable name.", name)
	}
	if c.Value == "" {
		return fmt.Errorf("Need to specify a Value for Constant '%s'.", name)
	}
	d, err := decimal.NewFromString(c.Value)
	if err != nil {
		return fmt.Errorf("Value of Constant '%s' is not a decimal: %q.", name, c.Value)
	}
	c.parsed = d
	return nil
}

// Config is the whole configuration.
type Config struct {
	Simplify SimplifyConfig
	Constant map[string]*ConstantConfig
}

// Default returns the built in settings.
func Default() *Config {
	return &Config{
		Simplify: SimplifyConfig{MaxPasses: simplify.DefaultMaxPasses},
	}
}

// CheckInit validates c, filling in defaults.
func (c *Config) CheckInit() error {
	if c.Simplify.MaxPasses == 0 {
		c.Simplify.MaxPasses = simplify.DefaultMaxPasses
	} else if c.Simplify.MaxPasses < 0 {
		return fmt.Errorf(
			"Simplify given a negative MaxPasses, %d.", c.Simplify.MaxPasses,
		)
	}
	for name, k := range c.Constant {
		if err := k.CheckInit(name); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile reads and validates the configuration in fname.
func ReadFile(fname string) (*Config, error) {
	c := Default()
	if err := gcfg.ReadFileInto(c, fname); err != nil {
		return nil, err
	}
	if err := c.CheckInit(); err != nil {
		return nil, err
	}
	return c, nil
}

// ReadString reads and validates the configuration held in text.
func ReadString(text string) (*Config, error) {
	c := Default()
	if err := gcfg.ReadStringInto(c, text); err != nil {
		return nil, err
	}
	if err := c.CheckInit(); err != nil {
		return nil, err
	}
	return c, nil
}

// Simplifier returns a simplifier using the configured limits.
func (c *Config) Simplifier() *simplify.Simplifier {
	return simplify.New(c.Simplify.MaxPasses)
}

// Constants returns the default constants overlaid with the
// configured ones.
func (c *Config) Constants() constants.Table {
	t := constants.Default()
	for name, k := range c.Constant {
		t = t.With(token.Intern(name), k.parsed)
	}
	return t
}
