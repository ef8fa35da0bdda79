package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// schemaSource constrains every configuration value. Field names follow the
// json tags of Config.
const schemaSource = `
entry: {
	class:  =~"^[A-Z][A-Za-z0-9]*$"
	method: =~"^[a-z_][A-Za-z0-9_]*$"
}
output: {
	language: string & !=""
	indent:   int & >=0 & <=8
}
log: {
	verbosity: int & >=-4 & <=5
	file:      string
}
`

// Validate checks c against the configuration schema.
func (c *Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("sol25-config.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}

	value := ctx.Encode(c)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
