package zone

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/datetimeng/internal/chrono"
)

// Definition declares one zone in a YAML or CUE file.
type Definition struct {
	// Name is the registry name, e.g. "Eastern".
	Name string `yaml:"name" json:"name"`

	// StdOffset is the standard offset as "+HH:MM" or "-HH:MM".
	StdOffset string `yaml:"std_offset" json:"std_offset"`

	// StdName is the abbreviation in standard time, e.g. "EST".
	StdName string `yaml:"std_name" json:"std_name"`

	// DSTName is the abbreviation in daylight time. Required with rules.
	DSTName string `yaml:"dst_name,omitempty" json:"dst_name,omitempty"`

	// Rules selects the DST rule set: "us", "eu" or "none".
	Rules string `yaml:"rules,omitempty" json:"rules,omitempty"`

	// Aliases are extra registry names for the same zone.
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// file is the top-level shape of a definitions file.
type file struct {
	Zones []Definition `yaml:"zones"`
}

// DefinitionError reports an invalid zone definition. Pos is set for CUE input.
type DefinitionError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *DefinitionError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Build turns the definition into a provider: a Fixed zone without rules,
// a Seasonal zone with them.
func (d Definition) Build() (chrono.Zone, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, &DefinitionError{Field: "name", Message: "name is required"}
	}
	off, err := ParseOffset(d.StdOffset)
	if err != nil {
		return nil, &DefinitionError{Field: d.Name + ".std_offset", Message: err.Error()}
	}
	rules, ok := RulesByName(d.Rules)
	if !ok {
		return nil, &DefinitionError{
			Field:   d.Name + ".rules",
			Message: fmt.Sprintf("unknown rules %q (want us, eu or none)", d.Rules),
		}
	}
	stdName := d.StdName
	if stdName == "" {
		stdName = d.Name
	}

	if rules == nil {
		z, err := NewFixed(off, stdName)
		if err != nil {
			return nil, &DefinitionError{Field: d.Name + ".std_offset", Message: err.Error()}
		}
		return z, nil
	}
	if d.DSTName == "" {
		return nil, &DefinitionError{Field: d.Name + ".dst_name", Message: "dst_name is required when rules are set"}
	}
	z, err := NewSeasonal(off, stdName, d.DSTName, rules)
	if err != nil {
		return nil, &DefinitionError{Field: d.Name + ".std_offset", Message: err.Error()}
	}
	return z, nil
}

// ParseYAML decodes definitions, rejecting unknown fields.
func ParseYAML(data []byte) ([]Definition, error) {
	var f file
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	for i, def := range f.Zones {
		if def.Name == "" {
			return nil, &DefinitionError{Field: fmt.Sprintf("zones[%d].name", i), Message: "name is required"}
		}
	}
	return f.Zones, nil
}

// schemaCUE constrains CUE definition files. #Zone is closed, so unknown
// fields are errors, as with YAML.
const schemaCUE = `
#Zone: {
	name:       string & !=""
	std_offset: string & =~"^([+-][0-9]{2}:?[0-9]{2}|Z)$"
	std_name?:  string
	dst_name?:  string
	rules:      *"none" | "us" | "eu"
	aliases?: [...string]
}
zones: [...#Zone]
`

// ParseCUE compiles a single CUE source and decodes its zones.
// filename is used in error positions.
func ParseCUE(src []byte, filename string) ([]Definition, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return decodeCUE(ctx, v)
}

// LoadCUEDir loads the CUE package in dir and decodes its zones.
func LoadCUEDir(dir string) ([]Definition, error) {
	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances in %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading CUE files: %w", inst.Err)
	}
	v := ctx.BuildInstance(inst)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return decodeCUE(ctx, v)
}

func decodeCUE(ctx *cue.Context, v cue.Value) ([]Definition, error) {
	schema := ctx.CompileString(schemaCUE, cue.Filename("zone-schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("zone schema: %w", err)
	}
	unified := schema.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var defs []Definition
	if err := unified.LookupPath(cue.ParsePath("zones")).Decode(&defs); err != nil {
		return nil, formatCUEError(err)
	}
	return defs, nil
}

// formatCUEError keeps the first CUE error with its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &DefinitionError{Field: "cue", Message: first.Error(), Pos: positions[0]}
	}
	return err
}

// LoadFile reads definitions from a .yaml, .yml or .cue file, or from a
// directory holding a CUE package.
func LoadFile(path string) ([]Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zone file: %w", err)
	}
	if info.IsDir() {
		return LoadCUEDir(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zone file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".cue":
		return ParseCUE(data, path)
	}
	return nil, fmt.Errorf("zone file %s: unsupported extension (want .yaml, .yml or .cue)", path)
}
