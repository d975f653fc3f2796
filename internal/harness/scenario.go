package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario is a replayable sequence of timestamp operations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// ZoneFiles lists zone definition files (YAML or CUE) registered before
	// the steps run. Relative paths resolve against the scenario file.
	ZoneFiles []string `yaml:"zone_files,omitempty"`

	// Clock is the aware ISO instant the "now" operation reads.
	Clock string `yaml:"clock,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`

	// Assertions relate values bound by the steps.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is a single operation.
type Step struct {
	Op string `yaml:"op"`

	// Value is an ISO literal or a $name reference.
	Value string `yaml:"value,omitempty"`

	// Other is the second operand of sub and compare.
	Other string `yaml:"other,omitempty"`

	Zone   string         `yaml:"zone,omitempty"`
	Fold   int            `yaml:"fold,omitempty"`
	Delta  *Delta         `yaml:"delta,omitempty"`
	Fields map[string]int `yaml:"fields,omitempty"`
	Layout string         `yaml:"layout,omitempty"`

	// As binds a value-producing step's result to a name.
	As string `yaml:"as,omitempty"`

	// Expect is the expected rendering of the result.
	Expect string `yaml:"expect,omitempty"`

	// Error is the expected error kind: value, range or type.
	Error string `yaml:"error,omitempty"`
}

// Delta is a signed duration given by parts.
type Delta struct {
	Weeks        int64 `yaml:"weeks,omitempty"`
	Days         int64 `yaml:"days,omitempty"`
	Hours        int64 `yaml:"hours,omitempty"`
	Minutes      int64 `yaml:"minutes,omitempty"`
	Seconds      int64 `yaml:"seconds,omitempty"`
	Microseconds int64 `yaml:"microseconds,omitempty"`
	Nanoseconds  int64 `yaml:"nanoseconds,omitempty"`
}

// Assertion relates bound values.
type Assertion struct {
	Type   string   `yaml:"type"`
	Values []string `yaml:"values"`
}

// Operation names.
const (
	OpLocalize = "localize"
	OpFromUTC  = "from_utc"
	OpConvert  = "convert"
	OpUTC      = "utc"
	OpAdd      = "add"
	OpReplace  = "replace"
	OpNow      = "now"
	OpPersist  = "persist"
	OpSub      = "sub"
	OpCompare  = "compare"
	OpOffset   = "offset"
	OpDST      = "dst"
	OpTZName   = "tzname"
	OpCtime    = "ctime"
	OpStrftime = "strftime"
	OpTuple    = "tuple"
)

// Assertion type constants.
const (
	AssertEqual    = "equal"
	AssertNotEqual = "not_equal"
	AssertOrder    = "order"
	AssertSameWall = "same_wall"
)

// LoadScenario reads and parses a scenario YAML file. Zone file paths are
// resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving zone file paths relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	for i, zf := range scenario.ZoneFiles {
		if !filepath.IsAbs(zf) && basePath != "" {
			scenario.ZoneFiles[i] = filepath.Join(basePath, zf)
		}
	}
	for _, zf := range scenario.ZoneFiles {
		if _, err := os.Stat(zf); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: zone file not found: %s", zf)
		}
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML. Unknown fields are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	bound := map[string]bool{}
	for i, step := range s.Steps {
		if err := validateStep(i, &step, bound, s.Clock != ""); err != nil {
			return err
		}
		if step.As != "" {
			bound[step.As] = true
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a, bound); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(i int, step *Step, bound map[string]bool, hasClock bool) error {
	needsZone := false
	needsValue := true
	producesValue := false

	switch step.Op {
	case OpLocalize, OpFromUTC, OpConvert:
		needsZone, producesValue = true, true
	case OpNow:
		needsValue, producesValue = false, true
		if !hasClock {
			return fmt.Errorf("steps[%d]: now requires a scenario clock", i)
		}
	case OpUTC, OpPersist:
		producesValue = true
	case OpAdd:
		producesValue = true
		if step.Delta == nil {
			return fmt.Errorf("steps[%d]: delta is required for add", i)
		}
	case OpReplace:
		producesValue = true
		if len(step.Fields) == 0 {
			return fmt.Errorf("steps[%d]: fields are required for replace", i)
		}
	case OpSub, OpCompare:
		if step.Other == "" {
			return fmt.Errorf("steps[%d]: other is required for %s", i, step.Op)
		}
	case OpStrftime:
		if step.Layout == "" {
			return fmt.Errorf("steps[%d]: layout is required for strftime", i)
		}
	case OpOffset, OpDST, OpTZName, OpCtime, OpTuple:
	case "":
		return fmt.Errorf("steps[%d]: op is required", i)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
	}

	if needsZone && step.Zone == "" {
		return fmt.Errorf("steps[%d]: zone is required for %s", i, step.Op)
	}
	if needsValue && step.Value == "" {
		return fmt.Errorf("steps[%d]: value is required for %s", i, step.Op)
	}
	if step.As != "" && !producesValue {
		return fmt.Errorf("steps[%d]: %s does not produce a value to bind", i, step.Op)
	}
	if step.Expect != "" && step.Error != "" {
		return fmt.Errorf("steps[%d]: expect and error are mutually exclusive", i)
	}
	switch step.Error {
	case "", "value", "range", "type":
	default:
		return fmt.Errorf("steps[%d]: unknown error kind %q", i, step.Error)
	}
	for _, ref := range []string{step.Value, step.Other} {
		if name, ok := refName(ref); ok && !bound[name] {
			return fmt.Errorf("steps[%d]: $%s is not bound by an earlier step", i, name)
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion, bound map[string]bool) error {
	switch a.Type {
	case AssertEqual, AssertOrder, AssertSameWall:
		if len(a.Values) < 2 {
			return fmt.Errorf("assertions[%d]: %s needs at least two values", index, a.Type)
		}
	case AssertNotEqual:
		if len(a.Values) != 2 {
			return fmt.Errorf("assertions[%d]: not_equal needs exactly two values", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	for _, name := range a.Values {
		if !bound[name] {
			return fmt.Errorf("assertions[%d]: %q is not bound by any step", index, name)
		}
	}
	return nil
}

// refName reports whether s is a $name reference.
func refName(s string) (string, bool) {
	if len(s) > 1 && s[0] == '$' {
		return s[1:], true
	}
	return "", false
}
