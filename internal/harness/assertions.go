package harness

import (
	"fmt"

	"github.com/roach88/datetimeng/internal/chrono"
)

// EvaluateAssertions checks each assertion against the bound values and
// returns one message per failure.
func EvaluateAssertions(assertions []Assertion, bindings map[string]chrono.DateTime) []string {
	var errs []string
	for i, a := range assertions {
		if msg := evaluateAssertion(a, bindings); msg != "" {
			errs = append(errs, fmt.Sprintf("assertions[%d] (%s): %s", i, a.Type, msg))
		}
	}
	return errs
}

func evaluateAssertion(a Assertion, bindings map[string]chrono.DateTime) string {
	values := make([]chrono.DateTime, len(a.Values))
	for i, name := range a.Values {
		v, ok := bindings[name]
		if !ok {
			// The binding step failed; its error is already recorded.
			return fmt.Sprintf("%q has no value", name)
		}
		values[i] = v
	}

	switch a.Type {
	case AssertEqual:
		for i := 1; i < len(values); i++ {
			if !values[0].Equal(values[i]) {
				return fmt.Sprintf("%s (%s) != %s (%s)", a.Values[0], values[0], a.Values[i], values[i])
			}
		}
	case AssertNotEqual:
		if values[0].Equal(values[1]) {
			return fmt.Sprintf("%s and %s are equal", a.Values[0], a.Values[1])
		}
	case AssertOrder:
		for i := 1; i < len(values); i++ {
			c, err := values[i-1].Compare(values[i])
			if err != nil {
				return err.Error()
			}
			if c >= 0 {
				return fmt.Sprintf("%s (%s) is not before %s (%s)",
					a.Values[i-1], values[i-1], a.Values[i], values[i])
			}
		}
	case AssertSameWall:
		for i := 1; i < len(values); i++ {
			if !values[0].Naive().Equal(values[i].Naive()) {
				return fmt.Sprintf("%s and %s show different wall times", a.Values[0], a.Values[i])
			}
		}
	default:
		return fmt.Sprintf("unknown assertion type %q", a.Type)
	}
	return ""
}
