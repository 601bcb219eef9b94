package lsif

import (
	"math"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Expr is a numeric expression, such as "360 / n", evaluated against the
// constants of its document. Plain YAML numbers are valid expressions.
type Expr string

func (e *Expr) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: expected a number or an expression", node.Line)
	}
	*e = Expr(node.Value)
	return nil
}

var functions = map[string]govaluate.ExpressionFunction{
	"sqrt": unary(math.Sqrt),
	"sin":  unary(func(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }),
	"cos":  unary(func(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, errors.Errorf("pow takes 2 arguments, got %d", len(args))
		}
		x, okx := args[0].(float64)
		y, oky := args[1].(float64)
		if !okx || !oky {
			return nil, errors.New("pow takes numbers")
		}
		return math.Pow(x, y), nil
	},
}

func unary(f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, errors.Errorf("expected 1 argument, got %d", len(args))
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, errors.Errorf("expected a number, got %T", args[0])
		}
		return f(x), nil
	}
}

// Evaluate returns the value of e, or def when e is empty.
func (e Expr) Evaluate(env Environment, def float64) (float64, error) {
	asString := strings.TrimSpace(string(e))
	if asString == "" {
		return def, nil
	}

	// Check if possible to simplify if it is just a scalar
	if scalar, err := strconv.ParseFloat(asString, 64); err == nil {
		return scalar, nil
	}

	evaluable, err := govaluate.NewEvaluableExpressionWithFunctions(asString, functions)
	if err != nil {
		return 0, errors.Wrapf(err, "error while parsing expression %q", asString)
	}

	resAsInterface, err := evaluable.Eval(wrappedEnvironment{env})
	if err != nil {
		return 0, errors.Wrapf(err, "error while evaluating %q", asString)
	}

	resAsFloat, ok := resAsInterface.(float64)
	if !ok {
		return 0, errors.Errorf("expression %q is not numeric (got %T)", asString, resAsInterface)
	}
	return resAsFloat, nil
}
