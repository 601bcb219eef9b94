package lsif

import (
	"math"

	"github.com/pkg/errors"
)

// Environment resolves the variables of an expression.
type Environment interface {
	Get(v string) (float64, error)
}

// Constants is an Environment backed by a map. pi is always defined.
type Constants map[string]float64

func (c Constants) Get(v string) (float64, error) {
	if val, ok := c[v]; ok {
		return val, nil
	}
	if v == "pi" {
		return math.Pi, nil
	}
	return 0, errors.Errorf("undefined constant %q", v)
}

// wrappedEnvironment adapts an Environment to govaluate.Parameters.
type wrappedEnvironment struct {
	Inner Environment
}

func (wenv wrappedEnvironment) Get(name string) (interface{}, error) {
	if wenv.Inner == nil {
		return nil, errors.Errorf("call to undefined variable %q as there is no environment defined", name)
	}
	val, err := wenv.Inner.Get(name)
	if err != nil {
		return nil, err
	}
	return val, nil
}
