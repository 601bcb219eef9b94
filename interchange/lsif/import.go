package lsif

import (
	"strings"
	"unicode/utf8"

	"github.com/aabizri/lsys"
	"github.com/aabizri/lsys/interchange"
	"github.com/aabizri/lsys/interchange/rules"
	"github.com/aabizri/lsys/turtle"
	"github.com/pkg/errors"
)

// Defaults for fields left empty.
const (
	DefaultAngle    = 90
	DefaultDistance = 1
	DefaultHeading  = 90
)

var ensureInterfaceCompliance interchange.Format = &Format{}

func (format *Format) Import() (*interchange.Program, error) {
	if format.Axiom == "" {
		return nil, errors.New("missing axiom")
	}

	table, err := rules.ParseAll(format.Rules)
	if err != nil {
		return nil, errors.Wrap(err, "error while parsing rules")
	}

	env := format.Constants
	angle, err := format.Angle.Evaluate(env, DefaultAngle)
	if err != nil {
		return nil, errors.Wrap(err, "angle")
	}
	left, err := format.Left.Evaluate(env, angle)
	if err != nil {
		return nil, errors.Wrap(err, "left")
	}
	right, err := format.Right.Evaluate(env, angle)
	if err != nil {
		return nil, errors.Wrap(err, "right")
	}
	distance, err := format.Distance.Evaluate(env, DefaultDistance)
	if err != nil {
		return nil, errors.Wrap(err, "distance")
	}

	var start turtle.State
	if start.Position.X, err = format.Start.X.Evaluate(env, 0); err != nil {
		return nil, errors.Wrap(err, "start x")
	}
	if start.Position.Y, err = format.Start.Y.Evaluate(env, 0); err != nil {
		return nil, errors.Wrap(err, "start y")
	}
	if start.Heading, err = format.Start.Heading.Evaluate(env, DefaultHeading); err != nil {
		return nil, errors.Wrap(err, "start heading")
	}

	registry := turtle.DefaultRegistry(left, right, distance)
	for letter, definition := range format.Actions {
		if utf8.RuneCountInString(letter) != 1 {
			return nil, errors.Errorf("action letter %q is not a single symbol", letter)
		}
		l, _ := utf8.DecodeRuneInString(letter)
		action, err := parseAction(definition, env)
		if err != nil {
			return nil, errors.Wrapf(err, "action for %q", letter)
		}
		registry.Set(lsys.Letter(l), action)
	}

	return &interchange.Program{
		Name:       format.Name,
		Axiom:      lsys.ParseWord(format.Axiom),
		Table:      table,
		Iterations: format.Iterations,
		Registry:   registry,
		Start:      start,
	}, nil
}

// parseAction parses "<verb> [argument]".
func parseAction(definition string, env Environment) (turtle.Action, error) {
	verb, arg, _ := strings.Cut(strings.TrimSpace(definition), " ")
	arg = strings.TrimSpace(arg)

	var build func(float64) turtle.Action
	switch strings.ToLower(verb) {
	case "forward":
		build = turtle.Forward
	case "jump":
		build = turtle.Jump
	case "left":
		build = turtle.Left
	case "right":
		build = turtle.Right
	case "push", "pop", "noop":
		if arg != "" {
			return nil, errors.Errorf("%s takes no argument", verb)
		}
		switch strings.ToLower(verb) {
		case "push":
			return turtle.PushState, nil
		case "pop":
			return turtle.PopState, nil
		}
		return turtle.Noop, nil
	default:
		return nil, errors.Errorf("unknown action %q", verb)
	}

	if arg == "" {
		return nil, errors.Errorf("%s needs an argument", verb)
	}
	v, err := Expr(arg).Evaluate(env, 0)
	if err != nil {
		return nil, err
	}
	return build(v), nil
}
