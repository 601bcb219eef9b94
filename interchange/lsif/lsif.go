// Package lsif is the reference implementation for the L-System Interchange
// Format: a stream of YAML documents, each describing one drawing program.
//
//	name: plant
//	axiom: X
//	rules:
//	  - X -> F-[[X]+X]+F[+FX]-X
//	  - F -> FF
//	iterations: 5
//	angle: 360 / n
//	distance: 2
//	constants: {n: 14}
//	start: {x: 0, y: 0, heading: 90}
//	actions:
//	  A: forward 0.2
//	  "-": right 60
package lsif

import (
	"io"

	"gopkg.in/yaml.v3"
)

type Format struct {
	Name       string   `yaml:"name"`
	Axiom      string   `yaml:"axiom"`
	Rules      []string `yaml:"rules"`
	Iterations uint     `yaml:"iterations"`

	// Angle is used for both turns unless Left or Right is set
	Angle    Expr `yaml:"angle"`
	Left     Expr `yaml:"left"`
	Right    Expr `yaml:"right"`
	Distance Expr `yaml:"distance"`

	Constants Constants `yaml:"constants"`
	Start     Start     `yaml:"start"`

	// Actions binds letters to "forward <expr>", "jump <expr>",
	// "left <expr>", "right <expr>", "push", "pop" or "noop"
	Actions map[string]string `yaml:"actions"`
}

type Start struct {
	X       Expr `yaml:"x"`
	Y       Expr `yaml:"y"`
	Heading Expr `yaml:"heading"`
}

type Decoder struct {
	in          io.Reader
	yamlDecoder *yaml.Decoder
}

func NewDecoder(in io.Reader) *Decoder {
	yamlDecoder := yaml.NewDecoder(in)
	yamlDecoder.KnownFields(true)
	return &Decoder{
		in:          in,
		yamlDecoder: yamlDecoder,
	}
}

// Decode reads the next document. It returns io.EOF at the end of the stream.
func (dec *Decoder) Decode() (*Format, error) {
	format := &Format{}
	// Read until yaml multi-document delimiter and/or until EOF
	err := dec.yamlDecoder.Decode(format)
	return format, err
}
