// Package storage converts gate libraries to and from a structural form that
// serializes to JSON or YAML.
//
// In the structural form, chips refer to their gate by key. Loading is done
// in two passes: every gate is validated first, then gates are added to a
// new library in dependency order so that chip references resolve.
//
package storage

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Chip is the stored form of a chip.
//
type Chip struct {
	Key  string  `json:"key" yaml:"key"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Gate string  `json:"gate" yaml:"gate"` // gate key
}

// Pin is the stored form of a pin. Type is one of "global-input",
// "global-output", "input" or "output". Chip must be set for the last two.
//
type Pin struct {
	Type  string `json:"type" yaml:"type"`
	Index int    `json:"index" yaml:"index"`
	Chip  *Chip  `json:"chip,omitempty" yaml:"chip,omitempty"`
}

// Connection is the stored form of a connection. A new key is assigned on
// load if Key is empty.
//
type Connection struct {
	Key  string `json:"key,omitempty" yaml:"key,omitempty"`
	From Pin    `json:"from" yaml:"from"`
	To   Pin    `json:"to" yaml:"to"`
}

// Composite is the stored wiring of a composite gate.
//
type Composite struct {
	Connections []Connection `json:"connections" yaml:"connections"`
}

// Operator is the stored operator of a gate: either the name of a primitive
// or the wiring of a composite gate. It serializes as a string or as an
// object.
//
type Operator struct {
	Primitive string
	Composite *Composite
}

// MarshalJSON implements json.Marshaler.
//
func (o Operator) MarshalJSON() ([]byte, error) {
	if o.Composite != nil {
		return json.Marshal(o.Composite)
	}
	return json.Marshal(o.Primitive)
}

// UnmarshalJSON implements json.Unmarshaler.
//
func (o *Operator) UnmarshalJSON(data []byte) error {
	*o = Operator{}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &o.Primitive)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return errors.Errorf("unknown operator structure %s", data)
	}
	if _, ok := fields["connections"]; !ok {
		return errors.Errorf("unknown operator structure %s", data)
	}
	o.Composite = new(Composite)
	return json.Unmarshal(data, o.Composite)
}

// MarshalYAML implements yaml.Marshaler.
//
func (o Operator) MarshalYAML() (interface{}, error) {
	if o.Composite != nil {
		return o.Composite, nil
	}
	return o.Primitive, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
//
func (o *Operator) UnmarshalYAML(n *yaml.Node) error {
	*o = Operator{}
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Decode(&o.Primitive)
	case yaml.MappingNode:
		if !hasKey(n, "connections") {
			break
		}
		o.Composite = new(Composite)
		return n.Decode(o.Composite)
	}
	return errors.Errorf("line %d: unknown operator structure", n.Line)
}

func hasKey(n *yaml.Node, key string) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Gate is the stored form of a gate. Operator is nil for deleted gates.
//
type Gate struct {
	Key          string            `json:"key" yaml:"key"`
	Name         string            `json:"name" yaml:"name"`
	Color        string            `json:"color" yaml:"color"`
	Inputs       int               `json:"inputs" yaml:"inputs"`
	Outputs      int               `json:"outputs" yaml:"outputs"`
	CanBeDeleted bool              `json:"canBeDeleted" yaml:"canBeDeleted"`
	Deleted      bool              `json:"deleted" yaml:"deleted"`
	TruthTable   map[string][]bool `json:"truthTable,omitempty" yaml:"truthTable,omitempty"`
	Operator     *Operator         `json:"operator" yaml:"operator"`
	InputNames   []string          `json:"inputNames,omitempty" yaml:"inputNames,omitempty"`
	OutputNames  []string          `json:"outputNames,omitempty" yaml:"outputNames,omitempty"`

	// fields present in the decoded document, nil if not decoded
	fields map[string]bool
}

type plainGate Gate

// UnmarshalJSON implements json.Unmarshaler.
//
func (g *Gate) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return errors.Wrap(err, "invalid data structure for gate")
	}
	if fields == nil {
		return errors.New("undefined gate")
	}
	if err := json.Unmarshal(data, (*plainGate)(g)); err != nil {
		return err
	}
	g.fields = make(map[string]bool, len(fields))
	for k := range fields {
		g.fields[k] = true
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
//
func (g *Gate) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: invalid data structure for gate", n.Line)
	}
	if err := n.Decode((*plainGate)(g)); err != nil {
		return err
	}
	g.fields = make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		g.fields[n.Content[i].Value] = true
	}
	return nil
}

func (g *Gate) has(field string) bool {
	return g.fields == nil || g.fields[field]
}
