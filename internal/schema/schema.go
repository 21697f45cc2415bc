package schema

import "regexp"

// Type names a JSON runtime kind a schema node may require.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeNull    Type = "null"
)

// Node describes one valid shape of a value. A node carries exactly one
// primary discriminator: either Type or OneOf, never both.
type Node struct {
	Type  Type    `json:"type,omitempty"`
	OneOf []*Node `json:"oneOf,omitempty"`

	// Object constraints.
	Required             []string         `json:"required,omitempty"`
	Properties           map[string]*Node `json:"properties,omitempty"`
	AdditionalProperties *bool            `json:"additionalProperties,omitempty"`

	// Array constraints.
	Items *Node `json:"items,omitempty"`

	// String constraints.
	Enum      []string       `json:"enum,omitempty"`
	MinLength *int           `json:"minLength,omitempty"`
	MaxLength *int           `json:"maxLength,omitempty"`
	Pattern   *regexp.Regexp `json:"-"`

	// Number constraints.
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`
}

// RequiredSet returns the required property names as a set for membership checks.
func (n *Node) RequiredSet() map[string]struct{} {
	set := make(map[string]struct{}, len(n.Required))
	for _, name := range n.Required {
		set[name] = struct{}{}
	}
	return set
}

// Requires reports whether the node lists name as a required property.
func (n *Node) Requires(name string) bool {
	for _, r := range n.Required {
		if r == name {
			return true
		}
	}
	return false
}

// AllowsAdditional reports whether undeclared properties are tolerated by the
// node itself. The validator may still downgrade or escalate based on options.
func (n *Node) AllowsAdditional() bool {
	if n.AdditionalProperties == nil {
		return true
	}
	return *n.AdditionalProperties
}

// IsValidSchema is a structural sniff test: true iff candidate is an object
// carrying a "type" string or one of the combinator keywords.
func IsValidSchema(candidate interface{}) bool {
	obj, ok := candidate.(map[string]interface{})
	if !ok {
		return false
	}
	if t, ok := obj["type"].(string); ok && t != "" {
		return true
	}
	for _, keyword := range []string{"oneOf", "anyOf", "allOf"} {
		if _, ok := obj[keyword]; ok {
			return true
		}
	}
	return false
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
