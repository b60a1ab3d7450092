package domain

import "fmt"

// VarType is the script type of a behaviour variable.
type VarType string

const (
	TypeObject VarType = "object"
	TypeString VarType = "string"
	TypeInt    VarType = "int"
	TypeFloat  VarType = "float"
)

// ValidVarTypes lists the accepted variable types in presentation order.
var ValidVarTypes = []VarType{TypeObject, TypeString, TypeInt, TypeFloat}

// ParseVarType converts a textual type name into a VarType.
func ParseVarType(s string) (VarType, error) {
	for _, t := range ValidVarTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown variable type %q", s)
}

// NWVariable is a typed data slot declared on a behaviour.
// IsActor marks an object variable as a playable actor.
type NWVariable struct {
	Type        VarType `json:"type" yaml:"type"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	IsActor     bool    `json:"is_actor,omitempty" yaml:"is_actor,omitempty"`
}

// NewActor returns an object variable flagged as an actor.
func NewActor(name, description string) NWVariable {
	return NWVariable{Type: TypeObject, Name: name, Description: description, IsActor: true}
}

// NewVariable returns a plain (non-actor) variable.
func NewVariable(t VarType, name, description string) NWVariable {
	return NWVariable{Type: t, Name: name, Description: description}
}
