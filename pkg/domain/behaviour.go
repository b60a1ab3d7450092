package domain

// Behaviour is the root aggregate: a named action graph with its variables.
//
// Variables and Verbs keep declaration order; the control script is written and
// re-read positionally. Verbs is also the arena that follower edges point into.
type Behaviour struct {
	Name      string
	Variables []NWVariable
	Verbs     []*Verb
}

// NewBehaviour returns an empty behaviour.
func NewBehaviour(name string) *Behaviour {
	return &Behaviour{Name: name}
}

// AddVariable appends a variable in declaration order.
func (b *Behaviour) AddVariable(v NWVariable) {
	b.Variables = append(b.Variables, v)
}

// Variable returns the variable declared with name.
func (b *Behaviour) Variable(name string) (NWVariable, bool) {
	for _, v := range b.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return NWVariable{}, false
}

// RemoveVariable drops the named variable and reports whether it existed.
func (b *Behaviour) RemoveVariable(name string) bool {
	for i, v := range b.Variables {
		if v.Name == name {
			b.Variables = append(b.Variables[:i], b.Variables[i+1:]...)
			return true
		}
	}
	return false
}

// AddVerb appends a new verb to the arena and returns it.
func (b *Behaviour) AddVerb(contextName string) *Verb {
	v := &Verb{ContextName: contextName}
	b.Verbs = append(b.Verbs, v)
	return v
}

// Verb returns the first verb with the given context name, or nil.
func (b *Behaviour) Verb(contextName string) *Verb {
	for _, v := range b.Verbs {
		if v.ContextName == contextName {
			return v
		}
	}
	return nil
}

// Index returns the arena index of v, or -1 when v is not owned by b.
func (b *Behaviour) Index(v *Verb) int {
	for i, candidate := range b.Verbs {
		if candidate == v {
			return i
		}
	}
	return -1
}

// RemoveVerb drops v from the arena and prunes every follower edge pointing at it.
func (b *Behaviour) RemoveVerb(v *Verb) bool {
	i := b.Index(v)
	if i < 0 {
		return false
	}
	b.Verbs = append(b.Verbs[:i], b.Verbs[i+1:]...)
	for _, other := range b.Verbs {
		other.RemoveFollower(v)
	}
	return true
}

// Predecessors returns the verbs that list v as a follower, in arena order.
func (b *Behaviour) Predecessors(v *Verb) []*Verb {
	var out []*Verb
	for _, candidate := range b.Verbs {
		if candidate.HasFollower(v) {
			out = append(out, candidate)
		}
	}
	return out
}

// Actors returns the actor variables in declaration order.
func (b *Behaviour) Actors() []NWVariable {
	var out []NWVariable
	for _, v := range b.Variables {
		if v.IsActor {
			out = append(out, v)
		}
	}
	return out
}

// VariablesOfType returns the variables of type t in declaration order.
// Actors are object variables and are included in the object group.
func (b *Behaviour) VariablesOfType(t VarType) []NWVariable {
	var out []NWVariable
	for _, v := range b.Variables {
		if v.Type == t {
			out = append(out, v)
		}
	}
	return out
}

// VariableNames groups variable names by type, for argument pickers.
func (b *Behaviour) VariableNames() map[VarType][]string {
	out := make(map[VarType][]string, len(ValidVarTypes))
	for _, t := range ValidVarTypes {
		out[t] = []string{}
	}
	for _, v := range b.Variables {
		out[v.Type] = append(out[v.Type], v.Name)
	}
	return out
}

// VerbNames returns the context names in arena order.
func (b *Behaviour) VerbNames() []string {
	names := make([]string, 0, len(b.Verbs))
	for _, v := range b.Verbs {
		names = append(names, v.ContextName)
	}
	return names
}
