package domain

// VerbArgument describes one positional argument of a catalog action.
type VerbArgument struct {
	Mandatory   bool   `json:"mandatory" yaml:"mandatory"`
	Type        string `json:"type" yaml:"type"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ActualVerb is an action available to behaviours, as listed in util_verbs.nss.
type ActualVerb struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	VerbData    []string       `json:"verb_data" yaml:"verb_data"`
	Arguments   []VerbArgument `json:"arguments" yaml:"arguments"`
}

// MandatoryCount returns how many arguments are flagged [Mandatory].
func (a ActualVerb) MandatoryCount() int {
	n := 0
	for _, arg := range a.Arguments {
		if arg.Mandatory {
			n++
		}
	}
	return n
}

// Catalog is the ordered list of actions, in file order. Names may repeat.
type Catalog []ActualVerb

// Lookup returns the last entry named name.
func (c Catalog) Lookup(name string) (ActualVerb, bool) {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].Name == name {
			return c[i], true
		}
	}
	return ActualVerb{}, false
}

// Names returns the action names in file order, duplicates included.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for _, a := range c {
		names = append(names, a.Name)
	}
	return names
}

// Duplicates returns the names declared more than once, in order of first appearance.
func (c Catalog) Duplicates() []string {
	seen := make(map[string]int, len(c))
	var dups []string
	for _, a := range c {
		seen[a.Name]++
		if seen[a.Name] == 2 {
			dups = append(dups, a.Name)
		}
	}
	return dups
}
