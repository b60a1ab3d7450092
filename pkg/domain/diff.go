package domain

import (
	"slices"
)

// BehaviourDiff represents the structural changes between two behaviours.
// Verbs are matched by context name and variables by name; follower edges are
// compared by target name.
type BehaviourDiff struct {
	// Name is set when the behaviour was renamed.
	Name *string `json:"name,omitempty"`

	VerbsAdded   []string `json:"verbs_added,omitempty"`
	VerbsRemoved []string `json:"verbs_removed,omitempty"`
	VerbsChanged []string `json:"verbs_changed,omitempty"`
	// VerbsReordered is set when the surviving verbs changed relative order.
	VerbsReordered bool `json:"verbs_reordered,omitempty"`

	VariablesAdded     []string `json:"variables_added,omitempty"`
	VariablesRemoved   []string `json:"variables_removed,omitempty"`
	VariablesChanged   []string `json:"variables_changed,omitempty"`
	VariablesReordered bool     `json:"variables_reordered,omitempty"`
}

// Diff calculates the difference between oldB and newB.
// If oldB is nil, every verb and variable of newB is reported as added.
// Returns nil when nothing changed.
func Diff(oldB, newB *Behaviour) *BehaviourDiff {
	if newB == nil {
		return nil
	}
	if oldB == nil {
		oldB = &Behaviour{Name: newB.Name}
	}

	d := &BehaviourDiff{}
	if oldB.Name != newB.Name {
		name := newB.Name
		d.Name = &name
	}

	d.VerbsAdded, d.VerbsRemoved, d.VerbsChanged, d.VerbsReordered = diffVerbs(oldB, newB)
	d.VariablesAdded, d.VariablesRemoved, d.VariablesChanged, d.VariablesReordered = diffVariables(oldB, newB)

	if d.IsEmpty() {
		return nil
	}
	return d
}

func diffVerbs(oldB, newB *Behaviour) (added, removed, changed []string, reordered bool) {
	var keptOld, keptNew []string
	for _, v := range newB.Verbs {
		prev := oldB.Verb(v.ContextName)
		if prev == nil {
			added = append(added, v.ContextName)
			continue
		}
		keptNew = append(keptNew, v.ContextName)
		if !sameVerb(prev, v) {
			changed = append(changed, v.ContextName)
		}
	}
	for _, v := range oldB.Verbs {
		if newB.Verb(v.ContextName) == nil {
			removed = append(removed, v.ContextName)
			continue
		}
		keptOld = append(keptOld, v.ContextName)
	}
	return added, removed, changed, !slices.Equal(keptOld, keptNew)
}

func sameVerb(a, b *Verb) bool {
	return a.ActualName == b.ActualName &&
		a.Follower == b.Follower &&
		a.Terminal == b.Terminal &&
		slices.Equal(a.Preconditions, b.Preconditions) &&
		slices.Equal(a.FollowerNames(), b.FollowerNames()) &&
		slices.Equal(a.VerbData, b.VerbData) &&
		slices.Equal(a.Arguments, b.Arguments)
}

func diffVariables(oldB, newB *Behaviour) (added, removed, changed []string, reordered bool) {
	var keptOld, keptNew []string
	for _, v := range newB.Variables {
		prev, ok := oldB.Variable(v.Name)
		if !ok {
			added = append(added, v.Name)
			continue
		}
		keptNew = append(keptNew, v.Name)
		if prev != v {
			changed = append(changed, v.Name)
		}
	}
	for _, v := range oldB.Variables {
		if _, ok := newB.Variable(v.Name); !ok {
			removed = append(removed, v.Name)
			continue
		}
		keptOld = append(keptOld, v.Name)
	}
	return added, removed, changed, !slices.Equal(keptOld, keptNew)
}

// Equal reports whether two behaviours are structurally identical.
func Equal(a, b *Behaviour) bool {
	if a == nil || b == nil {
		return a == b
	}
	return Diff(a, b) == nil
}

// IsEmpty checks if the diff contains any changes.
func (d *BehaviourDiff) IsEmpty() bool {
	return d.Name == nil &&
		len(d.VerbsAdded) == 0 &&
		len(d.VerbsRemoved) == 0 &&
		len(d.VerbsChanged) == 0 &&
		!d.VerbsReordered &&
		len(d.VariablesAdded) == 0 &&
		len(d.VariablesRemoved) == 0 &&
		len(d.VariablesChanged) == 0 &&
		!d.VariablesReordered
}
