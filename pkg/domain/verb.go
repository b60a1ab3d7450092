package domain

// Verb roles as written in the control script.
const (
	RoleFollower  = "Follower"
	RoleSupporter = "Supporter"
	MarkTerminal  = "Terminal"
)

// Verb is one node of a behaviour's action graph.
//
// Followers are references into the owning Behaviour's Verbs slice. They are
// never owned by the verb and may form cycles.
type Verb struct {
	ContextName string
	ActualName  string
	Follower    bool
	Terminal    bool

	Preconditions []string
	Followers     []*Verb
	VerbData      []string
	Arguments     []string
}

// Role returns the textual role of the verb.
func (v *Verb) Role() string {
	if v.Follower {
		return RoleFollower
	}
	return RoleSupporter
}

// ConstantName returns the script constant identifying this verb.
func (v *Verb) ConstantName() string {
	return ConstantName(v.ContextName, v.Follower, v.Terminal)
}

// FollowerNames returns the context names of the verb's followers, in order.
func (v *Verb) FollowerNames() []string {
	names := make([]string, 0, len(v.Followers))
	for _, f := range v.Followers {
		names = append(names, f.ContextName)
	}
	return names
}

// HasFollower reports whether target is among the verb's followers.
func (v *Verb) HasFollower(target *Verb) bool {
	for _, f := range v.Followers {
		if f == target {
			return true
		}
	}
	return false
}

// AddFollower appends target to the follower list.
func (v *Verb) AddFollower(target *Verb) {
	v.Followers = append(v.Followers, target)
}

// RemoveFollower drops every reference to target and reports whether any was removed.
func (v *Verb) RemoveFollower(target *Verb) bool {
	kept := v.Followers[:0]
	removed := false
	for _, f := range v.Followers {
		if f == target {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	v.Followers = kept
	return removed
}
