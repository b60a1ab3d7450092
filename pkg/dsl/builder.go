package dsl

import (
	"fmt"

	"github.com/aretw0/behave/pkg/domain"
)

// Builder manages the behaviour construction.
type Builder struct {
	name      string
	variables []domain.NWVariable
	verbs     []*VerbBuilder
	index     map[string]*VerbBuilder
}

// New creates a new behaviour builder.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		index: make(map[string]*VerbBuilder),
	}
}

// Actor declares an object variable flagged as a playable actor.
func (b *Builder) Actor(name, description string) *Builder {
	b.variables = append(b.variables, domain.NewActor(name, description))
	return b
}

// Variable declares a plain variable.
func (b *Builder) Variable(t domain.VarType, name, description string) *Builder {
	b.variables = append(b.variables, domain.NewVariable(t, name, description))
	return b
}

// Verb adds a verb in declaration order.
// If the verb already exists, it returns the existing builder.
func (b *Builder) Verb(contextName string) *VerbBuilder {
	if vb, ok := b.index[contextName]; ok {
		return vb
	}
	vb := &VerbBuilder{
		verb:    &domain.Verb{ContextName: contextName},
		builder: b,
	}
	b.verbs = append(b.verbs, vb)
	b.index[contextName] = vb
	return vb
}

// Build links followers by name and validates the result.
// Every call returns a fresh Behaviour.
func (b *Builder) Build() (*domain.Behaviour, error) {
	out := &domain.Behaviour{
		Name:      b.name,
		Variables: append([]domain.NWVariable(nil), b.variables...),
	}
	copies := make(map[*VerbBuilder]*domain.Verb, len(b.verbs))
	for _, vb := range b.verbs {
		v := *vb.verb
		v.Preconditions = append([]string(nil), vb.verb.Preconditions...)
		v.VerbData = append([]string(nil), vb.verb.VerbData...)
		v.Arguments = append([]string(nil), vb.verb.Arguments...)
		v.Followers = nil
		copies[vb] = &v
		out.Verbs = append(out.Verbs, &v)
	}

	for _, vb := range b.verbs {
		source := copies[vb]
		if source.Terminal && len(vb.then) > 0 {
			return nil, fmt.Errorf("verb %q: terminal verbs cannot have followers", source.ContextName)
		}
		for _, name := range vb.then {
			target, ok := b.index[name]
			if !ok {
				return nil, fmt.Errorf("verb %q: follower %q is not declared", source.ContextName, name)
			}
			source.AddFollower(copies[target])
		}
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build behaviour %q: %w", b.name, err)
	}
	return out, nil
}

// MustBuild is like Build but panics on error. Intended for tests and examples.
func (b *Builder) MustBuild() *domain.Behaviour {
	out, err := b.Build()
	if err != nil {
		panic(err)
	}
	return out
}
