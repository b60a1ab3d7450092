package dto

import (
	"fmt"

	"github.com/aretw0/behave/pkg/domain"
)

// Behaviour is the wire shape of a domain.Behaviour.
// Followers are written by context name so the document has no cycles.
type Behaviour struct {
	Name      string              `json:"name" yaml:"name" mapstructure:"name"`
	Variables []domain.NWVariable `json:"variables" yaml:"variables" mapstructure:"variables"`
	Verbs     []Verb              `json:"verbs" yaml:"verbs" mapstructure:"verbs"`
}

// Verb is the wire shape of a domain.Verb.
type Verb struct {
	ContextName   string   `json:"context_name" yaml:"context_name" mapstructure:"context_name"`
	ActualName    string   `json:"actual_name,omitempty" yaml:"actual_name,omitempty" mapstructure:"actual_name"`
	ConstantName  string   `json:"constant_name,omitempty" yaml:"constant_name,omitempty" mapstructure:"constant_name"`
	Follower      bool     `json:"follower" yaml:"follower" mapstructure:"follower"`
	Terminal      bool     `json:"terminal" yaml:"terminal" mapstructure:"terminal"`
	Preconditions []string `json:"preconditions,omitempty" yaml:"preconditions,omitempty" mapstructure:"preconditions"`
	Followers     []string `json:"followers,omitempty" yaml:"followers,omitempty" mapstructure:"followers"`
	VerbData      []string `json:"verb_data,omitempty" yaml:"verb_data,omitempty" mapstructure:"verb_data"`
	Arguments     []string `json:"arguments,omitempty" yaml:"arguments,omitempty" mapstructure:"arguments"`
}

// FromDomain converts a behaviour to its wire shape.
// ConstantName is filled in for readers; ToDomain ignores it.
func FromDomain(b *domain.Behaviour) Behaviour {
	out := Behaviour{
		Name:      b.Name,
		Variables: append([]domain.NWVariable{}, b.Variables...),
		Verbs:     make([]Verb, 0, len(b.Verbs)),
	}
	for _, v := range b.Verbs {
		out.Verbs = append(out.Verbs, Verb{
			ContextName:   v.ContextName,
			ActualName:    v.ActualName,
			ConstantName:  v.ConstantName(),
			Follower:      v.Follower,
			Terminal:      v.Terminal,
			Preconditions: v.Preconditions,
			Followers:     v.FollowerNames(),
			VerbData:      v.VerbData,
			Arguments:     v.Arguments,
		})
	}
	return out
}

// ToDomain rebuilds the behaviour, linking followers by name after every verb
// is known, and validates it.
func (d Behaviour) ToDomain() (*domain.Behaviour, error) {
	b := &domain.Behaviour{
		Name:      d.Name,
		Variables: append([]domain.NWVariable(nil), d.Variables...),
	}
	for _, dv := range d.Verbs {
		b.Verbs = append(b.Verbs, &domain.Verb{
			ContextName:   dv.ContextName,
			ActualName:    dv.ActualName,
			Follower:      dv.Follower,
			Terminal:      dv.Terminal,
			Preconditions: append([]string(nil), dv.Preconditions...),
			VerbData:      append([]string(nil), dv.VerbData...),
			Arguments:     append([]string(nil), dv.Arguments...),
		})
	}

	var unresolved []error
	for i, dv := range d.Verbs {
		for j, name := range dv.Followers {
			target := b.Verb(name)
			if target == nil {
				unresolved = append(unresolved, &domain.ValidationError{
					Key:    fmt.Sprintf("verbs[%d].followers[%d]", i, j),
					Reason: "is not a declared verb",
					Value:  name,
				})
				continue
			}
			b.Verbs[i].AddFollower(target)
		}
	}
	if len(unresolved) > 0 {
		return nil, &domain.AggregateError{Errors: unresolved}
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
