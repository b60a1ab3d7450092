package dsl

import "github.com/aretw0/behave/pkg/domain"

// VerbBuilder provides a fluent API for configuring a verb.
type VerbBuilder struct {
	verb    *domain.Verb
	then    []string
	builder *Builder
}

// Does sets the catalog action performed by the verb.
func (v *VerbBuilder) Does(actualName string) *VerbBuilder {
	v.verb.ActualName = actualName
	return v
}

// Follower gives the verb the Follower role.
func (v *VerbBuilder) Follower() *VerbBuilder {
	v.verb.Follower = true
	return v
}

// Supporter gives the verb the Supporter role (the default).
func (v *VerbBuilder) Supporter() *VerbBuilder {
	v.verb.Follower = false
	return v
}

// Terminal marks the verb as ending the chain. Build fails if it also has followers.
func (v *VerbBuilder) Terminal() *VerbBuilder {
	v.verb.Terminal = true
	return v
}

// When appends precondition expressions.
func (v *VerbBuilder) When(expressions ...string) *VerbBuilder {
	v.verb.Preconditions = append(v.verb.Preconditions, expressions...)
	return v
}

// Bind appends VerbData bindings.
func (v *VerbBuilder) Bind(variables ...string) *VerbBuilder {
	v.verb.VerbData = append(v.verb.VerbData, variables...)
	return v
}

// Args appends positional verb arguments. Use "" to leave a slot unset.
func (v *VerbBuilder) Args(values ...string) *VerbBuilder {
	v.verb.Arguments = append(v.verb.Arguments, values...)
	return v
}

// Then adds followers by context name. Names may refer to verbs declared later.
func (v *VerbBuilder) Then(contextNames ...string) *VerbBuilder {
	v.then = append(v.then, contextNames...)
	return v
}

// Verb continues with another verb of the same behaviour.
func (v *VerbBuilder) Verb(contextName string) *VerbBuilder {
	return v.builder.Verb(contextName)
}

// Done returns to the behaviour builder.
func (v *VerbBuilder) Done() *Builder {
	return v.builder
}
