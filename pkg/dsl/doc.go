/*
Package dsl provides a Go DSL for programmatically constructing behaviours.

It builds the same domain.Behaviour the compiler parses from a control script,
using a fluent builder instead of hand-written script text. Followers are
named and may point at verbs declared later; Build links them and validates
the result.

Example usage:

	package main

	import (
		"fmt"

		"github.com/aretw0/behave/pkg/compiler"
		"github.com/aretw0/behave/pkg/domain"
		"github.com/aretw0/behave/pkg/dsl"
	)

	func main() {
		b := dsl.New("Greeter").
			Actor("oPC", "The player being greeted").
			Variable(domain.TypeString, "sLine", "What to say")

		b.Verb("GreetPlayer").
			Does("Speak").
			When("GetIsPC(oPC)").
			Bind("oPC").
			Args("sLine").
			Then("Leave")

		b.Verb("Leave").Follower().Terminal()

		behaviour, err := b.Build()
		if err != nil {
			panic(err)
		}
		fmt.Print(compiler.GenerateControlCode(behaviour))
	}
*/
package dsl
