/*
Package behave loads and saves NWN behaviour scripts.

A behaviour is an AI action graph (verbs linked by follower edges, plus typed
variables) stored as a pair of NWScript files: the control script
b_<name>.nss, which is rewritten on every save, and the checkcues stub
z_b_<name>.nss, whose section bodies belong to the author and survive
regeneration.

The Workspace ties a ScriptStore (directory, memory or Redis) to the compiler
and enforces the file naming rules at the I/O boundary: the catalog must be
named util_verbs.nss, control scripts start with b_ and stubs with z_b_.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/behave"
	)

	func main() {
		ctx := context.Background()
		ws, err := behave.New("./module")
		if err != nil {
			log.Fatal(err)
		}

		b, _, err := ws.LoadBehaviour(ctx, "b_greeter.nss")
		if err != nil {
			log.Fatal(err)
		}

		b.Verb("Wave").Preconditions = append(b.Verb("Wave").Preconditions, "GetIsDay()")

		// Rewrites b_greeter.nss, merges z_b_greeter.nss.
		if err := ws.SaveBehaviour(ctx, b); err != nil {
			log.Fatal(err)
		}
	}

The lower-level parser and generator live in pkg/compiler; the model in
pkg/domain; a fluent builder in pkg/dsl.
*/
package behave
