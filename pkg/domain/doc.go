/*
Package domain contains the behaviour model edited by the behave tooling.

A Behaviour is the root aggregate of an in-game AI action graph. It owns an
ordered list of typed variables (NWVariable) and an ordered list of verbs
(Verb). Verbs point at each other through follower edges; those edges are
identities inside the owning Behaviour, never ownership, and cycles are
allowed.

The package is kept pure: no I/O, no parsing, no code generation. Those live
in pkg/compiler and the adapters.

# Key Entities

  - Behaviour: name, variables and verbs of one script pair (b_ / z_b_).
  - Verb: a node of the action graph, performing an ActualVerb by name.
  - NWVariable: an object/string/int/float slot, optionally flagged as an actor.
  - ActualVerb: a catalog entry parsed from util_verbs.nss.
  - Catalog: the ordered list of ActualVerbs.
*/
package domain
