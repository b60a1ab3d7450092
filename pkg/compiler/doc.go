/*
Package compiler reads and writes the behave script formats.

The front end parses two inputs: the action catalog (util_verbs.nss) and the
header comment block of a behaviour control script (b_<name>.nss). The back
end renders a Behaviour into the control script and the checkcues stub script
(z_b_<name>.nss). Both ends share the keywords and patterns in grammar.go, so
a freshly generated control script always parses back into an equal model.

Structural problems abort a parse with a *domain.ParseError. Lines that match
no pattern are reported as Diagnostics and skipped.

	b, err := compiler.ParseBehaviour(compiler.Lines(text))
	if err != nil {
		return err
	}
	control := compiler.GenerateControlCode(b)
*/
package compiler
