/*
Package dsl provides a Go DSL for programmatically constructing pushdown automaton definitions.

It is an alternative to the text and YAML formats when a definition is generated in code,
used in unit tests, or simply benefits from IDE autocompletion.

Example usage:

	def, err := dsl.New().
		Named("zeroes-then-ones").
		States("q1", "q2", "q3", "q4").
		Start("q1").
		Accept("q1", "q4").
		Input("01").
		Stack("0$").
		On("q1").Push("$").To("q2").
		On("q2").Read("0").Push("0").Loop().
		On("q2").Read("1").Pop("0").To("q3").
		On("q3").Read("1").Pop("0").Loop().
		On("q3").Pop("$").To("q4").
		Build()
	if err != nil {
		// handle
	}
	machine, err := pushdown.New(def)
*/
package dsl
