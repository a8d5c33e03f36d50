/*
Package runner evaluates inputs on behalf of long-running front ends.

It sits between a pushdown.Machine and the HTTP and MCP adapters: every
request is validated, capped to the server's step budget, answered from a
ports.ResultStore when the same question was asked before, and counted in
the observability metrics.

# Usage

	r := runner.New(machine,
		runner.WithStore(memory.NewStore()),
		runner.WithMaxSteps(10_000),
	)

	verdict, err := r.Evaluate(ctx, runner.Request{Input: "0011", WithPath: true})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(verdict.Status())
*/
package runner
