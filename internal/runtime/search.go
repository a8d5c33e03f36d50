package runtime

import "github.com/aretw0/pushdown/pkg/domain"

// Accepts reports whether some branch consumes all of input and ends in an
// accept state. It fails only with *domain.StepBudgetExceededError.
func (a *Automaton) Accepts(input string, opts RunOptions) (bool, error) {
	res, err := a.Run(input, opts)
	if err != nil {
		return false, err
	}
	return res.Accepted, nil
}

// Run performs the breadth-first search over configurations.
//
// The search starts from the start state with an empty stack, dequeues one
// configuration per step, and stops at the first accepting configuration in
// dequeue order, which is a branch with the fewest simulation steps.
// Revisited configurations are not detected: automata with epsilon cycles
// can grow the queue without bound, and StepLimit is the only guard.
func (a *Automaton) Run(input string, opts RunOptions) (*Result, error) {
	var h history
	h.push(initialConfiguration(a.start, input), "")

	for step := 0; step < h.len(); step++ {
		if opts.StepLimit > 0 && step >= opts.StepLimit {
			a.logger.Debug("step budget exceeded", "limit", opts.StepLimit, "queued", h.len()-step)
			return nil, &domain.StepBudgetExceededError{Limit: opts.StepLimit}
		}

		cfg := h.configs[step]
		branch := h.labels[step]

		if a.IsAccepting(cfg) {
			a.visit(opts, step, branch, cfg, domain.OutcomeAccept, nil)
			path := snapshots(h.path(cfg.id))
			if opts.ShowAcceptPath && opts.Hooks.OnAccept != nil {
				opts.Hooks.OnAccept(&domain.AcceptEvent{Step: step, Branch: branch, Path: path})
			}
			a.logger.Debug("input accepted", "steps", step+1, "branch", branch, "path_length", len(path))
			return &Result{Accepted: true, Steps: step + 1, Branch: branch, Path: path}, nil
		}

		next := a.table.Successors(cfg)
		switch len(next) {
		case 0:
			a.visit(opts, step, branch, cfg, domain.OutcomeDeadEnd, nil)
		case 1:
			a.visit(opts, step, branch, cfg, domain.OutcomeContinue, nil)
			h.push(next[0], branch)
		default:
			labels := splitLabels(branch, len(next))
			a.visit(opts, step, branch, cfg, domain.OutcomeSplit, labels)
			for i, n := range next {
				h.push(n, labels[i])
			}
		}
	}

	a.logger.Debug("input rejected", "steps", h.len())
	return &Result{Accepted: false, Steps: h.len()}, nil
}

func (a *Automaton) visit(opts RunOptions, step int, branch string, cfg Configuration, outcome domain.Outcome, labels []string) {
	if !opts.ShowAllTransitions || opts.Hooks.OnVisit == nil {
		return
	}
	opts.Hooks.OnVisit(&domain.VisitEvent{
		Step:     step,
		Branch:   branch,
		Config:   cfg.Snapshot(),
		Outcome:  outcome,
		Branches: labels,
	})
}

// splitLabels names the children of a fork: the parent label followed by
// A, B, C... in rule order.
func splitLabels(parent string, n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = parent + string(rune('A'+i))
	}
	return labels
}

func snapshots(path []Configuration) []domain.Snapshot {
	out := make([]domain.Snapshot, len(path))
	for i, c := range path {
		out[i] = c.Snapshot()
	}
	return out
}
