package kernel

import "fmt"

// PreValidateFunc performs synchronous, command-specific validation beyond
// parameter schema checks — typically entity-existence or domain-state
// checks that don't belong in a struct tag. Returning a *ValidationError
// or *EntityNotFoundError selects the corresponding CommandResult error
// code; any other error defaults to VALIDATION_FAILED.
type PreValidateFunc func(gctx *GameContext, cmd *Command) error

// ValidationError marks a PreValidateFunc failure as a caller input error.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// EntityNotFoundError marks a PreValidateFunc failure as a missing
// entity reference.
type EntityNotFoundError struct{ ID EntityID }

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity not found: %s", e.ID)
}

// CommandBinding registers a command type with the ordered tuple of rule
// names it requires and optional pre-execution validation.
type CommandBinding struct {
	Type          string
	RequiredRules []string
	PreValidate   PreValidateFunc
}

// registry holds the build-time rule and command catalogs. Registration
// happens before Engine.Start; duplicate rule names are a fatal
// configuration error.
type registry struct {
	rules       map[string]Rule
	ruleOrder   map[string]int // registration order index, for stable tie-breaks
	nextOrder   int
	commands    map[string]CommandBinding
}

func newRegistry() *registry {
	return &registry{
		rules:     make(map[string]Rule),
		ruleOrder: make(map[string]int),
		commands:  make(map[string]CommandBinding),
	}
}

func (r *registry) registerRule(rule Rule) error {
	name := rule.Name()
	if name == "" {
		return fmt.Errorf("kernel: rule registered with empty name")
	}
	if _, exists := r.rules[name]; exists {
		return fmt.Errorf("kernel: duplicate rule registration for %q", name)
	}
	r.rules[name] = rule
	r.ruleOrder[name] = r.nextOrder
	r.nextOrder++
	return nil
}

func (r *registry) registerCommand(binding CommandBinding) error {
	if binding.Type == "" {
		return fmt.Errorf("kernel: command registered with empty type")
	}
	if _, exists := r.commands[binding.Type]; exists {
		return fmt.Errorf("kernel: duplicate command registration for %q", binding.Type)
	}
	r.commands[binding.Type] = binding
	return nil
}

// validate checks that every command's required rules, and every
// registered rule's prerequisites, name a rule that actually exists in
// the registry. This runs once at Engine.Start so unknown-name mistakes
// surface immediately rather than mid-game.
func (r *registry) validate() error {
	for _, rule := range r.rules {
		for _, prereq := range rule.Prerequisites() {
			if _, ok := r.rules[prereq]; !ok {
				return fmt.Errorf("kernel: rule %q declares unknown prerequisite %q", rule.Name(), prereq)
			}
		}
	}
	for _, binding := range r.commands {
		for _, name := range binding.RequiredRules {
			if _, ok := r.rules[name]; !ok {
				return fmt.Errorf("kernel: command %q requires unknown rule %q", binding.Type, name)
			}
		}
	}
	return nil
}
