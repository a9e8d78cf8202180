package kernel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/feremabraz/osric-rules-engine-sub007/backend/pkg/logger"
)

// EngineOptions configures a new Engine. A zero Seed means "derive one
// from host time" — non-deterministic by design; pass an explicit seed to
// get reproducible runs.
type EngineOptions struct {
	Seed int64
	// KeepTemporary disables the scratchpad clears Execute performs by
	// default at the start and at the end of every command. Leave false in production; some rule tests rely on reading a
	// previous command's scratchpad to assert intermediate state.
	KeepTemporary bool
	Logger        *logger.Logger
}

// Engine is the scheduling core: it resolves the rule chain for a
// command, executes it in order, and either commits the staged effects
// or rolls them back. Exactly one command may execute at a time per
// engine instance — see Execute.
type Engine struct {
	mu             sync.Mutex // serializes command execution end to end
	registry       *registry
	ctx            *GameContext
	clearTemporary bool
	started        bool
	observers      []Observer
	log            *logger.Logger
}

// NewEngine constructs an engine and its backing GameContext. Call
// RegisterRule/RegisterCommand to populate the catalog, then Start.
func NewEngine(opts EngineOptions) *Engine {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewDefault()
	}

	e := &Engine{
		registry:       newRegistry(),
		clearTemporary: !opts.KeepTemporary,
		log:            log,
	}
	e.ctx = NewGameContext(NewRNG(seed))
	e.ctx.SetRuleEngine(e)
	return e
}

// NewEngineDefault builds an engine with default clearing behavior and a
// host-time-derived seed.
func NewEngineDefault() *Engine {
	return NewEngine(EngineOptions{})
}

// RegisterRule adds a rule to the build-time registry. Must be called
// before Start. Duplicate names are a fatal configuration error.
func (e *Engine) RegisterRule(rule Rule) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return fmt.Errorf("kernel: cannot register rule %q after Start", rule.Name())
	}
	return e.registry.registerRule(rule)
}

// RegisterCommand binds a command type to its required rules and optional
// pre-validation. Must be called before Start.
func (e *Engine) RegisterCommand(binding CommandBinding) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return fmt.Errorf("kernel: cannot register command %q after Start", binding.Type)
	}
	return e.registry.registerCommand(binding)
}

// AddObserver registers a sink notified after each successful commit.
func (e *Engine) AddObserver(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
}

// Context returns the engine's GameContext, primarily so callers can
// pre-seed entities before issuing commands.
func (e *Engine) Context() *GameContext {
	return e.ctx
}

// Start resolves command-to-rule bindings and checks the prerequisite
// graph for unknown names. It is idempotent: calling it again is a no-op.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return nil
	}
	if err := e.registry.validate(); err != nil {
		return err
	}
	e.started = true
	return nil
}

// Execute runs one command end to end: validation, ordering, execution,
// and commit-or-rollback. Commands on a single engine are fully
// serialized — no two calls to Execute on the same Engine ever interleave.
func (e *Engine) Execute(ctx context.Context, commandType string, parameters interface{}, actorID EntityID, targetIDs ...EntityID) CommandResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	binding, ok := e.registry.commands[commandType]
	if !ok {
		return failWith(ErrValidationFailed, fmt.Sprintf("unknown command type %q", commandType), nil)
	}

	cmd := &Command{Type: commandType, Parameters: parameters, ActorID: actorID, TargetIDs: targetIDs}

	if err := e.validateEntities(cmd); err != nil {
		return err.(commandErrorer).toResult()
	}

	if binding.PreValidate != nil {
		if err := binding.PreValidate(e.ctx, cmd); err != nil {
			return preValidateResult(err)
		}
	}

	ordered, err := buildChain(e.registry, e.ctx, cmd, binding.RequiredRules)
	if err != nil {
		return failWith(ErrRuleConfig, err.Error(), nil)
	}
	if len(ordered) == 0 {
		return failWith(ErrNoApplicableRules, fmt.Sprintf("no applicable rules for command %q", commandType), nil)
	}

	e.ctx.beginCommand(commandType)
	if e.clearTemporary {
		e.ctx.ClearTemporary()
	}

	result := e.runChain(ctx, ordered, cmd)

	if e.clearTemporary {
		e.ctx.ClearTemporary()
	}
	return result
}

// runChain executes the ordered rule list and returns the final
// CommandResult, committing or rolling back the effect buffer as it goes.
func (e *Engine) runChain(ctx context.Context, ordered []Rule, cmd *Command) CommandResult {
	mergedData := make(map[string]interface{})

	for _, rule := range ordered {
		if !rule.CanApply(e.ctx, cmd) {
			continue
		}

		result, err := e.safeExecute(ctx, rule, cmd)
		if err != nil {
			e.ctx.rollbackCommand()
			e.log.WithField("rule", rule.Name()).WithField("command", cmd.Type).WithError(err).Error().Msg("rule execution raised an exception")
			return CommandResult{OK: false, Critical: true, Error: &CommandError{Code: ErrRuleException, Message: err.Error()}}
		}

		switch result.Kind {
		case ResultSuccess:
			for k, v := range result.Data {
				mergedData[k] = v
			}
			if result.StopChain {
				return e.commit(ctx, cmd, mergedData)
			}
		case ResultFailure:
			e.ctx.rollbackCommand()
			return CommandResult{
				OK:       false,
				Critical: result.Critical,
				Error: &CommandError{
					Code:    ErrRuleFailure,
					Message: result.Message,
					Details: result.Data,
				},
			}
		default:
			e.ctx.rollbackCommand()
			return CommandResult{OK: false, Error: &CommandError{Code: ErrRuleException, Message: fmt.Sprintf("rule %q returned an unrecognized result kind %q", rule.Name(), result.Kind)}}
		}
	}

	return e.commit(ctx, cmd, mergedData)
}

// safeExecute runs a rule's Execute, converting any panic into an error so
// a single misbehaving rule body can never take the engine down.
func (e *Engine) safeExecute(ctx context.Context, rule Rule, cmd *Command) (result RuleResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in rule %q: %v", rule.Name(), r)
		}
	}()
	return rule.Execute(ctx, e.ctx, cmd)
}

// commit flushes the effect buffer, notifies observers, and returns the
// success result.
func (e *Engine) commit(ctx context.Context, cmd *Command, data map[string]interface{}) CommandResult {
	envelope := e.ctx.commitCommand()
	e.notifyObservers(ctx, envelope)
	return CommandResult{OK: true, Data: data}
}

func (e *Engine) notifyObservers(ctx context.Context, envelope EffectEnvelope) {
	for _, obs := range e.observers {
		func(o Observer) {
			defer func() {
				if r := recover(); r != nil {
					e.log.WithField("command", envelope.Command).Error().Interface("panic", r).Msg("observer panicked on commit")
				}
			}()
			if err := o.OnCommit(ctx, envelope); err != nil {
				e.log.WithField("command", envelope.Command).WithError(err).Error().Msg("observer failed to record commit")
			}
		}(obs)
	}
}

// validateEntities checks that the command's actor and targets exist,
// surfacing ENTITY_NOT_FOUND before any rule runs.
func (e *Engine) validateEntities(cmd *Command) error {
	if cmd.HasActor() && !e.ctx.HasEntity(cmd.ActorID) {
		return entityNotFoundErr(cmd.ActorID)
	}
	for _, id := range cmd.TargetIDs {
		if !e.ctx.HasEntity(id) {
			return entityNotFoundErr(id)
		}
	}
	return nil
}

// commandErrorer lets validateEntities's sentinel errors carry their own
// CommandResult conversion without a type switch at the call site.
type commandErrorer interface {
	error
	toResult() CommandResult
}

type entityNotFoundErr EntityID

func (e entityNotFoundErr) Error() string {
	return fmt.Sprintf("entity not found: %s", EntityID(e))
}

func (e entityNotFoundErr) toResult() CommandResult {
	return failWith(ErrEntityNotFound, e.Error(), map[string]interface{}{"entityId": string(e)})
}

func failWith(code ErrorCode, message string, details map[string]interface{}) CommandResult {
	return CommandResult{OK: false, Error: &CommandError{Code: code, Message: message, Details: details}}
}

// preValidateResult classifies a PreValidateFunc error into the right
// CommandResult error code.
func preValidateResult(err error) CommandResult {
	switch typed := err.(type) {
	case *EntityNotFoundError:
		return failWith(ErrEntityNotFound, typed.Error(), map[string]interface{}{"entityId": string(typed.ID)})
	case *ValidationError:
		return failWith(ErrValidationFailed, typed.Error(), nil)
	default:
		return failWith(ErrValidationFailed, err.Error(), nil)
	}
}
