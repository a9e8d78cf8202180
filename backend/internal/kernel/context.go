package kernel

import "sync"

// GameContext is the shared workspace every command execution runs
// against: a durable entity store, a transient per-command scratchpad,
// the engine's RNG handle, and the append-only effect log.
//
// Invariants: every entity is reachable exactly once by its id; the
// temporary workspace is empty between commands unless the engine is
// configured with clearTemporary=false; the RNG is never instantiated by
// a rule, only read through the handle here.
type GameContext struct {
	mu       sync.RWMutex
	entities map[EntityID]Entity
	temp     map[string]interface{}
	rng      RNG
	engine   *Engine
	events   *EventLog

	// current is the active command's effect buffer. nil outside of a
	// command execution — rules only ever see it through Effects().
	current *effectBuffer
}

// NewGameContext creates an empty context backed by the given RNG.
func NewGameContext(rng RNG) *GameContext {
	return &GameContext{
		entities: make(map[EntityID]Entity),
		temp:     make(map[string]interface{}),
		rng:      rng,
		events:   &EventLog{},
	}
}

// HasEntity reports whether id is currently present in the store.
func (c *GameContext) HasEntity(id EntityID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entities[id]
	return ok
}

// GetEntityRaw returns the untyped entity for id, or nil if absent. Most
// callers want the generic GetEntity helper instead.
func (c *GameContext) GetEntityRaw(id EntityID) (Entity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entities[id]
	return e, ok
}

// SetEntity performs a whole-entity replacement, inserting if absent.
// There is no in-place mutation contract — callers always hand in the
// complete new value.
func (c *GameContext) SetEntity(id EntityID, value Entity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities[id] = value
}

// DeleteEntity removes id from the store. Idempotent.
func (c *GameContext) DeleteEntity(id EntityID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entities, id)
}

// GetEntity retrieves and type-asserts the entity stored under id. It
// returns false (not an error) on a miss or a type mismatch — rules must
// treat the temporary workspace and entity store as potentially
// missing/mistyped by discipline, not by kernel enforcement.
func GetEntity[T Entity](c *GameContext, id EntityID) (T, bool) {
	var zero T
	raw, ok := c.GetEntityRaw(id)
	if !ok {
		return zero, false
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// SetTemporary writes key into the per-command scratchpad.
func (c *GameContext) SetTemporary(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.temp[key] = value
}

// GetTemporaryRaw returns the untyped value stored under key.
func (c *GameContext) GetTemporaryRaw(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.temp[key]
	return v, ok
}

// GetTemporary retrieves and type-asserts a value from the temporary
// workspace. Like GetEntity, a miss or mismatch returns false rather than
// panicking or erroring — callers must check ok.
func GetTemporary[T any](c *GameContext, key string) (T, bool) {
	var zero T
	raw, ok := c.GetTemporaryRaw(key)
	if !ok {
		return zero, false
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// ClearTemporary empties the scratchpad. The engine calls this at the
// start (and, by default, the end) of every command execution unless
// configured with clearTemporary=false.
func (c *GameContext) ClearTemporary() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.temp = make(map[string]interface{})
}

// SetRuleEngine attaches the owning engine so rules can reach it (e.g. to
// inspect registration metadata) without a package-level global.
func (c *GameContext) SetRuleEngine(e *Engine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine = e
}

// RuleEngine returns the owning engine, or nil if unset.
func (c *GameContext) RuleEngine() *Engine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.engine
}

// RNG returns the context's sole RNG handle.
func (c *GameContext) RNG() RNG {
	return c.rng
}

// Effects returns the active command's effect recorder. Outside of a rule
// execution (no command in flight) it returns nil.
func (c *GameContext) Effects() EffectRecorder {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil
	}
	return c.current
}

// Events exposes the append-only committed effect log to observers.
func (c *GameContext) Events() *EventLog {
	return c.events
}

// beginCommand opens a fresh effect buffer for the command about to run.
func (c *GameContext) beginCommand(commandType string) *effectBuffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := newEffectBuffer(commandType)
	c.current = buf
	return buf
}

// commitCommand flushes the active buffer into the event log as a single
// envelope and clears it.
func (c *GameContext) commitCommand() EffectEnvelope {
	c.mu.Lock()
	buf := c.current
	c.current = nil
	c.mu.Unlock()

	envelope := EffectEnvelope{Command: buf.commandType, SequenceStart: 1, Effects: buf.snapshot()}
	c.events.Append(envelope)
	return envelope
}

// rollbackCommand discards the active buffer without touching the event
// log.
func (c *GameContext) rollbackCommand() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}
