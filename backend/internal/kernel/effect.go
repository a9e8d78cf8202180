package kernel

import "sync"

// Effect is a single staged side-effect. Sequence is monotonic within the
// command that produced it. Effect types are open-ended, lowercase,
// dash-separated strings the kernel never interprets.
type Effect struct {
	Type        string
	Target      EntityID
	Payload     interface{}
	CommandType string
	Sequence    int
}

// EffectEnvelope is the atomic unit appended to the event log on a
// successful commit: every effect staged during one command, in
// rule-execution order.
type EffectEnvelope struct {
	Command       string
	SequenceStart int
	Effects       []Effect
}

// EffectRecorder is the restricted facade a rule sees during execution —
// it can append staged effects but can never reach into the buffer, flush
// it early, or observe effects from other commands.
type EffectRecorder interface {
	Add(effectType string, target EntityID, payload interface{})
}

// effectBuffer stages one command's effects. It starts empty, accumulates
// through Add, and is either flushed whole into the event log on success
// or discarded on failure — effects are never visible mid-chain.
type effectBuffer struct {
	mu          sync.Mutex
	commandType string
	next        int
	effects     []Effect
}

func newEffectBuffer(commandType string) *effectBuffer {
	return &effectBuffer{commandType: commandType, next: 1}
}

func (b *effectBuffer) Add(effectType string, target EntityID, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.effects = append(b.effects, Effect{
		Type:        effectType,
		Target:      target,
		Payload:     payload,
		CommandType: b.commandType,
		Sequence:    b.next,
	})
	b.next++
}

func (b *effectBuffer) snapshot() []Effect {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Effect, len(b.effects))
	copy(out, b.effects)
	return out
}

// EventLog is the append-only, authoritative history of committed effect
// envelopes. It is written only by the engine's commit phase and is
// read-only to external observers.
type EventLog struct {
	mu        sync.RWMutex
	envelopes []EffectEnvelope
}

// Append adds a committed envelope to the log. Only called by the engine.
func (l *EventLog) Append(envelope EffectEnvelope) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.envelopes = append(l.envelopes, envelope)
}

// Effects returns a copy of the committed envelopes in commit order.
func (l *EventLog) Effects() []EffectEnvelope {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]EffectEnvelope, len(l.envelopes))
	copy(out, l.envelopes)
	return out
}
