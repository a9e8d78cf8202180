package kernel

// ResultKind discriminates the RuleResult tagged union.
type ResultKind string

// The two RuleResult variants. There is no third, boolean-flavored form —
// unify on the tagged union everywhere.
const (
	ResultSuccess ResultKind = "success"
	ResultFailure ResultKind = "failure"
)

// RuleResult is total: a rule always returns exactly one of the two
// variants below, built only through NewSuccessResult/NewFailureResult so
// that the StopChain/Critical defaults stay consistent across the
// codebase.
type RuleResult struct {
	Kind      ResultKind
	Message   string
	Data      map[string]interface{}
	Critical  bool // only meaningful when Kind == ResultFailure
	StopChain bool
}

// ResultOption customizes a RuleResult at construction time.
type ResultOption func(*RuleResult)

// WithData attaches result data. Keys are merged into the command's
// overall data on success; last writer (by rule execution order) wins.
func WithData(data map[string]interface{}) ResultOption {
	return func(r *RuleResult) { r.Data = data }
}

// WithStopChain marks a success result as halting the remaining chain
// without itself signaling failure.
func WithStopChain() ResultOption {
	return func(r *RuleResult) { r.StopChain = true }
}

// WithCritical marks a failure as gameplay-catastrophic. It does not
// change recoverability, only the severity surfaced to observers.
func WithCritical() ResultOption {
	return func(r *RuleResult) { r.Critical = true }
}

// WithSuppressedStopChain explicitly clears the StopChain flag a failure
// otherwise defaults to. The engine still halts the chain on any failure;
// this only affects the flag's informational value to observers.
func WithSuppressedStopChain() ResultOption {
	return func(r *RuleResult) { r.StopChain = false }
}

// NewSuccessResult is the only sanctioned way to build a success result.
func NewSuccessResult(message string, opts ...ResultOption) RuleResult {
	r := RuleResult{Kind: ResultSuccess, Message: message}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// NewFailureResult is the only sanctioned way to build a failure result.
// Failure implies StopChain=true unless WithSuppressedStopChain is given.
func NewFailureResult(message string, opts ...ResultOption) RuleResult {
	r := RuleResult{Kind: ResultFailure, Message: message, StopChain: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// ErrorCode is the closed set of codes surfaced in CommandResult.Error.Code.
type ErrorCode string

// The kernel's closed error code catalog.
const (
	ErrValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrEntityNotFound    ErrorCode = "ENTITY_NOT_FOUND"
	ErrRuleConfig        ErrorCode = "RULE_CONFIG"
	ErrRuleFailure       ErrorCode = "RULE_FAILURE"
	ErrRuleException     ErrorCode = "RULE_EXCEPTION"
	ErrNoApplicableRules ErrorCode = "NO_APPLICABLE_RULES"
)

// CommandError carries the code/message/details triple surfaced to callers
// on a failed command.
type CommandError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
}

func (e *CommandError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// CommandResult is what Engine.Execute returns to the outside world.
// Either the full envelope commits (OK=true, Data populated) or nothing
// does (OK=false, Error populated) — there is no partial result.
type CommandResult struct {
	OK       bool
	Data     map[string]interface{}
	Error    *CommandError
	Critical bool
}
