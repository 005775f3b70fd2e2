// Package referral validates user-entered referral codes against the
// backend without flooding it on every keystroke.
package referral

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/reftrack/refadmin/internal/api"
	"github.com/reftrack/refadmin/internal/log"
)

// InvalidCodeMessage is the single user-facing failure message. A wrong
// code and an unreachable validation service read the same to the user;
// either way the referral is optional and never blocks registration.
const InvalidCodeMessage = "Invalid referral code"

// DefaultQuietPeriod is how long input must settle before a check fires.
const DefaultQuietPeriod = 500 * time.Millisecond

// State is the validator's user-visible state. Exactly one of
// {untouched, validating, valid, invalid} holds at a time.
type State struct {
	IsValidating bool
	IsValid      bool
	ReferrerInfo string
	Error        string
}

// CheckFunc asks the backend about a referral code.
type CheckFunc func(ctx context.Context, code string) (*api.ReferralCheck, error)

// Validator debounces referral-code input and reconciles results against
// possibly-stale in-flight checks.
//
// Every edit bumps a sequence number; a response whose sequence is no longer
// current is discarded, so a result from an earlier cycle can never
// overwrite a later one, even if its network call returns late.
type Validator struct {
	check    CheckFunc
	onChange func(State)
	quiet    time.Duration
	logger   *log.Logger

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	state  State
	closed bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithQuietPeriod overrides the debounce quiet period.
func WithQuietPeriod(d time.Duration) Option {
	return func(v *Validator) { v.quiet = d }
}

// NewValidator creates a validator. onChange receives every state
// transition; it runs under the validator's lock and must not call back
// into the validator.
func NewValidator(check CheckFunc, onChange func(State), logger *log.Logger, opts ...Option) *Validator {
	v := &Validator{
		check:    check,
		onChange: onChange,
		quiet:    DefaultQuietPeriod,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Input registers an edit to the referral field. Empty input resets the
// state to untouched; non-empty input (re)schedules a check after the quiet
// period. Either way any pending timer is cancelled, so at most one check
// is in flight per debounce cycle.
func (v *Validator) Input(code string) {
	code = strings.TrimSpace(code)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}

	v.seq++
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}

	if code == "" {
		v.setState(State{})
		return
	}

	seq := v.seq
	v.timer = time.AfterFunc(v.quiet, func() {
		v.fire(seq, code)
	})
}

// State returns the current validation state.
func (v *Validator) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Close cancels any pending timer. Late responses after Close are
// discarded, so tearing down mid-flight is safe.
func (v *Validator) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}

// fire runs when the quiet period elapses without further edits.
func (v *Validator) fire(seq uint64, code string) {
	v.mu.Lock()
	if v.closed || seq != v.seq {
		v.mu.Unlock()
		return
	}
	v.setState(State{IsValidating: true})
	v.mu.Unlock()

	check, err := v.check(context.Background(), code)

	v.mu.Lock()
	defer v.mu.Unlock()

	// Discard stale results: the input changed while this check was in
	// flight.
	if v.closed || seq != v.seq {
		return
	}

	if err != nil {
		v.logger.WithError(err).Debug("referral check failed", "code", code)
		v.setState(State{Error: InvalidCodeMessage})
		return
	}

	if !check.IsValid {
		v.setState(State{Error: InvalidCodeMessage})
		return
	}

	referrer := check.UserName
	if referrer == "" {
		referrer = "N/A"
	}
	v.setState(State{IsValid: true, ReferrerInfo: referrer})
}

// setState records and publishes a transition. Callers hold the lock.
func (v *Validator) setState(s State) {
	v.state = s
	if v.onChange != nil {
		v.onChange(s)
	}
}
