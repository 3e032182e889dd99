// Package workflow implements the guarded edit session used to change a
// value that must be checked by a remote service before it can be saved.
//
// A Session never performs I/O. BeginValidate and BeginCommit hand out a
// Ticket; the caller runs the remote call and reports back through
// ResolveValidate or ResolveCommit with that ticket. Opening or cancelling the
// session invalidates every outstanding ticket, so a result that arrives after
// the surface was closed is dropped instead of corrupting the fresh state.
package workflow

import (
	"fmt"
	"strings"
)

// Phase is the externally visible state of a Session.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseEditing
	PhaseValidating
	PhaseVerified
	PhaseCommitting
)

var phaseNames = [...]string{"closed", "editing", "validating", "verified", "committing"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Default user-facing messages.
const (
	MsgTaken        = "이미 사용중인 닉네임입니다."
	MsgCheckFailed  = "닉네임 확인 중 오류가 발생했습니다. 다시 시도해주세요."
	MsgCommitFailed = "닉네임 변경에 실패했습니다. 다시 시도해주세요."
)

// Messages are the inline error texts a Session reports. Empty fields fall
// back to the defaults above.
type Messages struct {
	Taken        string
	CheckFailed  string
	CommitFailed string
}

// CheckResult is the answer of the remote existence check.
type CheckResult struct {
	Exists  bool
	Message string
}

type ticketKind int

const (
	ticketValidate ticketKind = iota + 1
	ticketCommit
)

// Ticket identifies one dispatched remote call.
type Ticket struct {
	epoch uint64
	kind  ticketKind
	// Value is the candidate the call must be made with.
	Value string
}

// Session is the state of one edit surface.
type Session struct {
	msgs Messages

	editing   bool
	draft     string
	candidate string
	verified  bool
	pending   bool
	failed    bool
	errMsg    string

	epoch uint64
}

// NewSession returns a closed session using msgs for its error texts.
func NewSession(msgs Messages) *Session {
	if msgs.Taken == "" {
		msgs.Taken = MsgTaken
	}
	if msgs.CheckFailed == "" {
		msgs.CheckFailed = MsgCheckFailed
	}
	if msgs.CommitFailed == "" {
		msgs.CommitFailed = MsgCommitFailed
	}
	return &Session{msgs: msgs}
}

func (s *Session) Editing() bool        { return s.editing }
func (s *Session) Draft() string        { return s.draft }
func (s *Session) Verified() bool       { return s.verified }
func (s *Session) Pending() bool        { return s.pending }
func (s *Session) Failed() bool         { return s.failed }
func (s *Session) ErrorMessage() string { return s.errMsg }

// CanCommit reports whether BeginCommit would dispatch.
func (s *Session) CanCommit() bool {
	return s.editing && s.verified && !s.pending
}

// CanEditDraft reports whether SetDraft would apply.
func (s *Session) CanEditDraft() bool {
	return s.editing && !s.verified && !s.pending
}

// Phase derives the current phase from the session fields.
func (s *Session) Phase() Phase {
	switch {
	case !s.editing:
		return PhaseClosed
	case s.pending && s.verified:
		return PhaseCommitting
	case s.pending:
		return PhaseValidating
	case s.verified:
		return PhaseVerified
	default:
		return PhaseEditing
	}
}

// Open starts a fresh edit.
func (s *Session) Open() {
	s.reset()
	s.editing = true
}

// SetDraft replaces the draft value. It does nothing once the draft is
// verified or while a call is in flight.
func (s *Session) SetDraft(value string) bool {
	if !s.CanEditDraft() {
		return false
	}
	s.draft = value
	return true
}

// BeginValidate starts an existence check for the trimmed draft. It returns
// false, and changes nothing, when the draft is blank, a call is in flight or
// the draft is already verified.
func (s *Session) BeginValidate() (Ticket, bool) {
	if !s.editing || s.pending || s.verified {
		return Ticket{}, false
	}
	candidate := strings.TrimSpace(s.draft)
	if candidate == "" {
		return Ticket{}, false
	}
	s.pending = true
	s.candidate = candidate
	return Ticket{epoch: s.epoch, kind: ticketValidate, Value: candidate}, true
}

// ResolveValidate applies the outcome of a check. It returns false when the
// ticket is stale and the outcome was discarded.
func (s *Session) ResolveValidate(t Ticket, res CheckResult, err error) bool {
	if !s.current(t, ticketValidate) {
		return false
	}
	s.pending = false

	switch {
	case err != nil:
		s.verified = false
		s.failed = true
		s.errMsg = s.msgs.CheckFailed
	case res.Exists:
		s.verified = false
		s.failed = true
		s.errMsg = res.Message
		if s.errMsg == "" {
			s.errMsg = s.msgs.Taken
		}
	default:
		s.verified = true
		s.failed = false
		s.errMsg = ""
	}
	return true
}

// BeginCommit starts saving the verified candidate. Without a successful
// validation it silently does nothing.
func (s *Session) BeginCommit() (Ticket, bool) {
	if !s.CanCommit() {
		return Ticket{}, false
	}
	s.pending = true
	return Ticket{epoch: s.epoch, kind: ticketCommit, Value: s.candidate}, true
}

// ResolveCommit applies the outcome of a save. On success the session closes
// and the committed value is returned with ok set. On failure the session
// stays open, unverified, with the commit error shown. A stale ticket is
// discarded and reported with applied false.
func (s *Session) ResolveCommit(t Ticket, err error) (committed string, ok bool, applied bool) {
	if !s.current(t, ticketCommit) {
		return "", false, false
	}
	s.pending = false

	if err != nil {
		s.verified = false
		s.failed = true
		s.errMsg = s.msgs.CommitFailed
		return "", false, true
	}

	s.reset()
	return t.Value, true, true
}

// Cancel closes the surface and drops any outstanding call.
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) current(t Ticket, kind ticketKind) bool {
	return s.editing && s.pending && t.kind == kind && t.epoch == s.epoch
}

func (s *Session) reset() {
	s.epoch++
	s.editing = false
	s.draft = ""
	s.candidate = ""
	s.verified = false
	s.pending = false
	s.failed = false
	s.errMsg = ""
}
