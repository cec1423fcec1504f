package quiz

// Phase describes the hover-credit scaffold's lifecycle. Lookups start out
// unlimited, then become a per-exercise budget once the learner shows they
// can answer without leaning on translation.
type Phase string

const (
	// PhaseInitial grants unlimited lookups while the learner warms up.
	PhaseInitial Phase = "initial"

	// PhaseCredits gates lookups behind a per-exercise allotment.
	PhaseCredits Phase = "credits"

	// PhaseEnded means the scaffold was switched off; lookups are free.
	PhaseEnded Phase = "ended"
)

const (
	// InitialPhaseTarget is the run of correct answers in the initial phase
	// that moves the learner onto the credit budget.
	InitialPhaseTarget = 3

	// CreditAllotment is the per-exercise lookup budget in the credits phase.
	CreditAllotment = 10
)

// Budget is the hover-credit state for the learner's current session. Never
// persisted; it resets per exercise and its phase advances per answer.
type Budget struct {
	Phase            Phase
	CreditsAvailable int
	CreditsUsed      int

	// correctInPhase counts consecutive correct answers toward the next
	// phase transition (initial phase) or UI messaging (credits phase).
	correctInPhase int
}

// NewBudget starts in the initial, non-gating phase.
func NewBudget() Budget {
	return Budget{Phase: PhaseInitial}
}

// Use consumes one lookup credit. Only the credits phase gates: it returns
// false with the count unchanged when no credits remain. The initial and
// ended phases always succeed.
func (b *Budget) Use() bool {
	if b.Phase != PhaseCredits {
		b.CreditsUsed++
		return true
	}
	if b.CreditsAvailable == 0 {
		return false
	}
	b.CreditsAvailable--
	b.CreditsUsed++
	return true
}

// RecordResult advances the phase state after one graded answer. A correct
// run of InitialPhaseTarget answers moves initial to credits and grants the
// allotment; a wrong answer in the initial phase restarts the run. In the
// credits phase correctness only feeds the counter.
func (b *Budget) RecordResult(correct bool) {
	switch b.Phase {
	case PhaseInitial:
		if !correct {
			b.correctInPhase = 0
			return
		}
		b.correctInPhase++
		if b.correctInPhase >= InitialPhaseTarget {
			b.Phase = PhaseCredits
			b.correctInPhase = 0
			b.CreditsAvailable = CreditAllotment
		}
	case PhaseCredits:
		if correct {
			b.correctInPhase++
		}
	}
}

// ResetForExercise refills the per-exercise state when a new exercise is
// adopted. Phase and the in-phase counter carry across exercises.
func (b *Budget) ResetForExercise() {
	b.CreditsUsed = 0
	if b.Phase == PhaseCredits {
		b.CreditsAvailable = CreditAllotment
	}
}

// End switches the scaffold off for the rest of the session.
func (b *Budget) End() {
	b.Phase = PhaseEnded
	b.CreditsAvailable = 0
}
