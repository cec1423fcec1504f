package quiz

import "testing"

func TestBudgetInitialPhaseNeverGates(t *testing.T) {
	b := NewBudget()
	for i := 0; i < CreditAllotment*3; i++ {
		if !b.Use() {
			t.Fatalf("initial phase gated lookup %d", i)
		}
	}
	if b.Phase != PhaseInitial {
		t.Errorf("phase = %s, want initial", b.Phase)
	}
}

func TestBudgetTransitionToCredits(t *testing.T) {
	b := NewBudget()
	for i := 0; i < InitialPhaseTarget; i++ {
		b.RecordResult(true)
	}
	if b.Phase != PhaseCredits {
		t.Fatalf("phase = %s, want credits", b.Phase)
	}
	if b.CreditsAvailable != CreditAllotment {
		t.Errorf("credits = %d, want %d", b.CreditsAvailable, CreditAllotment)
	}
}

func TestBudgetWrongAnswerRestartsInitialRun(t *testing.T) {
	b := NewBudget()
	b.RecordResult(true)
	b.RecordResult(true)
	b.RecordResult(false)
	b.RecordResult(true)
	b.RecordResult(true)
	if b.Phase != PhaseInitial {
		t.Fatalf("phase = %s, want initial after run restart", b.Phase)
	}
	b.RecordResult(true)
	if b.Phase != PhaseCredits {
		t.Errorf("phase = %s, want credits after full run", b.Phase)
	}
}

func TestBudgetCreditsNeverNegative(t *testing.T) {
	b := NewBudget()
	b.Phase = PhaseCredits
	b.CreditsAvailable = 2

	if !b.Use() || !b.Use() {
		t.Fatal("expected the granted credits to be usable")
	}
	for i := 0; i < 5; i++ {
		if b.Use() {
			t.Fatal("expected exhausted budget to gate")
		}
		if b.CreditsAvailable != 0 {
			t.Fatalf("credits = %d, want 0", b.CreditsAvailable)
		}
	}
}

func TestBudgetCorrectnessDoesNotLeaveCredits(t *testing.T) {
	b := NewBudget()
	b.Phase = PhaseCredits
	b.CreditsAvailable = CreditAllotment
	for i := 0; i < InitialPhaseTarget*2; i++ {
		b.RecordResult(true)
	}
	if b.Phase != PhaseCredits {
		t.Errorf("phase = %s, want credits", b.Phase)
	}
}

func TestBudgetResetForExercise(t *testing.T) {
	b := NewBudget()
	b.Phase = PhaseCredits
	b.CreditsAvailable = CreditAllotment
	b.Use()
	b.Use()
	b.ResetForExercise()
	if b.CreditsAvailable != CreditAllotment {
		t.Errorf("credits = %d, want refilled %d", b.CreditsAvailable, CreditAllotment)
	}
	if b.CreditsUsed != 0 {
		t.Errorf("used = %d, want 0", b.CreditsUsed)
	}
}

func TestBudgetEndedPhaseNeverGates(t *testing.T) {
	b := NewBudget()
	b.End()
	for i := 0; i < 20; i++ {
		if !b.Use() {
			t.Fatal("ended phase must not gate")
		}
	}
}
