package legstate

import "testing"

func TestTransition_HappyPath(t *testing.T) {
	s, err := Transition(Idle, EventApproved)
	if err != nil || s != Leg1Submitted {
		t.Fatalf("Idle+Approved = %v/%v, want Leg1Submitted/nil", s, err)
	}

	s, err = Transition(s, EventLeg1Filled)
	if err != nil || s != Leg1Filled {
		t.Fatalf("Leg1Submitted+Filled = %v/%v, want Leg1Filled/nil", s, err)
	}

	s, err = Transition(s, EventLeg2Filled)
	if err != nil || s != BothFilled {
		t.Fatalf("Leg1Filled+Leg2Filled = %v/%v, want BothFilled/nil", s, err)
	}

	s, err = Transition(s, EventMergeConfirmed)
	if err != nil || s != Merged {
		t.Fatalf("BothFilled+MergeConfirmed = %v/%v, want Merged/nil", s, err)
	}
	if !s.Terminal() {
		t.Fatal("Merged must be terminal")
	}
}

func TestTransition_HedgePath(t *testing.T) {
	s, _ := Transition(Leg1Filled, EventLeg2PartialOrRejected)
	if s != HedgeNeeded {
		t.Fatalf("Leg1Filled+Leg2PartialOrRejected = %v, want HedgeNeeded", s)
	}
	if !s.Open() {
		t.Fatal("HedgeNeeded must count as an open leg")
	}

	s, _ = Transition(s, EventHedgeResolvedLoss)
	if s != ClosedAtLoss {
		t.Fatalf("HedgeNeeded+ResolvedLoss = %v, want ClosedAtLoss", s)
	}
}

func TestTransition_RejectsUnknownEvent(t *testing.T) {
	_, err := Transition(Idle, EventMergeConfirmed)
	if err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestOpenLegIndex_TracksOpenStates(t *testing.T) {
	idx := NewOpenLegIndex()
	vm := VenueMarket{Venue: "kalshi", MarketID: "M1"}

	if idx.IsOpen(vm) {
		t.Fatal("expected closed before any Set")
	}

	idx.Set(vm, Leg1Submitted)
	if !idx.IsOpen(vm) {
		t.Fatal("expected open after Set(Leg1Submitted)")
	}

	idx.Set(vm, Leg1Filled)
	if idx.IsOpen(vm) {
		t.Fatal("Leg1Filled is not an open state")
	}

	idx.Set(vm, HedgeNeeded)
	if !idx.IsOpen(vm) {
		t.Fatal("expected open after Set(HedgeNeeded)")
	}

	idx.Set(vm, Merged)
	if idx.IsOpen(vm) {
		t.Fatal("terminal state must clear the index entry")
	}
}
