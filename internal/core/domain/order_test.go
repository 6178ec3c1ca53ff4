package domain

import (
	"errors"
	"fmt"
	"testing"
)

var allStatuses = []OrderStatus{StatusCreated, StatusInProgress, StatusCompleted, StatusCancelled}

// TestValidateTransition_Exhaustive enumerates every combination of role,
// current status, target status and ownership, and checks the outcome
// against the closed-form rules.
func TestValidateTransition_Exhaustive(t *testing.T) {
	allowed := func(role Role, current, next OrderStatus, isOwner bool) bool {
		switch role {
		case RoleAdmin:
			return true
		case RoleUser:
			return isOwner && current == StatusCreated && next == StatusCancelled
		case RoleEngineer:
			return (current == StatusCreated && next == StatusInProgress) ||
				(current == StatusInProgress && next == StatusCompleted)
		}
		return false
	}

	cases := 0
	for _, role := range []Role{RoleAdmin, RoleUser, RoleEngineer} {
		for _, current := range allStatuses {
			for _, next := range allStatuses {
				for _, isOwner := range []bool{true, false} {
					cases++
					err := ValidateTransition(role, current, next, isOwner)
					want := allowed(role, current, next, isOwner)
					if (err == nil) != want {
						t.Errorf("role=%s %s->%s owner=%v: err=%v, want allowed=%v",
							role, current, next, isOwner, err, want)
					}
				}
			}
		}
	}
	if cases != 96 {
		t.Fatalf("enumerated %d cases, want 96", cases)
	}
}

func TestValidateTransition_DenialKinds(t *testing.T) {
	// A user touching someone else's order is an ownership failure, not a
	// lifecycle failure.
	err := ValidateTransition(RoleUser, StatusCreated, StatusCancelled, false)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner user: got %v, want ErrForbidden", err)
	}

	// An owner attempting a disallowed edge is a lifecycle failure.
	err = ValidateTransition(RoleUser, StatusCreated, StatusCompleted, true)
	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("owner bad edge: got %v, want ErrInvalidStatusTransition", err)
	}

	// Engineers are never ownership-gated; their denials are lifecycle ones.
	err = ValidateTransition(RoleEngineer, StatusCompleted, StatusCancelled, false)
	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("engineer bad edge: got %v, want ErrInvalidStatusTransition", err)
	}

	if err := ValidateTransition("ghost", StatusCreated, StatusCancelled, true); !errors.Is(err, ErrForbidden) {
		t.Errorf("unknown role: got %v, want ErrForbidden", err)
	}
}

func TestValidateItems(t *testing.T) {
	items := []OrderItem{
		{ProductID: "p1", Name: "Widget", Quantity: 2, Price: 10.50},
		{ProductID: "p2", Name: "Gadget", Quantity: 1, Price: 4.00},
	}
	// exact sum 25.00
	if err := ValidateItems(items, 25.00); err != nil {
		t.Fatalf("exact total rejected: %v", err)
	}
	// within tolerance
	if err := ValidateItems(items, 25.01); err != nil {
		t.Fatalf("total within tolerance rejected: %v", err)
	}
	if err := ValidateItems(items, 24.99); err != nil {
		t.Fatalf("total within tolerance rejected: %v", err)
	}
	// past tolerance
	if err := ValidateItems(items, 25.02); !errors.Is(err, ErrInvalidTotal) {
		t.Fatalf("expected ErrInvalidTotal, got %v", err)
	}
	if err := ValidateItems(items, 30.00); !errors.Is(err, ErrInvalidTotal) {
		t.Fatalf("expected ErrInvalidTotal, got %v", err)
	}

	var detailed *Error
	if errors.As(ValidateItems(items, 30.00), &detailed) {
		if detailed.Details["calculated"] != "25.00" {
			t.Errorf("calculated detail = %q, want 25.00", detailed.Details["calculated"])
		}
	} else {
		t.Fatal("mismatch error carries no details")
	}
}

func TestValidateItems_ItemInvariants(t *testing.T) {
	if err := ValidateItems(nil, 0); !errors.Is(err, ErrInvalidTotal) {
		t.Errorf("empty items: got %v, want ErrInvalidTotal", err)
	}

	bad := []struct {
		name  string
		items []OrderItem
	}{
		{"zero quantity", []OrderItem{{ProductID: "p1", Quantity: 0, Price: 5}}},
		{"negative quantity", []OrderItem{{ProductID: "p1", Quantity: -1, Price: 5}}},
		{"zero price", []OrderItem{{ProductID: "p1", Quantity: 1, Price: 0}}},
		{"negative price", []OrderItem{{ProductID: "p1", Quantity: 1, Price: -5}}},
	}
	for _, tc := range bad {
		var e *Error
		err := ValidateItems(tc.items, 5)
		if !errors.As(err, &e) || e.Code != "VALIDATION_ERROR" {
			t.Errorf("%s: got %v, want VALIDATION_ERROR", tc.name, err)
		}
	}
}

func TestDeletable(t *testing.T) {
	want := map[OrderStatus]bool{
		StatusCreated:    true,
		StatusCancelled:  true,
		StatusInProgress: false,
		StatusCompleted:  false,
	}
	for status, expect := range want {
		if got := Deletable(status); got != expect {
			t.Errorf("Deletable(%s) = %v, want %v", status, got, expect)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, s := range allStatuses {
		got, ok := ParseOrderStatus(string(s))
		if !ok || got != s {
			t.Errorf("ParseOrderStatus(%q) = %v, %v", s, got, ok)
		}
	}
	for _, raw := range []string{"", "CREATED", "done", "in-progress"} {
		if _, ok := ParseOrderStatus(raw); ok {
			t.Errorf("ParseOrderStatus(%q) accepted", raw)
		}
	}
}

func TestOrderClone_Independent(t *testing.T) {
	o := &Order{
		ID:    "o1",
		Items: []OrderItem{{ProductID: "p1", Quantity: 1, Price: 9.99}},
	}
	clone := o.Clone()
	clone.Items[0].Quantity = 100
	if o.Items[0].Quantity != 1 {
		t.Fatal("clone shares item slice with original")
	}
}

func TestErrorIs_SurvivesCopies(t *testing.T) {
	err := ErrInvalidStatusTransition.WithMessage(fmt.Sprintf("from %q", StatusCompleted))
	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatal("WithMessage copy no longer matches its sentinel")
	}
	if errors.Is(err, ErrCannotDeleteOrder) {
		t.Fatal("distinct codes must not match")
	}
}
