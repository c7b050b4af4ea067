package registry

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/baleyard/services/bale/domain"
	"github.com/ghuser/baleyard/services/bale/domain/models"
)

func bale(x, y, z float64) *models.Bale {
	return models.NewBale(uuid.New(), "WH-1", models.Position{X: x, Y: y, Z: z}, models.Horizontal)
}

func TestRegistry_AddAndGet(t *testing.T) {
	r := New("WH-1")
	b := bale(0, 1.5, 0)

	if err := r.Add(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := r.Get(b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != b {
		t.Fatal("Get must return the registered record")
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 bale, got %d", r.Len())
	}
}

func TestRegistry_AddRejectsDuplicateAndNil(t *testing.T) {
	r := New("WH-1")
	b := bale(0, 1.5, 0)
	_ = r.Add(b)

	if err := r.Add(b); !errors.Is(err, domain.ErrBaleAlreadyExists) {
		t.Fatalf("expected ErrBaleAlreadyExists, got %v", err)
	}
	if err := r.Add(nil); !errors.Is(err, domain.ErrInvalidBale) {
		t.Fatalf("expected ErrInvalidBale for nil, got %v", err)
	}
	if err := r.Add(&models.Bale{}); !errors.Is(err, domain.ErrInvalidBale) {
		t.Fatalf("expected ErrInvalidBale for zero id, got %v", err)
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	r := New("WH-1")
	if _, err := r.Get(uuid.New()); !errors.Is(err, domain.ErrBaleNotFound) {
		t.Fatalf("expected ErrBaleNotFound, got %v", err)
	}
}

func TestRegistry_OrderIsInsertionOrder(t *testing.T) {
	r := New("WH-1")
	a, b, c := bale(14, 1.5, 0), bale(0, 1.5, 0), bale(7, 1.5, 0)
	for _, x := range []*models.Bale{a, b, c} {
		_ = r.Add(x)
	}

	all := r.All()
	if all[0] != a || all[1] != b || all[2] != c {
		t.Fatal("All must preserve insertion order")
	}
	others := r.Others(b.ID)
	if len(others) != 2 || others[0] != a || others[1] != c {
		t.Fatal("Others must skip the given bale and keep order")
	}
}

func TestRegistry_AtCellIsBottomUp(t *testing.T) {
	r := New("WH-1")
	top, bottom, far := bale(0, 4.5, 0), bale(0, 1.5, 0), bale(21, 1.5, 0)
	_ = r.Add(top)
	_ = r.Add(far)
	_ = r.Add(bottom)

	got := r.AtCell(0.2, 0, 3.5)
	if len(got) != 2 {
		t.Fatalf("expected 2 bales at cell, got %d", len(got))
	}
	if got[0] != bottom || got[1] != top {
		t.Fatal("AtCell must order bales bottom-up")
	}
}

func TestRegistry_StacksAndVisible(t *testing.T) {
	r := New("WH-1")
	a, b, c := bale(0, 1.5, 0), bale(0, 4.5, 0), bale(7, 1.5, 0)
	c.Visible = false
	for _, x := range []*models.Bale{b, a, c} {
		_ = r.Add(x)
	}

	stacks := r.Stacks()
	if len(stacks) != 2 {
		t.Fatalf("expected 2 stacks, got %d", len(stacks))
	}
	s := stacks[models.NewStackKey(0, 0)]
	if len(s) != 2 || s[0] != a || s[1] != b {
		t.Fatal("stack must be ordered bottom-up")
	}
	if v := r.Visible(); len(v) != 2 {
		t.Fatalf("expected 2 visible bales, got %d", len(v))
	}
}

func TestRegistry_Handles(t *testing.T) {
	r := New("WH-1")
	b := bale(0, 1.5, 0)
	_ = r.Add(b)

	if err := r.BindHandle("mesh-17", b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := r.ResolveHandle("mesh-17")
	if err != nil || got != b {
		t.Fatalf("ResolveHandle: got (%v, %v)", got, err)
	}
	if _, err := r.ResolveHandle("ribbon-17"); !errors.Is(err, domain.ErrBaleNotFound) {
		t.Fatalf("expected ErrBaleNotFound for unbound handle, got %v", err)
	}
	if err := r.BindHandle("mesh-18", uuid.New()); !errors.Is(err, domain.ErrBaleNotFound) {
		t.Fatalf("expected ErrBaleNotFound binding unknown bale, got %v", err)
	}
}
