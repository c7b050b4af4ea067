package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/baleyard/services/bale/domain/models"
)

func TestValidateBaleForInsertion(t *testing.T) {
	valid := func() *models.Bale {
		b := newBale(0, 2, 0, models.Horizontal)
		b.CodeNumber = "AB1-001"
		return b
	}

	tests := []struct {
		name    string
		mutate  func(b *models.Bale)
		wantErr bool
	}{
		{"valid bale", func(*models.Bale) {}, false},
		{"zero id", func(b *models.Bale) { b.ID = uuid.Nil }, true},
		{"blank warehouse", func(b *models.Bale) { b.WarehouseID = " " }, true},
		{"blank code", func(b *models.Bale) { b.CodeNumber = "" }, true},
		{"empty orientation", func(b *models.Bale) { b.Orientation = "" }, true},
		{"unknown orientation", func(b *models.Bale) { b.Orientation = "diagonal" }, true},
		{"between levels", func(b *models.Bale) { b.Position.Y = 3 }, true},
		{"below floor", func(b *models.Bale) { b.Position.Y = -1.5 }, true},
		{"above stack limit", func(b *models.Bale) { b.Position.Y = dims.RestingY(dims.MaxStackHeight) }, true},
		{"negative weight", func(b *models.Bale) { b.TotalWeight = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.mutate(b)
			err := ValidateBaleForInsertion(b, dims)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateBaleForInsertion error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}

	t.Run("nil bale", func(t *testing.T) {
		if err := ValidateBaleForInsertion(nil, dims); err == nil {
			t.Fatal("expected error for nil bale")
		}
	})
}

func TestValidateLayout(t *testing.T) {
	t.Run("valid layout", func(t *testing.T) {
		bales := append(stackOf(3, 0, 0), stackOf(2, 7, 0)...)
		if err := ValidateLayout(bales, dims); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("gap in stack", func(t *testing.T) {
		bales := []*models.Bale{newBale(0, 0, 0, models.Horizontal), newBale(0, 2, 0, models.Horizontal)}
		if err := ValidateLayout(bales, dims); err == nil {
			t.Fatal("expected gap error")
		}
	})

	t.Run("stack too high", func(t *testing.T) {
		if err := ValidateLayout(stackOf(dims.MaxStackHeight+1, 0, 0), dims); err == nil {
			t.Fatal("expected height error")
		}
	})

	t.Run("overlapping stacks", func(t *testing.T) {
		bales := []*models.Bale{newBale(0, 0, 0, models.Horizontal), newBale(4, 0, 0, models.Vertical)}
		if err := ValidateLayout(bales, dims); err == nil {
			t.Fatal("expected overlap error")
		}
	})
}
