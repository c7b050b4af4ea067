package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/ghuser/baleyard/services/bale/domain/models"
)

// ValidateBaleForInsertion checks a bale before it is seeded into the store.
//
// Business rules:
//   - ID and warehouse must be set
//   - Code number must not be blank
//   - Orientation must be Horizontal or Vertical
//   - Y must sit exactly on a level below the stack limit
//   - Weight and bale count must not be negative
func ValidateBaleForInsertion(b *models.Bale, d models.Dimensions) error {
	if b == nil {
		return fmt.Errorf("bale cannot be nil")
	}
	if b.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}
	if strings.TrimSpace(b.WarehouseID) == "" {
		return fmt.Errorf("warehouse_id must be set")
	}
	if strings.TrimSpace(b.CodeNumber.String()) == "" {
		return fmt.Errorf("code number must not be blank")
	}
	if _, err := models.ParseOrientation(b.Orientation.String()); err != nil || b.Orientation == "" {
		return fmt.Errorf("orientation must be %q or %q", models.Horizontal, models.Vertical)
	}
	level := d.LevelOf(b.Position.Y)
	if level < 0 || level >= d.MaxStackHeight {
		return fmt.Errorf("level %d outside 0..%d", level, d.MaxStackHeight-1)
	}
	if math.Abs(d.RestingY(level)-b.Position.Y) > 1e-6 {
		return fmt.Errorf("y=%v is not a resting height", b.Position.Y)
	}
	if b.TotalWeight < 0 || b.BaleCount < 0 {
		return fmt.Errorf("weight and bale count must not be negative")
	}
	return nil
}

// ValidateLayout checks the stacking invariants over a whole warehouse:
// contiguous levels, stack height limit, and no footprint overlap between stacks.
// All violations are joined into one error.
func ValidateLayout(bales []*models.Bale, d models.Dimensions) error {
	var errs []error

	stacks := make(map[models.StackKey][]float64)
	for _, b := range bales {
		k := b.Position.Key()
		stacks[k] = append(stacks[k], b.Position.Y)
	}
	for k, ys := range stacks {
		if len(ys) > d.MaxStackHeight {
			errs = append(errs, fmt.Errorf("stack %s holds %d bales, limit %d", k, len(ys), d.MaxStackHeight))
		}
		seen := make(map[int]bool, len(ys))
		for _, y := range ys {
			seen[d.LevelOf(y)] = true
		}
		for level := 0; level < len(ys); level++ {
			if !seen[level] {
				errs = append(errs, fmt.Errorf("stack %s has a gap at level %d", k, level))
				break
			}
		}
	}

	for i, a := range bales {
		for _, b := range bales[i+1:] {
			if a.Position.Key() == b.Position.Key() {
				continue
			}
			if RectOf(a, d).Overlaps(RectOf(b, d)) {
				errs = append(errs, fmt.Errorf("bales %s and %s overlap", a.ID, b.ID))
			}
		}
	}

	return errors.Join(errs...)
}
