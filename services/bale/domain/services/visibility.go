package services

import (
	"github.com/google/uuid"

	"github.com/ghuser/baleyard/services/bale/domain/models"
)

// VehicleFilter matches bales delivered by one vehicle in one container.
type VehicleFilter struct {
	VehicleNumber   string `json:"vehicle_number"`
	ContainerNumber string `json:"container_number"`
}

// Criteria is the set of active visibility filters. A nil or empty field is inactive.
// A bale is visible iff it satisfies every active criterion.
type Criteria struct {
	Vehicle    *VehicleFilter   `json:"vehicle,omitempty"`
	CodePrefix string           `json:"code_prefix,omitempty"`
	Isolation  *models.StackKey `json:"isolation,omitempty"`
}

// Active returns the number of active criteria.
func (c Criteria) Active() int {
	n := 0
	if c.Vehicle != nil {
		n++
	}
	if c.CodePrefix != "" {
		n++
	}
	if c.Isolation != nil {
		n++
	}
	return n
}

// Matches reports whether b satisfies all active criteria.
func (c Criteria) Matches(b *models.Bale) bool {
	if c.Vehicle != nil &&
		(b.VehicleNumber != c.Vehicle.VehicleNumber || b.ContainerNumber != c.Vehicle.ContainerNumber) {
		return false
	}
	if c.CodePrefix != "" && !b.CodeNumber.HasPrefix(c.CodePrefix) {
		return false
	}
	if c.Isolation != nil && b.Position.Key() != *c.Isolation {
		return false
	}
	return true
}

// ToggleIsolation isolates the stack at k, or clears isolation when k is already isolated.
func (c Criteria) ToggleIsolation(k models.StackKey) Criteria {
	if c.Isolation != nil && *c.Isolation == k {
		c.Isolation = nil
		return c
	}
	c.Isolation = &k
	return c
}

// ApplyVisibility recomputes the Visible flag of every bale and returns the IDs of
// the visible ones in input order.
func ApplyVisibility(bales []*models.Bale, c Criteria) []uuid.UUID {
	visible := make([]uuid.UUID, 0, len(bales))
	for _, b := range bales {
		b.Visible = c.Matches(b)
		if b.Visible {
			visible = append(visible, b.ID)
		}
	}
	return visible
}
