package services

import (
	"sort"

	"github.com/google/uuid"

	"github.com/ghuser/baleyard/services/bale/domain/models"
)

// StackLabel is the on-screen summary of one stack's visible bales.
type StackLabel struct {
	Key                models.StackKey `json:"key"`
	Count              int             `json:"count"`
	TopBaleID          uuid.UUID       `json:"top_bale_id"`
	TopContainerNumber string          `json:"top_container_number"`
	Anchor             models.Position `json:"anchor"`
}

// BuildStackLabels derives one label per stack key from the visible bales only.
// The anchor is the position of the highest visible bale. Labels are ordered by key.
func BuildStackLabels(visible []*models.Bale) []StackLabel {
	byKey := make(map[models.StackKey]*StackLabel)
	for _, b := range visible {
		k := b.Position.Key()
		l, ok := byKey[k]
		if !ok {
			byKey[k] = &StackLabel{
				Key:                k,
				Count:              1,
				TopBaleID:          b.ID,
				TopContainerNumber: b.ContainerNumber,
				Anchor:             b.Position,
			}
			continue
		}
		l.Count++
		if b.Position.Y > l.Anchor.Y {
			l.TopBaleID = b.ID
			l.TopContainerNumber = b.ContainerNumber
			l.Anchor = b.Position
		}
	}

	out := make([]StackLabel, 0, len(byKey))
	for _, l := range byKey {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Less(out[j].Key) })
	return out
}

// DiffLabels compares two label sets. changed holds labels that are new or differ;
// removed holds keys present in prev with no label in next.
func DiffLabels(prev, next []StackLabel) (changed []StackLabel, removed []models.StackKey) {
	old := make(map[models.StackKey]StackLabel, len(prev))
	for _, l := range prev {
		old[l.Key] = l
	}
	for _, l := range next {
		if p, ok := old[l.Key]; !ok || p != l {
			changed = append(changed, l)
		}
		delete(old, l.Key)
	}
	for k := range old {
		removed = append(removed, k)
	}
	sort.Slice(removed, func(i, j int) bool { return removed[i].Less(removed[j]) })
	return changed, removed
}
