package services

import (
	"sort"

	"github.com/ghuser/baleyard/services/bale/domain/models"
)

// StackLayout is one stack of the floor layout, bales ordered bottom-up.
type StackLayout struct {
	Number int             `json:"number"`
	Key    models.StackKey `json:"key"`
	Bales  []*models.Bale  `json:"-"`
}

// BuildLayout groups bales by stack key. Stacks are ordered by key and numbered
// from 1; bales within a stack are ordered bottom-up. Visibility is ignored.
func BuildLayout(bales []*models.Bale) []StackLayout {
	byKey := make(map[models.StackKey][]*models.Bale)
	for _, b := range bales {
		k := b.Position.Key()
		byKey[k] = append(byKey[k], b)
	}

	out := make([]StackLayout, 0, len(byKey))
	for k, s := range byKey {
		sort.SliceStable(s, func(i, j int) bool { return s[i].Position.Y < s[j].Position.Y })
		out = append(out, StackLayout{Key: k, Bales: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Less(out[j].Key) })
	for i := range out {
		out[i].Number = i + 1
	}
	return out
}
