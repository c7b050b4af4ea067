package services

// ribbonColors is the palette bale ribbons cycle through, one colour per lot prefix.
var ribbonColors = []string{
	"#ff0000", // red
	"#00ff00", // green
	"#0000ff", // blue
	"#ffff00", // yellow
	"#ff00ff", // magenta
	"#00ffff", // cyan
	"#ffa500", // orange
	"#800080", // purple
	"#008000", // dark green
	"#800000", // maroon
}

// RibbonPalette assigns ribbon colours to lot prefixes in order of first appearance.
// The zero value is ready to use.
type RibbonPalette struct {
	assigned map[string]string
	next     int
}

// ColorFor returns the colour for a lot prefix, assigning the next palette entry
// the first time a prefix is seen.
func (p *RibbonPalette) ColorFor(prefix string) string {
	if p.assigned == nil {
		p.assigned = make(map[string]string)
	}
	if c, ok := p.assigned[prefix]; ok {
		return c
	}
	c := ribbonColors[p.next%len(ribbonColors)]
	p.assigned[prefix] = c
	p.next++
	return c
}
