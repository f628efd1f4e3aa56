package room

// Detail is the presentation metadata rendered next to a room: the icon
// key and the accent palette for badges and grid rows.
type Detail struct {
	Icon      string
	Accent    string
	BadgeBg   string
	BadgeText string
	RowBg     string
	Border    string
}

// DefaultDetail is the explicit fallback for rooms with no stored
// metadata. Callers supply it instead of relying on zero values.
func DefaultDetail() Detail {
	return Detail{
		Icon:      "console",
		Accent:    "#15306e",
		BadgeBg:   "rgba(21, 48, 110, 0.18)",
		BadgeText: "#112357",
		RowBg:     "rgba(21, 48, 110, 0.06)",
		Border:    "rgba(21, 48, 110, 0.28)",
	}
}

// WithDefaults fills any blank field from DefaultDetail.
func (d Detail) WithDefaults() Detail {
	def := DefaultDetail()
	if d.Icon == "" {
		d.Icon = def.Icon
	}
	if d.Accent == "" {
		d.Accent = def.Accent
	}
	if d.BadgeBg == "" {
		d.BadgeBg = def.BadgeBg
	}
	if d.BadgeText == "" {
		d.BadgeText = def.BadgeText
	}
	if d.RowBg == "" {
		d.RowBg = def.RowBg
	}
	if d.Border == "" {
		d.Border = def.Border
	}
	return d
}

// DetailFor looks a room name up in a detail index. The second return
// distinguishes "known room" from the caller-supplied default.
func DetailFor(index map[string]Detail, name string) (Detail, bool) {
	d, ok := index[name]
	if !ok {
		return DefaultDetail(), false
	}
	return d, true
}
