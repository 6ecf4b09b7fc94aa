package domain

import "strings"

// Section identifiers are the join key between registry defaults, the
// persisted order/enabled list on a wedding document, and render dispatch.
const (
	SectionHero       = "hero"
	SectionVideo      = "video"
	SectionAlbum      = "album"
	SectionStory      = "story"
	SectionBrideGroom = "bridegroom"
	SectionEvents     = "events"
	SectionWishes     = "wishes"
	SectionGift       = "gift"
	SectionMusic      = "music"
	SectionRSVP       = "rsvp"
)

// Section is one orderable block of a wedding microsite.
type Section struct {
	ID      string
	Name    string
	Enabled bool
	Order   int
	Icon    string
}

type sectionDefault struct {
	id   string
	name string
	icon string
}

// sectionRegistry is the canonical ordered catalog of orderable sections.
// Music and RSVP are customizable but not part of the orderable block list:
// music plays site-wide and the RSVP form is embedded by the events block.
var sectionRegistry = []sectionDefault{
	{id: SectionHero, name: "Trang chính", icon: "heart"},
	{id: SectionVideo, name: "Video cưới", icon: "film"},
	{id: SectionAlbum, name: "Album ảnh", icon: "images"},
	{id: SectionStory, name: "Chuyện tình yêu", icon: "book-heart"},
	{id: SectionBrideGroom, name: "Cô dâu & Chú rể", icon: "users"},
	{id: SectionEvents, name: "Sự kiện", icon: "calendar"},
	{id: SectionWishes, name: "Sổ lưu bút", icon: "message-circle"},
	{id: SectionGift, name: "Mừng cưới", icon: "gift"},
}

// SectionCount is the number of orderable sections in the registry.
func SectionCount() int { return len(sectionRegistry) }

// SectionIcon resolves the presentation icon key for a section id. Every
// consumer goes through this lookup instead of redeclaring an id→icon map.
func SectionIcon(id string) string {
	for _, def := range sectionRegistry {
		if def.id == id {
			return def.icon
		}
	}
	return ""
}

// SectionName resolves the default display label for a section id.
func SectionName(id string) string {
	for _, def := range sectionRegistry {
		if def.id == id {
			return def.name
		}
	}
	return ""
}

// KnownSectionID reports whether the id belongs to the orderable registry.
func KnownSectionID(id string) bool {
	for _, def := range sectionRegistry {
		if def.id == id {
			return true
		}
	}
	return false
}

// CustomizableSectionID reports whether the id accepts customizer patches.
// Music and RSVP are editable even though they are not orderable blocks.
func CustomizableSectionID(id string) bool {
	switch id {
	case SectionMusic, SectionRSVP:
		return true
	}
	return KnownSectionID(id)
}

// InitializeSections returns the ordered section list for a wedding. A nil or
// empty input seeds from registry defaults, all enabled, in canonical order.
// A persisted list is decorated with registry names and icons (presentation
// metadata is never stored), missing registry entries are appended and
// unknown ids dropped, so the result always covers each known id exactly
// once with a contiguous 0-based order.
func InitializeSections(existing []Section) []Section {
	if len(existing) == 0 {
		out := make([]Section, 0, len(sectionRegistry))
		for i, def := range sectionRegistry {
			out = append(out, Section{
				ID:      def.id,
				Name:    def.name,
				Enabled: true,
				Order:   i,
				Icon:    def.icon,
			})
		}
		return out
	}

	seen := make(map[string]struct{}, len(sectionRegistry))
	out := make([]Section, 0, len(sectionRegistry))
	for _, sec := range existing {
		id := strings.TrimSpace(sec.ID)
		if !KnownSectionID(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		sec.ID = id
		sec.Name = SectionName(id)
		sec.Icon = SectionIcon(id)
		out = append(out, sec)
	}
	for _, def := range sectionRegistry {
		if _, ok := seen[def.id]; ok {
			continue
		}
		out = append(out, Section{
			ID:      def.id,
			Name:    def.name,
			Enabled: true,
			Icon:    def.icon,
		})
	}
	for i := range out {
		out[i].Order = i
	}
	return out
}

// ReorderSections removes the element at from and reinserts it at to (list
// semantics, not a swap), then reassigns order = index for every element.
// Out-of-range indices return the input unchanged; the caller maps a drop
// outside any valid target to that no-op.
func ReorderSections(sections []Section, from, to int) []Section {
	if from < 0 || from >= len(sections) || to < 0 || to >= len(sections) {
		return sections
	}
	out := make([]Section, 0, len(sections))
	out = append(out, sections...)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	rest := append(make([]Section, 0, len(sections)), out[:to]...)
	rest = append(rest, moved)
	rest = append(rest, out[to:]...)
	for i := range rest {
		rest[i].Order = i
	}
	return rest
}

// ToggleSection flips the enabled flag for the matching section and leaves
// every other field, including order, untouched. An unknown id is a silent
// no-op: interactive reordering favours liveness over strictness.
func ToggleSection(sections []Section, id string) []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	for i := range out {
		if out[i].ID == id {
			out[i].Enabled = !out[i].Enabled
			break
		}
	}
	return out
}
