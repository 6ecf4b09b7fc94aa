package domain

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Tier marks a catalog entry as included or chargeable. The tier is an
// explicit field on every entry rather than a positional convention, so
// reordering a catalog can never silently change what is billed.
type Tier string

const (
	// TierFree entries are included with every site.
	TierFree Tier = "free"
	// TierVIP entries are chargeable upgrades.
	TierVIP Tier = "vip"
)

// Unit prices for chargeable upgrades, in VND.
const (
	PriceColorVIP       int64 = 100000
	PriceFlowerFrameVIP int64 = 150000
	PriceEffectVIP      int64 = 100000
	PriceMusicTrack     int64 = 50000
)

// FreeMusicTracks is the number of tracks included before per-track billing.
const FreeMusicTracks = 1

// CatalogEntry is one selectable theming option.
type CatalogEntry struct {
	ID    string
	Name  string
	Tier  Tier
	Price int64
}

// ColorCatalog lists the selectable palette gradients.
var ColorCatalog = []CatalogEntry{
	{ID: "blush", Name: "Hồng phấn", Tier: TierFree},
	{ID: "sage", Name: "Xanh ngọc", Tier: TierFree},
	{ID: "ivory", Name: "Trắng ngà", Tier: TierFree},
	{ID: "burgundy", Name: "Đỏ rượu vang", Tier: TierVIP, Price: PriceColorVIP},
	{ID: "midnight", Name: "Xanh đêm", Tier: TierVIP, Price: PriceColorVIP},
	{ID: "custom", Name: "Tự chọn màu", Tier: TierVIP, Price: PriceColorVIP},
}

// FlowerFrameCatalog lists the selectable floral frame overlays.
var FlowerFrameCatalog = []CatalogEntry{
	{ID: "none", Name: "Không khung", Tier: TierFree},
	{ID: "rose-corner", Name: "Hoa hồng góc", Tier: TierFree},
	{ID: "peony-arch", Name: "Mẫu đơn vòm", Tier: TierVIP, Price: PriceFlowerFrameVIP},
	{ID: "orchid-full", Name: "Lan viền kín", Tier: TierVIP, Price: PriceFlowerFrameVIP},
}

// EffectCatalog lists the selectable ambient screen effects.
var EffectCatalog = []CatalogEntry{
	{ID: "none", Name: "Không hiệu ứng", Tier: TierFree},
	{ID: "petals", Name: "Cánh hoa rơi", Tier: TierVIP, Price: PriceEffectVIP},
	{ID: "fireflies", Name: "Đom đóm", Tier: TierVIP, Price: PriceEffectVIP},
	{ID: "snow", Name: "Tuyết rơi", Tier: TierVIP, Price: PriceEffectVIP},
}

// VipFeature is one chargeable line of a pricing quote. Price is per unit,
// Count the billed quantity.
type VipFeature struct {
	Name  string
	Count int
	Price int64
}

// Total returns the line total for the feature.
func (f VipFeature) Total() int64 {
	if f.Count <= 0 {
		return 0
	}
	return f.Price * int64(f.Count)
}

// FindCatalogEntry resolves an entry by id within one catalog.
func FindCatalogEntry(catalog []CatalogEntry, id string) (CatalogEntry, bool) {
	id = strings.TrimSpace(id)
	for _, entry := range catalog {
		if entry.ID == id {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}

// ClassifySelection reports the tier and unit price for a selected entry.
// Unknown ids classify as free so a stale selection never bills.
func ClassifySelection(catalog []CatalogEntry, id string) (Tier, int64) {
	entry, ok := FindCatalogEntry(catalog, id)
	if !ok || entry.Tier != TierVIP {
		return TierFree, 0
	}
	return TierVIP, entry.Price
}

// ComputeTotal sums unit price times count over the supplied features.
// Negative counts are clamped to zero, so the sum is zero-preserving.
func ComputeTotal(features []VipFeature) int64 {
	var total int64
	for _, f := range features {
		total += f.Total()
	}
	return total
}

var vndPrinter = message.NewPrinter(language.Vietnamese)

// FormatVND renders an amount as Vietnamese-locale currency with no decimal
// places, e.g. 150000 becomes "150.000 ₫". Presentation only; quotes keep
// raw int64 amounts.
func FormatVND(amount int64) string {
	return vndPrinter.Sprintf("%v ₫", number.Decimal(amount))
}
