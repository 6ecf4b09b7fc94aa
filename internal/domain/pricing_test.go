package domain

import "testing"

func TestClassifySelection(t *testing.T) {
	tests := []struct {
		name      string
		catalog   []CatalogEntry
		id        string
		wantTier  Tier
		wantPrice int64
	}{
		{name: "free color", catalog: ColorCatalog, id: "blush", wantTier: TierFree},
		{name: "vip color", catalog: ColorCatalog, id: "midnight", wantTier: TierVIP, wantPrice: PriceColorVIP},
		{name: "custom gradient is vip", catalog: ColorCatalog, id: "custom", wantTier: TierVIP, wantPrice: PriceColorVIP},
		{name: "vip frame", catalog: FlowerFrameCatalog, id: "peony-arch", wantTier: TierVIP, wantPrice: PriceFlowerFrameVIP},
		{name: "no frame", catalog: FlowerFrameCatalog, id: "none", wantTier: TierFree},
		{name: "vip effect", catalog: EffectCatalog, id: "petals", wantTier: TierVIP, wantPrice: PriceEffectVIP},
		{name: "unknown id bills nothing", catalog: EffectCatalog, id: "lasers", wantTier: TierFree},
		{name: "padded id", catalog: ColorCatalog, id: " burgundy ", wantTier: TierVIP, wantPrice: PriceColorVIP},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tier, price := ClassifySelection(tc.catalog, tc.id)
			if tier != tc.wantTier {
				t.Fatalf("expected tier %q got %q", tc.wantTier, tier)
			}
			if price != tc.wantPrice {
				t.Fatalf("expected price %d got %d", tc.wantPrice, price)
			}
		})
	}
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name     string
		features []VipFeature
		want     int64
	}{
		{name: "empty", features: nil, want: 0},
		{
			name:     "zero count contributes nothing",
			features: []VipFeature{{Name: "frame", Price: 150000, Count: 0}},
			want:     0,
		},
		{
			name: "linear sum",
			features: []VipFeature{
				{Name: "color", Price: 100000, Count: 2},
				{Name: "effect", Price: 50000, Count: 1},
			},
			want: 250000,
		},
		{
			name:     "negative count clamped",
			features: []VipFeature{{Name: "music", Price: 50000, Count: -3}},
			want:     0,
		},
		{
			name: "extra music tracks",
			features: []VipFeature{
				{Name: "music", Price: PriceMusicTrack, Count: 2},
			},
			want: 100000,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeTotal(tc.features); got != tc.want {
				t.Fatalf("ComputeTotal = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFormatVND(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{amount: 0, want: "0 ₫"},
		{amount: 50000, want: "50.000 ₫"},
		{amount: 150000, want: "150.000 ₫"},
		{amount: 1250000, want: "1.250.000 ₫"},
	}

	for _, tc := range tests {
		if got := FormatVND(tc.amount); got != tc.want {
			t.Fatalf("FormatVND(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
