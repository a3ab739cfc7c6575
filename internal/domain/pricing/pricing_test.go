package pricing

import "testing"

func calc() Calculator {
	return NewCalculator(DefaultConfig())
}

func intPtr(v int) *int { return &v }

func TestDurationSurchargeTabulated(t *testing.T) {
	c := calc()
	cases := map[int]int{
		7:  180,
		14: 310,
		21: 450,
	}
	for days, want := range cases {
		if got := c.DurationSurcharge(days); got != want {
			t.Errorf("DurationSurcharge(%d) = %d, want %d", days, got, want)
		}
	}
}

func TestDurationSurchargeProrated(t *testing.T) {
	c := calc()
	// round(310/14 * days), half-up
	cases := map[int]int{
		6:  133, // 132.86
		8:  177, // 177.14
		12: 266, // 265.71
		13: 288, // 287.86
	}
	for days, want := range cases {
		if got := c.DurationSurcharge(days); got != want {
			t.Errorf("DurationSurcharge(%d) = %d, want %d", days, got, want)
		}
	}
}

func TestDurationSurchargeProratedAboveReference(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProrateDurations = []int{6, 15, 16}
	c := NewCalculator(cfg)
	// proration scales both ways around the 14-day tier
	cases := map[int]int{
		6:  133, // 132.86
		15: 332, // 332.14
		16: 354, // 354.29
	}
	for days, want := range cases {
		if got := c.DurationSurcharge(days); got != want {
			t.Errorf("DurationSurcharge(%d) = %d, want %d", days, got, want)
		}
	}
}

func TestDurationSurchargePolicyGap(t *testing.T) {
	c := calc()
	for _, days := range []int{0, 1, 5, 9, 15, 30} {
		if got := c.DurationSurcharge(days); got != 0 {
			t.Errorf("DurationSurcharge(%d) = %d, want 0", days, got)
		}
	}
}

func TestIsSurchargeCity(t *testing.T) {
	c := calc()
	cases := []struct {
		city string
		want bool
	}{
		{"paris", true},
		{"Paris", true},
		{"MARSEILLE", true},
		{" lyon ", true},
		{"", false},
		{"Sans transport", false},
		{"annecy", false},
		{"par", false}, // exact match, not substring
	}
	for _, tc := range cases {
		if got := c.IsSurchargeCity(tc.city); got != tc.want {
			t.Errorf("IsSurchargeCity(%q) = %v, want %v", tc.city, got, tc.want)
		}
	}
}

func TestCompute(t *testing.T) {
	c := calc()
	cases := []struct {
		name  string
		base  int
		days  int
		city  string
		promo bool
		want  int
	}{
		{"7 days with city and promo", 615, 7, "paris", true, 767},
		{"7 days with city no promo", 615, 7, "paris", false, 807},
		// 795*0.95 = 755.25: half-up keeps 755, pinned deliberately.
		{"7 days no city", 615, 7, "", true, 755},
		{"14 days lyon", 1095, 14, "lyon", true, 1346},
		{"12 days prorated rennes", 900, 12, "rennes", true, 1119},
		{"13 days prorated bordeaux", 1000, 13, "bordeaux", true, 1235},
		{"21 days grenoble", 1200, 21, "grenoble", true, 1579},
		{"unknown duration falls open", 500, 10, "nice", false, 500},
	}
	for _, tc := range cases {
		if got := c.Compute(tc.base, tc.days, tc.city, tc.promo); got != tc.want {
			t.Errorf("%s: Compute(%d,%d,%q,%v) = %d, want %d",
				tc.name, tc.base, tc.days, tc.city, tc.promo, got, tc.want)
		}
	}
}

func TestComputeMonotonicInBasePrice(t *testing.T) {
	c := calc()
	prev := -1
	for base := 0; base <= 2000; base += 7 {
		got := c.Compute(base, 7, "paris", true)
		if got < prev {
			t.Fatalf("Compute not monotonic: base %d gave %d after %d", base, got, prev)
		}
		prev = got
	}
}

func TestComposeBreakdownNoSession(t *testing.T) {
	c := calc()
	b := c.ComposeBreakdown(BreakdownParams{CityExtra: 220, Option: OptionZen, MinSessionPrice: intPtr(718)})
	if b.Total != nil {
		t.Errorf("Total = %v, want nil without a session price", *b.Total)
	}
	if !b.HasSelection {
		t.Error("HasSelection = false, want true with a city extra")
	}
	if b.MinPrice == nil || *b.MinPrice != 718 {
		t.Errorf("MinPrice = %v, want 718 passed through", b.MinPrice)
	}
}

func TestComposeBreakdownTotals(t *testing.T) {
	c := calc()
	b := c.ComposeBreakdown(BreakdownParams{
		SessionPrice:    intPtr(718),
		CityExtra:       220,
		Option:          OptionZen,
		MinSessionPrice: intPtr(718),
	})
	if b.Total == nil || *b.Total != 718+220+49 {
		t.Fatalf("Total = %v, want 987", b.Total)
	}
	if b.ExtraOption != 49 {
		t.Errorf("ExtraOption = %d, want 49", b.ExtraOption)
	}
	if !b.HasSelection {
		t.Error("HasSelection = false, want true")
	}
}

func TestComposeBreakdownEmptySelection(t *testing.T) {
	c := calc()
	b := c.ComposeBreakdown(BreakdownParams{})
	if b.HasSelection {
		t.Error("HasSelection = true for empty params")
	}
	if b.Total != nil || b.BaseSession != nil || b.MinPrice != nil {
		t.Error("empty params must degrade to nils, not values")
	}
	if b.ExtraTransport != 0 || b.ExtraOption != 0 {
		t.Error("empty params must degrade to zero extras")
	}
}

func TestOptionPrice(t *testing.T) {
	c := calc()
	if got := c.OptionPrice(OptionZen); got != 49 {
		t.Errorf("OptionPrice(ZEN) = %d, want 49", got)
	}
	if got := c.OptionPrice(OptionUltime); got != 79 {
		t.Errorf("OptionPrice(ULTIME) = %d, want 79", got)
	}
	if got := c.OptionPrice(OptionNone); got != 0 {
		t.Errorf("OptionPrice(none) = %d, want 0", got)
	}
}

func TestMinSessionPrice(t *testing.T) {
	if got := MinSessionPrice(nil); got != nil {
		t.Errorf("MinSessionPrice(nil) = %v, want nil", *got)
	}
	entries := []SessionPriceEntry{
		{BasePrice: intPtr(1155), PromoPrice: intPtr(1063)},
		{BasePrice: intPtr(718)},
		{}, // no usable amount
	}
	got := MinSessionPrice(entries)
	if got == nil || *got != 718 {
		t.Fatalf("MinSessionPrice = %v, want 718", got)
	}
	// promo wins over base within an entry
	entries = []SessionPriceEntry{{BasePrice: intPtr(800), PromoPrice: intPtr(640)}}
	got = MinSessionPrice(entries)
	if got == nil || *got != 640 {
		t.Fatalf("MinSessionPrice = %v, want 640 (promo over base)", got)
	}
}
