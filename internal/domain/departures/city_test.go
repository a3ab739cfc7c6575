package departures

import "testing"

func TestFilterStandard(t *testing.T) {
	cities := []City{
		{Name: "albertville", ExtraEur: 170},
		{Name: "Paris - Gare de Lyon", ExtraEur: 12},
		{Name: "sans transport", ExtraEur: 0},
		{Name: "LYON Part-Dieu", ExtraEur: 12},
		{Name: "annecy", ExtraEur: 170},
		{Name: "  ", ExtraEur: 5},
	}
	got := FilterStandard(cities, StandardCities())
	if len(got) != 3 {
		t.Fatalf("FilterStandard kept %d cities, want 3: %+v", len(got), got)
	}
	// the synthetic entry is normalized to its canonical casing and zero cost
	if got[1].Name != "Sans transport" || got[1].ExtraEur != 0 {
		t.Errorf("sans transport entry not normalized: %+v", got[1])
	}
}

func TestSortSansTransportFirst(t *testing.T) {
	cities := []City{
		{Name: "Lyon", ExtraEur: 12},
		{Name: "Bordeaux", ExtraEur: 12},
		{Name: "Sans transport", ExtraEur: 0},
		{Name: "grenoble", ExtraEur: 12},
	}
	Sort(cities)
	if !cities[0].IsSansTransport() {
		t.Fatalf("first city = %q, want Sans transport", cities[0].Name)
	}
	if cities[1].Name != "Bordeaux" || cities[2].Name != "grenoble" || cities[3].Name != "Lyon" {
		t.Errorf("wrong ordering after Sans transport: %+v", cities)
	}
}

func TestExtra(t *testing.T) {
	cities := []City{
		{Name: "Sans transport", ExtraEur: 0},
		{Name: "Paris", ExtraEur: 12},
		{Name: "albertville", ExtraEur: 170},
	}
	cases := []struct {
		name string
		want int
	}{
		{"Paris", 12},
		{"paris", 12},
		{"Albertville", 170},
		{"Sans transport", 0},
		{"", 0},
		{"nantes", 0}, // unknown city degrades to zero
	}
	for _, tc := range cases {
		if got := Extra(cities, tc.name); got != tc.want {
			t.Errorf("Extra(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}
