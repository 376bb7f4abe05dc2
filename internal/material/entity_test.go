package material

import "testing"

func TestTotalCost(t *testing.T) {
	cost := func(v float64) *float64 { return &v }

	cases := []struct {
		name string
		m    Material
		want float64
	}{
		{"quantity times unit cost", Material{Quantity: 2.5, CostPerUnit: cost(10.0)}, 25.0},
		{"no unit cost means zero", Material{Quantity: 4}, 0},
		{"zero quantity", Material{Quantity: 0, CostPerUnit: cost(99.0)}, 0},
		{"free material", Material{Quantity: 3, CostPerUnit: cost(0)}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.TotalCost(); got != tc.want {
				t.Errorf("TotalCost() = %v, want %v", got, tc.want)
			}
		})
	}
}
