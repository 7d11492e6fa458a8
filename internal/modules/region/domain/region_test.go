package domain_test

import (
	"testing"

	"senscal/internal/modules/region/domain"
)

func TestDefaultsCoverGrid(t *testing.T) {
	t.Parallel()
	regions := domain.Defaults()
	if len(regions) != 9 {
		t.Fatalf("expected 9 built-in regions, got %d", len(regions))
	}
	seen := map[string]bool{}
	for _, region := range regions {
		if err := region.Validate(); err != nil {
			t.Fatalf("built-in region %s invalid: %v", region.ID, err)
		}
		if seen[region.ID] {
			t.Fatalf("duplicate region id %s", region.ID)
		}
		seen[region.ID] = true
	}
	if !seen["center"] {
		t.Fatal("expected a center region")
	}
}

func TestRegionValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		region  domain.Region
		wantErr bool
	}{
		{name: "valid", region: domain.Region{ID: "r1", X: 10, Y: 10}},
		{name: "missing id", region: domain.Region{X: 10, Y: 10}, wantErr: true},
		{name: "x below grid", region: domain.Region{ID: "r1", X: -1, Y: 10}, wantErr: true},
		{name: "x past grid", region: domain.Region{ID: "r1", X: 64, Y: 10}, wantErr: true},
		{name: "y past grid", region: domain.Region{ID: "r1", X: 10, Y: 64}, wantErr: true},
		{name: "edge cell", region: domain.Region{ID: "r1", X: 63, Y: 63}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.region.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
