package entitlement

import (
	"testing"

	"github.com/planora-app/planora/internal/user"
)

func TestLimitsFor(t *testing.T) {
	cases := []struct {
		name string
		tier user.Tier
		want [4]string
	}{
		{"free", user.TierFree, [4]string{"1", "3", "10", "5"}},
		{"pro", user.TierPro, [4]string{"5", "25", "unlimited", "25"}},
		{"business", user.TierBusiness, [4]string{"unlimited", "unlimited", "unlimited", "unlimited"}},
		{"unknown tier falls back to free", user.Tier("enterprise"), [4]string{"1", "3", "10", "5"}},
		{"empty tier falls back to free", user.Tier(""), [4]string{"1", "3", "10", "5"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limits := LimitsFor(tc.tier)
			got := [4]string{
				limits.Programs.String(),
				limits.Projects.String(),
				limits.TasksPerProject.String(),
				limits.Contacts.String(),
			}
			if got != tc.want {
				t.Errorf("LimitsFor(%q) = %v, want %v", tc.tier, got, tc.want)
			}
		})
	}
}

func TestLimitAllows(t *testing.T) {
	t.Run("denies at the ceiling and stays denied", func(t *testing.T) {
		limit := LimitOf(3)
		for count := int64(0); count < 3; count++ {
			if !limit.Allows(count) {
				t.Errorf("Allows(%d) = false, want true", count)
			}
		}
		for count := int64(3); count < 6; count++ {
			if limit.Allows(count) {
				t.Errorf("Allows(%d) = true, want false", count)
			}
		}
	})

	t.Run("unlimited never denies", func(t *testing.T) {
		limit := Unlimited()
		if !limit.Allows(1 << 40) {
			t.Error("unlimited limit denied a creation")
		}
	})
}

func TestQuotaErrorMessage(t *testing.T) {
	err := &QuotaError{Resource: ResourcePrograms, Tier: user.TierFree, Limit: LimitOf(1)}
	want := "programs quota exceeded: free tier allows 1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
