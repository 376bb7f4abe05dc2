// Package entitlement maps subscription tiers to resource quotas and
// decides whether a creation request is allowed given current usage.
package entitlement

import (
	"fmt"

	"github.com/planora-app/planora/internal/user"
)

type Resource string

const (
	ResourcePrograms Resource = "programs"
	ResourceProjects Resource = "projects"
	ResourceTasks    Resource = "tasks"
	ResourceContacts Resource = "contacts"
)

// Limit is a quota ceiling. Unlimited is a distinct state, never a large
// finite number, so it can never lose a numeric comparison by accident.
type Limit struct {
	max       int64
	unlimited bool
}

func LimitOf(n int64) Limit {
	return Limit{max: n}
}

func Unlimited() Limit {
	return Limit{unlimited: true}
}

func (l Limit) IsUnlimited() bool {
	return l.unlimited
}

// Allows reports whether one more resource may be created on top of the
// current count.
func (l Limit) Allows(current int64) bool {
	return l.unlimited || current < l.max
}

func (l Limit) Value() int64 {
	return l.max
}

func (l Limit) String() string {
	if l.unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", l.max)
}

type Limits struct {
	Programs        Limit
	Projects        Limit
	TasksPerProject Limit
	Contacts        Limit
}

var tierLimits = map[user.Tier]Limits{
	user.TierFree: {
		Programs:        LimitOf(1),
		Projects:        LimitOf(3),
		TasksPerProject: LimitOf(10),
		Contacts:        LimitOf(5),
	},
	user.TierPro: {
		Programs:        LimitOf(5),
		Projects:        LimitOf(25),
		TasksPerProject: Unlimited(),
		Contacts:        LimitOf(25),
	},
	user.TierBusiness: {
		Programs:        Unlimited(),
		Projects:        Unlimited(),
		TasksPerProject: Unlimited(),
		Contacts:        Unlimited(),
	},
}

// LimitsFor returns the quota table for a tier. Unknown tiers get the free
// limits.
func LimitsFor(tier user.Tier) Limits {
	if limits, ok := tierLimits[tier]; ok {
		return limits
	}
	return tierLimits[user.TierFree]
}

func (l Limits) For(resource Resource) Limit {
	switch resource {
	case ResourcePrograms:
		return l.Programs
	case ResourceProjects:
		return l.Projects
	case ResourceTasks:
		return l.TasksPerProject
	case ResourceContacts:
		return l.Contacts
	}
	return LimitOf(0)
}

// QuotaError identifies which resource and tier caused a denied creation.
type QuotaError struct {
	Resource Resource
	Tier     user.Tier
	Limit    Limit
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s quota exceeded: %s tier allows %s", e.Resource, e.Tier, e.Limit)
}
