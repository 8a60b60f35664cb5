package domain

import "time"

// TrialDays is the length of the free trial granted on sign-up.
const TrialDays = 60

// trialEpochFloorMs guards against a known bad default where trial_ends_at
// lands near the Unix epoch. Anything below this is treated as unset.
const trialEpochFloorMs = 100_000_000_000 // 1973-03-03

// UserProfile is the per-user account record. ID matches the auth identity.
// Self fields are mutated only by the owning user; role, tier and approval
// only by an admin.
type UserProfile struct {
	ID                 string             `json:"id"`
	Email              string             `json:"email"`
	Role               Role               `json:"role"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	TrialEndsAt        time.Time          `json:"trial_ends_at"`
	IsApproved         bool               `json:"is_approved"`
	PasswordHash       string             `json:"password,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *UserProfile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// EffectiveTrialEnd returns the trial expiry to display. A stored value near
// the epoch is a known bad default; it is masked with now+TrialDays rather
// than corrected at the source.
func (p *UserProfile) EffectiveTrialEnd(now time.Time) time.Time {
	if p.TrialEndsAt.UnixMilli() < trialEpochFloorMs {
		return now.AddDate(0, 0, TrialDays)
	}
	return p.TrialEndsAt
}

// TrialDaysLeft returns the whole days remaining on the trial, never negative.
func (p *UserProfile) TrialDaysLeft(now time.Time) int {
	left := int(p.EffectiveTrialEnd(now).Sub(now).Hours() / 24)
	if left < 0 {
		return 0
	}
	return left
}
