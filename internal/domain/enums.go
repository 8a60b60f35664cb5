package domain

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type SubscriptionStatus string

const (
	SubscriptionTrial   SubscriptionStatus = "trial"
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionPro     SubscriptionStatus = "pro"
	SubscriptionElite   SubscriptionStatus = "elite"
	SubscriptionExpired SubscriptionStatus = "expired"
)

// ValidSubscriptionStatuses is the canonical set of accepted tier strings.
var ValidSubscriptionStatuses = map[string]bool{
	"trial": true, "active": true, "pro": true, "elite": true, "expired": true,
}

// ValidRoles is the canonical set of accepted role strings.
var ValidRoles = map[string]bool{
	"admin": true, "user": true,
}
