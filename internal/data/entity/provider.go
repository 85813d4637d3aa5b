package entity

type AccountStatus string

const (
	AccountStatusPending   AccountStatus = "pending"
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusRejected  AccountStatus = "rejected"
)

// Provider profile. ID equals the user ID. AccountStatus is an administrative
// flag beyond onboarding: a provider that finished onboarding still cannot
// take bookings until the account is active.
type Provider struct {
	Base
	BusinessName        string        `db:"business_name"`
	Bio                 *string       `db:"bio"`
	ServiceRadiusKm     int           `db:"service_radius_km"`
	OnboardingCompleted bool          `db:"onboarding_completed"`
	AccountStatus       AccountStatus `db:"account_status"`
}
