package entity

// Customer profile, created during onboarding. ID equals the user ID.
type Customer struct {
	Base
	FullName            string  `db:"full_name"`
	Phone               *string `db:"phone"`
	DefaultAddress      *string `db:"default_address"`
	OnboardingCompleted bool    `db:"onboarding_completed"`
}
