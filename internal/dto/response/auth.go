package response

import (
	"time"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
)

type AuthResponse struct {
	UserID    string      `json:"user_id"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Email     string      `json:"email"`
	Role      entity.Role `json:"role"`
	// Where the client must go next before using protected features
	OnboardingRedirect string `json:"onboarding_redirect,omitempty"`
}

func AuthToResponse(user *entity.User, token string, expiresAt time.Time, onboardingRedirect string) AuthResponse {
	return AuthResponse{
		UserID:             user.ID.String(),
		Token:              token,
		ExpiresAt:          expiresAt,
		Email:              user.Email,
		Role:               user.Role,
		OnboardingRedirect: onboardingRedirect,
	}
}
