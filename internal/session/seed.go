package session

import (
	"time"

	"github.com/reposelink/reposelink/internal/models"
)

// seedCredentials returns the demo accounts the offline product ships with.
// Register appends to the list this seeds; nothing ever removes from it.
func seedCredentials() []credential {
	createdAt := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()

	return []credential{
		{
			user: models.User{
				ID:        "1",
				Email:     "demo@reposelink.com",
				FirstName: "John",
				LastName:  "Doe",
				Company:   "Memorial Gardens Funeral Home",
				Phone:     "+27 11 123 4567",
				Plan:      models.PlanProfessional,
				Avatar:    "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
				CreatedAt: createdAt,
			},
			password: "demo123",
		},
		{
			user: models.User{
				ID:        "2",
				Email:     "admin@reposelink.com",
				FirstName: "Sarah",
				LastName:  "Johnson",
				Company:   "Peaceful Rest Funeral Services",
				Phone:     "+27 21 987 6543",
				Plan:      models.PlanPremium,
				Avatar:    "/images/portrait.jpg",
				CreatedAt: createdAt,
			},
			password: "admin123",
		},
	}
}
