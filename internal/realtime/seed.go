package realtime

import (
	"time"

	"github.com/google/uuid"

	"github.com/reposelink/reposelink/internal/models"
)

// seedData builds the fixed demo dataset installed by Initialize, scoped to
// ownerID. Three clients in different lifecycle states and four payments
// against them, mirroring the data the sales demo walks through.
func seedData(ownerID string) ([]models.Client, []models.Payment) {
	sarahID := uuid.New().String()
	michaelID := uuid.New().String()
	emmaID := uuid.New().String()

	clients := []models.Client{
		{
			ID:          sarahID,
			FullName:    "Sarah Johnson",
			Email:       "sarah.johnson@email.com",
			Phone:       "+27 11 234 5678",
			Address:     "123 Oak Street, Johannesburg",
			DateOfBirth: "1965-03-15",
			DateOfDeath: "2024-01-10",
			ServiceType: models.ServiceTraditional,
			ServiceDate: "2024-01-20",
			ServiceTime: "10:00",
			Status:      models.StatusScheduled,
			TotalAmount: 8500,
			PaidAmount:  5000,
			Notes:       "Family prefers morning service. Special music requests.",
			CreatedAt:   seedTime(2024, time.January, 15, 10, 0),
			UpdatedAt:   seedTime(2024, time.January, 15, 10, 0),
			OwnerID:     ownerID,
		},
		{
			ID:          michaelID,
			FullName:    "Michael Smith",
			Email:       "michael.smith@email.com",
			Phone:       "+27 21 345 6789",
			Address:     "456 Pine Avenue, Cape Town",
			DateOfBirth: "1978-07-22",
			DateOfDeath: "2024-01-08",
			ServiceType: models.ServiceCremation,
			ServiceDate: "2024-01-22",
			ServiceTime: "14:00",
			Status:      models.StatusCompleted,
			TotalAmount: 5200,
			PaidAmount:  5200,
			Notes:       "Cremation completed. Ashes collected by family.",
			CreatedAt:   seedTime(2024, time.January, 12, 14, 30),
			UpdatedAt:   seedTime(2024, time.January, 22, 16, 0),
			OwnerID:     ownerID,
		},
		{
			ID:          emmaID,
			FullName:    "Emma Davis",
			Email:       "emma.davis@email.com",
			Phone:       "+27 31 456 7890",
			Address:     "789 Maple Road, Durban",
			DateOfBirth: "1955-11-08",
			DateOfDeath: "2024-01-05",
			ServiceType: models.ServiceMemorial,
			ServiceDate: "2024-01-25",
			ServiceTime: "11:00",
			Status:      models.StatusPlanning,
			TotalAmount: 3800,
			PaidAmount:  1000,
			Notes:       "Memorial service only. Family organizing venue.",
			CreatedAt:   seedTime(2024, time.January, 10, 9, 15),
			UpdatedAt:   seedTime(2024, time.January, 10, 9, 15),
			OwnerID:     ownerID,
		},
	}

	payments := []models.Payment{
		{
			ID:        uuid.New().String(),
			ClientID:  sarahID,
			Amount:    3000,
			Method:    models.MethodEFT,
			Status:    models.PaymentCompleted,
			Reference: "EFT-001-2024",
			CreatedAt: seedTime(2024, time.January, 15, 12, 0),
			OwnerID:   ownerID,
		},
		{
			ID:        uuid.New().String(),
			ClientID:  sarahID,
			Amount:    2000,
			Method:    models.MethodCard,
			Status:    models.PaymentCompleted,
			Reference: "CARD-002-2024",
			CreatedAt: seedTime(2024, time.January, 18, 10, 30),
			OwnerID:   ownerID,
		},
		{
			ID:        uuid.New().String(),
			ClientID:  michaelID,
			Amount:    5200,
			Method:    models.MethodPayPal,
			Status:    models.PaymentCompleted,
			Reference: "PP-003-2024",
			CreatedAt: seedTime(2024, time.January, 12, 16, 45),
			OwnerID:   ownerID,
		},
		{
			ID:        uuid.New().String(),
			ClientID:  emmaID,
			Amount:    1000,
			Method:    models.MethodCash,
			Status:    models.PaymentCompleted,
			Reference: "CASH-004-2024",
			CreatedAt: seedTime(2024, time.January, 10, 11, 20),
			OwnerID:   ownerID,
		},
	}

	return clients, payments
}

func seedTime(year int, month time.Month, day, hour, min int) int64 {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC).Unix()
}
