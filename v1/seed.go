package v1

import (
	"fmt"
	"log/slog"

	"github.com/amitjangid17/SVJSS/v1/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// SeedV1Data loads the sample directory into empty tables. It is a no-op
// when members already exist, so repeated startups never duplicate data.
func SeedV1Data(db *gorm.DB) error {
	var memberCount int64
	if err := db.Model(&models.Member{}).Count(&memberCount).Error; err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}
	if memberCount > 0 {
		slog.Info("Seed skipped, members already present", "count", memberCount)
		return nil
	}

	members := []models.Member{
		{
			MemberID:    "mem_" + uuid.New().String(),
			MemberCode:  "JS-2020-001",
			MemberType:  models.MemberTypeLife,
			Name:        "Rajesh Jangid",
			Email:       "rajesh.jangid@email.com",
			Phone:       "+91 98765 43210",
			City:        "Mumbai",
			State:       "Maharashtra",
			Country:     "India",
			Occupation:  "Software Engineer",
			DateOfBirth: "1985-03-15",
			Status:      models.MemberStatusActive,
			JoinDate:    "2020-01-15",
			Bio:         strPtr("Passionate about technology and community service. Working in fintech sector."),
			SocialLinks: &models.SocialLinks{
				LinkedIn: strPtr("https://linkedin.com/in/rajeshjangid"),
				Facebook: strPtr("https://facebook.com/rajesh.jangid"),
			},
		},
		{
			MemberID:    "mem_" + uuid.New().String(),
			MemberCode:  "JS-2019-001",
			MemberType:  models.MemberTypeRegular,
			Name:        "Priya Jangid",
			Email:       "priya.jangid@email.com",
			Phone:       "+91 87654 32109",
			City:        "Delhi",
			State:       "Delhi",
			Country:     "India",
			Occupation:  "Doctor",
			DateOfBirth: "1988-07-22",
			Status:      models.MemberStatusActive,
			JoinDate:    "2019-06-10",
			Bio:         strPtr("Medical practitioner specializing in pediatrics. Active in community health initiatives."),
		},
		{
			MemberID:    "mem_" + uuid.New().String(),
			MemberCode:  "JS-2021-001",
			MemberType:  models.MemberTypeRegular,
			Name:        "Amit Jangid",
			Email:       "amit.jangid@email.com",
			Phone:       "+1 555 123 4567",
			City:        "San Francisco",
			State:       "California",
			Country:     "USA",
			Occupation:  "Business Analyst",
			DateOfBirth: "1990-11-08",
			Status:      models.MemberStatusActive,
			JoinDate:    "2021-03-20",
			Bio:         strPtr("Working in Silicon Valley, passionate about connecting Indian diaspora."),
		},
		{
			MemberID:    "mem_" + uuid.New().String(),
			MemberCode:  "JS-2018-001",
			MemberType:  models.MemberTypeSenior,
			Name:        "Sunita Jangid",
			Email:       "sunita.jangid@email.com",
			Phone:       "+91 98765 12345",
			City:        "Jaipur",
			State:       "Rajasthan",
			Country:     "India",
			Occupation:  "Teacher",
			DateOfBirth: "1982-12-03",
			Status:      models.MemberStatusActive,
			JoinDate:    "2018-09-12",
			Bio:         strPtr("Dedicated educator working to preserve cultural values in young minds."),
		},
		{
			MemberID:    "mem_" + uuid.New().String(),
			MemberCode:  "JS-2020-002",
			MemberType:  models.MemberTypeLife,
			Name:        "Vikram Jangid",
			Email:       "vikram.jangid@email.com",
			Phone:       "+44 20 7946 0958",
			City:        "London",
			State:       "England",
			Country:     "UK",
			Occupation:  "Financial Consultant",
			DateOfBirth: "1987-04-18",
			Status:      models.MemberStatusActive,
			JoinDate:    "2020-11-05",
			Bio:         strPtr("Working in London financial district, organizing cultural events for Indian community."),
		},
	}

	requests := []models.MembershipRequest{
		{
			RequestID:   "req_" + uuid.New().String(),
			Name:        "Neha Jangid",
			Email:       "neha.jangid@email.com",
			Phone:       "+91 99999 88888",
			City:        "Pune",
			State:       "Maharashtra",
			Country:     "India",
			Occupation:  "Marketing Manager",
			DateOfBirth: "1992-06-15",
			RequestDate: "2024-06-20",
			Status:      models.StatusPending,
			Message:     strPtr("Looking forward to connecting with the community and contributing to cultural activities."),
		},
		{
			RequestID:   "req_" + uuid.New().String(),
			Name:        "Rohit Jangid",
			Email:       "rohit.jangid@email.com",
			Phone:       "+1 617 555 0123",
			City:        "Boston",
			State:       "Massachusetts",
			Country:     "USA",
			Occupation:  "Research Scientist",
			DateOfBirth: "1989-09-30",
			RequestDate: "2024-06-22",
			Status:      models.StatusPending,
			Message:     strPtr("Recently moved to Boston and eager to connect with fellow community members."),
		},
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to start transaction: %w", tx.Error)
	}

	if err := tx.Create(&members).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to seed members: %w", err)
	}
	if err := tx.Create(&requests).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to seed membership requests: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	slog.Info("Seed data loaded", "members", len(members), "membershipRequests", len(requests))
	return nil
}
