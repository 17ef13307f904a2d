package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/amitjangid17/SVJSS/v1/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func newMemberService(t *testing.T) (*MemberService, *AuditService, *gorm.DB) {
	db := SetupSQLiteTestDB(t)
	audit := NewAuditService(db)
	return NewMemberService(db, audit), audit, db
}

func createMemberRequest(name, email string) *models.CreateMemberRequest {
	return &models.CreateMemberRequest{
		Name:        name,
		Email:       email,
		Phone:       "+91 98765 43210",
		City:        "Mumbai",
		State:       "Maharashtra",
		Country:     "India",
		Occupation:  "Engineer",
		DateOfBirth: "1985-03-15",
	}
}

func TestMemberService_AddMember(t *testing.T) {
	t.Run("AddMember_Success", func(t *testing.T) {
		service, audit, _ := newMemberService(t)

		result, err := service.AddMember(createMemberRequest("Rajesh Jangid", "rajesh@example.com"), "admin@jangidsamaj.org")

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, models.MemberTypeRegular, result.MemberType, "member type defaults to Regular")
		assert.Equal(t, models.MemberStatusActive, result.Status)
		assert.Equal(t, FormatMemberCode(time.Now().Year(), 1), result.MemberCode)
		assert.Equal(t, time.Now().Format("2006-01-02"), result.JoinDate)

		logs, err := audit.GetLogsForMember(result.MemberCode)
		assert.NoError(t, err)
		assert.Len(t, logs, 1)
		assert.Equal(t, models.ChangeTypeAdminAdded, logs[0].ChangeType)
		assert.Equal(t, "admin@jangidsamaj.org", logs[0].AdminAction)
		assert.True(t, logs[0].PreviousData.IsEmpty(), "admin_added entries have no previous state")
		assert.False(t, logs[0].NewData.IsEmpty())
		assert.Equal(t, "Rajesh Jangid", *logs[0].NewData.Name)
	})

	t.Run("AddMember_ExplicitType", func(t *testing.T) {
		service, _, _ := newMemberService(t)

		req := createMemberRequest("Priya Jangid", "priya@example.com")
		lifeType := models.MemberTypeLife
		req.MemberType = &lifeType

		result, err := service.AddMember(req, "admin@jangidsamaj.org")

		assert.NoError(t, err)
		assert.Equal(t, models.MemberTypeLife, result.MemberType)
	})

	t.Run("AddMember_SequentialCodes", func(t *testing.T) {
		service, _, _ := newMemberService(t)
		year := time.Now().Year()

		first, err := service.AddMember(createMemberRequest("First", "first@example.com"), "admin@jangidsamaj.org")
		assert.NoError(t, err)
		second, err := service.AddMember(createMemberRequest("Second", "second@example.com"), "admin@jangidsamaj.org")
		assert.NoError(t, err)

		assert.Equal(t, fmt.Sprintf("JS-%d-001", year), first.MemberCode)
		assert.Equal(t, fmt.Sprintf("JS-%d-002", year), second.MemberCode)
	})

	t.Run("AddMember_MissingRequiredFields", func(t *testing.T) {
		service, _, _ := newMemberService(t)

		_, err := service.AddMember(&models.CreateMemberRequest{Name: "Only Name"}, "admin@jangidsamaj.org")

		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}

// A member code is derived from the count of members joined in the current
// year, not from a persisted counter, so deleting a member frees its sequence
// number for the next addition.
func TestMemberService_MemberCodeReissuedAfterDelete(t *testing.T) {
	service, _, db := newMemberService(t)
	year := time.Now().Year()

	first, err := service.AddMember(createMemberRequest("First", "first@example.com"), "admin@jangidsamaj.org")
	assert.NoError(t, err)
	second, err := service.AddMember(createMemberRequest("Second", "second@example.com"), "admin@jangidsamaj.org")
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("JS-%d-002", year), second.MemberCode)

	err = service.DeleteMember(second.MemberID, "admin@jangidsamaj.org")
	assert.NoError(t, err)

	third, err := service.AddMember(createMemberRequest("Third", "third@example.com"), "admin@jangidsamaj.org")
	assert.NoError(t, err)

	assert.Equal(t, second.MemberCode, third.MemberCode, "deleted member's code is reissued")
	assert.NotEqual(t, first.MemberCode, third.MemberCode)

	// The reissued code now resolves to two distinct audit histories
	var count int64
	db.Model(&models.MemberUpdateLog{}).Where("member_code = ?", third.MemberCode).Count(&count)
	assert.Equal(t, int64(3), count, "add, delete and re-add all landed on the same code")
}

// Deleting an earlier member shifts the year count below the highest issued
// sequence, so the next addition duplicates a still-living member's code.
func TestMemberService_MemberCodeCollisionWithLiveMember(t *testing.T) {
	service, _, db := newMemberService(t)

	first, err := service.AddMember(createMemberRequest("First", "first@example.com"), "admin@jangidsamaj.org")
	assert.NoError(t, err)
	second, err := service.AddMember(createMemberRequest("Second", "second@example.com"), "admin@jangidsamaj.org")
	assert.NoError(t, err)

	err = service.DeleteMember(first.MemberID, "admin@jangidsamaj.org")
	assert.NoError(t, err)

	third, err := service.AddMember(createMemberRequest("Third", "third@example.com"), "admin@jangidsamaj.org")
	assert.NoError(t, err)

	assert.Equal(t, second.MemberCode, third.MemberCode, "two living members now share a code")

	var count int64
	db.Model(&models.Member{}).Where("member_code = ?", second.MemberCode).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestMemberService_UpdateMember(t *testing.T) {
	t.Run("UpdateMember_RecordsMinimalDiff", func(t *testing.T) {
		service, audit, _ := newMemberService(t)

		member, err := service.AddMember(createMemberRequest("Rajesh Jangid", "rajesh@example.com"), "admin@jangidsamaj.org")
		assert.NoError(t, err)

		req := &models.UpdateMemberRequest{
			Changes: models.MemberPatch{
				City: strPtr("Pune"),
				Name: strPtr("Rajesh Jangid"), // unchanged, must not be logged
			},
			Reason: strPtr("Relocated"),
		}

		updated, err := service.UpdateMember(member.MemberID, req, "admin@jangidsamaj.org")
		assert.NoError(t, err)
		assert.Equal(t, "Pune", updated.City)

		logs, err := audit.GetLogsForMember(member.MemberCode)
		assert.NoError(t, err)
		assert.Len(t, logs, 2)

		edit := logs[0] // newest first
		assert.Equal(t, models.ChangeTypeDirectEdit, edit.ChangeType)
		assert.Equal(t, "Pune", *edit.NewData.City)
		assert.Equal(t, "Mumbai", *edit.PreviousData.City)
		assert.Nil(t, edit.NewData.Name, "unchanged field excluded from the diff")
		assert.Equal(t, "Relocated", *edit.Reason)
	})

	t.Run("UpdateMember_NoEffectiveChangeProducesNoLog", func(t *testing.T) {
		service, audit, _ := newMemberService(t)

		member, err := service.AddMember(createMemberRequest("Rajesh Jangid", "rajesh@example.com"), "admin@jangidsamaj.org")
		assert.NoError(t, err)

		req := &models.UpdateMemberRequest{
			Changes: models.MemberPatch{City: strPtr("Mumbai")},
		}

		_, err = service.UpdateMember(member.MemberID, req, "admin@jangidsamaj.org")
		assert.NoError(t, err)

		logs, err := audit.GetLogsForMember(member.MemberCode)
		assert.NoError(t, err)
		assert.Len(t, logs, 1, "only the admin_added entry remains")
	})

	t.Run("UpdateMember_NotFound", func(t *testing.T) {
		service, _, _ := newMemberService(t)

		_, err := service.UpdateMember("mem_missing", &models.UpdateMemberRequest{
			Changes: models.MemberPatch{City: strPtr("Pune")},
		}, "admin@jangidsamaj.org")

		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("UpdateMember_RejectsUnknownMemberType", func(t *testing.T) {
		service, _, _ := newMemberService(t)

		member, err := service.AddMember(createMemberRequest("Rajesh Jangid", "rajesh@example.com"), "admin@jangidsamaj.org")
		assert.NoError(t, err)

		badType := models.MemberType("Platinum")
		_, err = service.UpdateMember(member.MemberID, &models.UpdateMemberRequest{
			Changes: models.MemberPatch{MemberType: &badType},
		}, "admin@jangidsamaj.org")
		assert.True(t, errors.Is(err, ErrInvalidInput))

		refreshed, err := service.GetMember(member.MemberID)
		assert.NoError(t, err)
		assert.Equal(t, models.MemberTypeRegular, refreshed.MemberType)
	})
}

func TestMemberService_UpdateMemberStatus(t *testing.T) {
	t.Run("StatusChange_RecordsLogWithAutoReason", func(t *testing.T) {
		service, audit, _ := newMemberService(t)

		member, err := service.AddMember(createMemberRequest("Rajesh Jangid", "rajesh@example.com"), "admin@jangidsamaj.org")
		assert.NoError(t, err)

		updated, err := service.UpdateMemberStatus(member.MemberID, models.MemberStatusInactive, "admin@jangidsamaj.org")
		assert.NoError(t, err)
		assert.Equal(t, models.MemberStatusInactive, updated.Status)

		logs, err := audit.GetLogsForMember(member.MemberCode)
		assert.NoError(t, err)
		assert.Len(t, logs, 2)
		assert.Equal(t, models.ChangeTypeStatusChange, logs[0].ChangeType)
		assert.Equal(t, "Status changed from active to inactive", *logs[0].Reason)
		assert.Equal(t, models.MemberStatusActive, *logs[0].PreviousData.Status)
		assert.Equal(t, models.MemberStatusInactive, *logs[0].NewData.Status)
	})

	t.Run("StatusChange_SameStatusIsNoOp", func(t *testing.T) {
		service, audit, _ := newMemberService(t)

		member, err := service.AddMember(createMemberRequest("Rajesh Jangid", "rajesh@example.com"), "admin@jangidsamaj.org")
		assert.NoError(t, err)

		_, err = service.UpdateMemberStatus(member.MemberID, models.MemberStatusActive, "admin@jangidsamaj.org")
		assert.NoError(t, err)

		logs, err := audit.GetLogsForMember(member.MemberCode)
		assert.NoError(t, err)
		assert.Len(t, logs, 1)
	})

	t.Run("StatusChange_RejectsUnknownStatus", func(t *testing.T) {
		service, _, _ := newMemberService(t)

		member, err := service.AddMember(createMemberRequest("Rajesh Jangid", "rajesh@example.com"), "admin@jangidsamaj.org")
		assert.NoError(t, err)

		_, err = service.UpdateMemberStatus(member.MemberID, models.MemberStatus("archived"), "admin@jangidsamaj.org")
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("StatusChange_NotFound", func(t *testing.T) {
		service, _, _ := newMemberService(t)

		_, err := service.UpdateMemberStatus("mem_missing", models.MemberStatusInactive, "admin@jangidsamaj.org")
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestMemberService_DeleteMember(t *testing.T) {
	t.Run("Delete_RecordsSnapshotAndRemovesRow", func(t *testing.T) {
		service, audit, db := newMemberService(t)

		req := createMemberRequest("Rajesh Jangid", "rajesh@example.com")
		req.Bio = strPtr("Community volunteer")
		member, err := service.AddMember(req, "admin@jangidsamaj.org")
		assert.NoError(t, err)

		err = service.DeleteMember(member.MemberID, "admin@jangidsamaj.org")
		assert.NoError(t, err)

		var count int64
		db.Model(&models.Member{}).Where("member_id = ?", member.MemberID).Count(&count)
		assert.Equal(t, int64(0), count)

		logs, err := audit.GetLogsForMember(member.MemberCode)
		assert.NoError(t, err)
		assert.Len(t, logs, 2)

		deletion := logs[0]
		assert.Equal(t, models.ChangeTypeMemberDeleted, deletion.ChangeType)
		assert.Equal(t, "Member account deleted by admin", *deletion.Reason)
		assert.True(t, deletion.NewData.IsEmpty())
		assert.Equal(t, "Rajesh Jangid", *deletion.PreviousData.Name)
		assert.Equal(t, "Community volunteer", *deletion.PreviousData.Bio)
	})

	t.Run("Delete_NotFoundLeavesEverythingUnchanged", func(t *testing.T) {
		service, audit, db := newMemberService(t)

		member, err := service.AddMember(createMemberRequest("Rajesh Jangid", "rajesh@example.com"), "admin@jangidsamaj.org")
		assert.NoError(t, err)

		err = service.DeleteMember("mem_missing", "admin@jangidsamaj.org")
		assert.True(t, errors.Is(err, ErrNotFound))

		var memberCount int64
		db.Model(&models.Member{}).Count(&memberCount)
		assert.Equal(t, int64(1), memberCount)

		logs, err := audit.GetAllLogs()
		assert.NoError(t, err)
		assert.Len(t, logs, 1)
		assert.Equal(t, member.MemberCode, logs[0].MemberCode)
	})
}

func TestMemberService_GetMembers(t *testing.T) {
	service, _, _ := newMemberService(t)

	active, err := service.AddMember(createMemberRequest("Active Member", "active@example.com"), "admin@jangidsamaj.org")
	assert.NoError(t, err)
	inactive, err := service.AddMember(createMemberRequest("Inactive Member", "inactive@example.com"), "admin@jangidsamaj.org")
	assert.NoError(t, err)
	_, err = service.UpdateMemberStatus(inactive.MemberID, models.MemberStatusInactive, "admin@jangidsamaj.org")
	assert.NoError(t, err)

	all, err := service.GetMembers(nil)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	statusActive := models.MemberStatusActive
	filtered, err := service.GetMembers(&statusActive)
	assert.NoError(t, err)
	assert.Len(t, filtered, 1)
	assert.Equal(t, active.MemberID, filtered[0].MemberID)
}

func TestFormatMemberCode(t *testing.T) {
	assert.Equal(t, "JS-2024-001", FormatMemberCode(2024, 1))
	assert.Equal(t, "JS-2024-042", FormatMemberCode(2024, 42))
	assert.Equal(t, "JS-2025-123", FormatMemberCode(2025, 123))
	assert.Equal(t, "JS-2025-1000", FormatMemberCode(2025, 1000), "sequence widens past three digits")
}
