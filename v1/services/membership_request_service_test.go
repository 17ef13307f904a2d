package services

import (
	"errors"
	"testing"
	"time"

	"github.com/amitjangid17/SVJSS/v1/models"
	"github.com/stretchr/testify/assert"
)

func newMembershipRequestService(t *testing.T) (*MembershipRequestService, *MemberService, *AuditService) {
	db := SetupSQLiteTestDB(t)
	audit := NewAuditService(db)
	members := NewMemberService(db, audit)
	return NewMembershipRequestService(db, members), members, audit
}

func createApplication(name, email string) *models.CreateMembershipRequestRequest {
	return &models.CreateMembershipRequestRequest{
		Name:        name,
		Email:       email,
		Phone:       "+91 99999 88888",
		City:        "Pune",
		State:       "Maharashtra",
		Country:     "India",
		Occupation:  "Marketing Manager",
		DateOfBirth: "1992-06-15",
		Message:     strPtr("Looking forward to joining the community."),
	}
}

func TestMembershipRequestService_Create(t *testing.T) {
	t.Run("Create_Success", func(t *testing.T) {
		service, _, _ := newMembershipRequestService(t)

		result, err := service.CreateMembershipRequest(createApplication("Neha Jangid", "neha@example.com"))

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, models.StatusPending, result.Status)
		assert.Equal(t, time.Now().Format("2006-01-02"), result.RequestDate)
		assert.Contains(t, result.RequestID, "req_")
	})

	t.Run("Create_DuplicateSubmissionsAllowed", func(t *testing.T) {
		service, _, _ := newMembershipRequestService(t)

		_, err := service.CreateMembershipRequest(createApplication("Neha Jangid", "neha@example.com"))
		assert.NoError(t, err)
		_, err = service.CreateMembershipRequest(createApplication("Neha Jangid", "neha@example.com"))
		assert.NoError(t, err)

		requests, err := service.GetMembershipRequests(nil)
		assert.NoError(t, err)
		assert.Len(t, requests, 2)
	})

	t.Run("Create_MissingRequiredFields", func(t *testing.T) {
		service, _, _ := newMembershipRequestService(t)

		_, err := service.CreateMembershipRequest(&models.CreateMembershipRequestRequest{Name: "No Contact"})

		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}

func TestMembershipRequestService_Approve(t *testing.T) {
	t.Run("Approve_CreatesMemberAndLog", func(t *testing.T) {
		service, members, audit := newMembershipRequestService(t)

		created, err := service.CreateMembershipRequest(createApplication("Neha Jangid", "neha@example.com"))
		assert.NoError(t, err)

		lifeType := models.MemberTypeLife
		approved, err := service.ApproveMembershipRequest(created.RequestID, &lifeType, "admin@jangidsamaj.org")
		assert.NoError(t, err)
		assert.Equal(t, models.StatusApproved, approved.Status)

		membersList, err := members.GetMembers(nil)
		assert.NoError(t, err)
		assert.Len(t, membersList, 1)

		member := membersList[0]
		assert.Equal(t, "Neha Jangid", member.Name)
		assert.Equal(t, models.MemberTypeLife, member.MemberType)
		assert.Equal(t, models.MemberStatusActive, member.Status)
		assert.Equal(t, FormatMemberCode(time.Now().Year(), 1), member.MemberCode)
		assert.Equal(t, "Looking forward to joining the community.", *member.Bio, "application message becomes the bio")

		logs, err := audit.GetLogsForMember(member.MemberCode)
		assert.NoError(t, err)
		assert.Len(t, logs, 1)
		assert.Equal(t, models.ChangeTypeAdminAdded, logs[0].ChangeType)
		assert.Equal(t, "Approved membership request with Life membership type", *logs[0].Reason)
		assert.Equal(t, created.RequestID, *logs[0].RequestID)
	})

	t.Run("Approve_DefaultsToRegular", func(t *testing.T) {
		service, members, _ := newMembershipRequestService(t)

		created, err := service.CreateMembershipRequest(createApplication("Neha Jangid", "neha@example.com"))
		assert.NoError(t, err)

		_, err = service.ApproveMembershipRequest(created.RequestID, nil, "admin@jangidsamaj.org")
		assert.NoError(t, err)

		membersList, err := members.GetMembers(nil)
		assert.NoError(t, err)
		assert.Equal(t, models.MemberTypeRegular, membersList[0].MemberType)
	})

	t.Run("Approve_AlreadyResolved", func(t *testing.T) {
		service, members, _ := newMembershipRequestService(t)

		created, err := service.CreateMembershipRequest(createApplication("Neha Jangid", "neha@example.com"))
		assert.NoError(t, err)

		_, err = service.ApproveMembershipRequest(created.RequestID, nil, "admin@jangidsamaj.org")
		assert.NoError(t, err)

		_, err = service.ApproveMembershipRequest(created.RequestID, nil, "admin@jangidsamaj.org")
		assert.True(t, errors.Is(err, ErrAlreadyResolved), "terminal requests cannot be approved again")

		membersList, err := members.GetMembers(nil)
		assert.NoError(t, err)
		assert.Len(t, membersList, 1, "no duplicate member was created")
	})

	t.Run("Approve_InvalidMemberType", func(t *testing.T) {
		service, _, _ := newMembershipRequestService(t)

		created, err := service.CreateMembershipRequest(createApplication("Neha Jangid", "neha@example.com"))
		assert.NoError(t, err)

		badType := models.MemberType("Platinum")
		_, err = service.ApproveMembershipRequest(created.RequestID, &badType, "admin@jangidsamaj.org")
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("Approve_NotFound", func(t *testing.T) {
		service, _, _ := newMembershipRequestService(t)

		_, err := service.ApproveMembershipRequest("req_missing", nil, "admin@jangidsamaj.org")
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestMembershipRequestService_Reject(t *testing.T) {
	t.Run("Reject_TerminalAndUnaudited", func(t *testing.T) {
		service, members, audit := newMembershipRequestService(t)

		created, err := service.CreateMembershipRequest(createApplication("Rohit Jangid", "rohit@example.com"))
		assert.NoError(t, err)

		rejected, err := service.RejectMembershipRequest(created.RequestID, "admin@jangidsamaj.org")
		assert.NoError(t, err)
		assert.Equal(t, models.StatusRejected, rejected.Status)

		membersList, err := members.GetMembers(nil)
		assert.NoError(t, err)
		assert.Empty(t, membersList)

		logs, err := audit.GetAllLogs()
		assert.NoError(t, err)
		assert.Empty(t, logs, "rejections leave no change-log trace")
	})

	t.Run("Reject_AlreadyResolved", func(t *testing.T) {
		service, _, _ := newMembershipRequestService(t)

		created, err := service.CreateMembershipRequest(createApplication("Rohit Jangid", "rohit@example.com"))
		assert.NoError(t, err)

		_, err = service.RejectMembershipRequest(created.RequestID, "admin@jangidsamaj.org")
		assert.NoError(t, err)

		_, err = service.RejectMembershipRequest(created.RequestID, "admin@jangidsamaj.org")
		assert.True(t, errors.Is(err, ErrAlreadyResolved))
	})
}

func TestMembershipRequestService_GetByStatus(t *testing.T) {
	service, _, _ := newMembershipRequestService(t)

	first, err := service.CreateMembershipRequest(createApplication("Neha Jangid", "neha@example.com"))
	assert.NoError(t, err)
	_, err = service.CreateMembershipRequest(createApplication("Rohit Jangid", "rohit@example.com"))
	assert.NoError(t, err)

	_, err = service.ApproveMembershipRequest(first.RequestID, nil, "admin@jangidsamaj.org")
	assert.NoError(t, err)

	pending := models.StatusPending
	pendingList, err := service.GetMembershipRequests(&pending)
	assert.NoError(t, err)
	assert.Len(t, pendingList, 1)
	assert.Equal(t, "Rohit Jangid", pendingList[0].Name)

	approved := models.StatusApproved
	approvedList, err := service.GetMembershipRequests(&approved)
	assert.NoError(t, err)
	assert.Len(t, approvedList, 1)
	assert.Equal(t, "Neha Jangid", approvedList[0].Name)
}
