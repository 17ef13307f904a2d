package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amitjangid17/SVJSS/monitoring"
	"github.com/amitjangid17/SVJSS/v1/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// dateLayout is the calendar-date format used for join dates, birth dates and
// request dates
const dateLayout = "2006-01-02"

// MemberService handles member records and direct admin mutations
type MemberService struct {
	db    *gorm.DB
	audit *AuditService
}

// NewMemberService creates a new member service
func NewMemberService(db *gorm.DB, audit *AuditService) *MemberService {
	return &MemberService{db: db, audit: audit}
}

// FormatMemberCode formats a display member code, e.g. JS-2024-001
func FormatMemberCode(year int, sequence int) string {
	return fmt.Sprintf("%s-%d-%03d", models.MemberCodePrefix, year, sequence)
}

// nextMemberCode derives the display code for a new member joining today.
// The sequence is the count of members whose join date falls in the current
// calendar year, plus one. It is a function of current store state, not a
// persisted counter, so a code can be reissued after a same-year deletion.
// That derivation is pinned by the regression suite; see DESIGN.md before
// changing it.
func (s *MemberService) nextMemberCode(tx *gorm.DB, now time.Time) (string, error) {
	year := now.Year()
	var count int64
	err := tx.Model(&models.Member{}).
		Where("join_date LIKE ?", fmt.Sprintf("%d-%%", year)).
		Count(&count).Error
	if err != nil {
		return "", fmt.Errorf("failed to count members for year %d: %w", year, err)
	}
	return FormatMemberCode(year, int(count)+1), nil
}

// insertMember creates the member row and its admin_added change log inside
// the given transaction. Shared by direct admin creation and membership
// request approval.
func (s *MemberService) insertMember(tx *gorm.DB, member *models.Member, actor string, reason string, requestID *string) error {
	now := time.Now()

	code, err := s.nextMemberCode(tx, now)
	if err != nil {
		return err
	}
	member.MemberID = "mem_" + uuid.New().String()
	member.MemberCode = code
	member.Status = models.MemberStatusActive
	member.JoinDate = now.Format(dateLayout)
	if member.MemberType == "" {
		member.MemberType = models.MemberTypeRegular
	}

	if err := tx.Create(member).Error; err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	snapshot := models.SnapshotPatch(member)
	return s.audit.RecordChange(tx, member, models.ChangeTypeAdminAdded, models.MemberPatch{}, snapshot, actor, &reason, requestID)
}

// AddMember creates a member directly, bypassing the request workflow
func (s *MemberService) AddMember(req *models.CreateMemberRequest, actor string) (*models.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	member := models.Member{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		Occupation:  req.Occupation,
		DateOfBirth: req.DateOfBirth,
		Bio:         req.Bio,
		SocialLinks: req.SocialLinks,
	}
	if req.MemberType != nil {
		member.MemberType = *req.MemberType
	}

	start := time.Now()
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.insertMember(tx, &member, actor, "Member added directly by admin", nil); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	monitoring.RecordDBLatency(context.Background(), "member_create", time.Since(start))

	slog.Info("Member added directly", "memberID", member.MemberID, "memberCode", member.MemberCode, "actor", actor)
	return toMemberResponse(&member), nil
}

// GetMember retrieves a member by internal identifier
func (s *MemberService) GetMember(memberID string) (*models.MemberResponse, error) {
	var member models.Member
	if err := s.db.First(&member, "member_id = ?", memberID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return toMemberResponse(&member), nil
}

// GetMembers retrieves all members, optionally filtered by lifecycle status
func (s *MemberService) GetMembers(status *models.MemberStatus) ([]models.MemberResponse, error) {
	var members []models.Member
	query := s.db.Order("join_date DESC")
	if status != nil && *status != "" {
		query = query.Where("status = ?", *status)
	}
	if err := query.Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve members: %w", err)
	}

	responses := make([]models.MemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, *toMemberResponse(&members[i]))
	}
	return responses, nil
}

// UpdateMember applies a direct admin edit. A direct_edit change log entry is
// recorded only when the minimal diff against the current record is non-empty;
// the patch is applied regardless.
func (s *MemberService) UpdateMember(memberID string, req *models.UpdateMemberRequest, actor string) (*models.MemberResponse, error) {
	if err := req.Changes.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	var member models.Member
	if err := s.db.First(&member, "member_id = ?", memberID).Error; err != nil {
		return nil, notFoundOr(err)
	}

	diff := req.Changes.DiffAgainst(&member)
	previous := diff.PreviousFrom(&member)

	start := time.Now()
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if !diff.IsEmpty() {
		if err := s.audit.RecordChange(tx, &member, models.ChangeTypeDirectEdit, previous, diff, actor, req.Reason, nil); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	req.Changes.ApplyTo(&member)
	if err := tx.Save(&member).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	monitoring.RecordDBLatency(context.Background(), "member_update", time.Since(start))

	return toMemberResponse(&member), nil
}

// UpdateMemberStatus toggles a member between active and inactive, recording
// a status_change log entry. Equal old and new status is a no-op with no log.
func (s *MemberService) UpdateMemberStatus(memberID string, newStatus models.MemberStatus, actor string) (*models.MemberResponse, error) {
	if newStatus != models.MemberStatusActive && newStatus != models.MemberStatusInactive {
		return nil, fmt.Errorf("%w: status must be active or inactive", ErrInvalidInput)
	}

	var member models.Member
	if err := s.db.First(&member, "member_id = ?", memberID).Error; err != nil {
		return nil, notFoundOr(err)
	}

	if member.Status == newStatus {
		return toMemberResponse(&member), nil
	}

	oldStatus := member.Status
	reason := fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus)
	previous := models.MemberPatch{Status: &oldStatus}
	updated := models.MemberPatch{Status: &newStatus}

	start := time.Now()
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.audit.RecordChange(tx, &member, models.ChangeTypeStatusChange, previous, updated, actor, &reason, nil); err != nil {
		tx.Rollback()
		return nil, err
	}

	member.Status = newStatus
	if err := tx.Save(&member).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update member status: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	monitoring.RecordDBLatency(context.Background(), "member_status_update", time.Since(start))

	slog.Info("Member status changed", "memberID", memberID, "from", oldStatus, "to", newStatus, "actor", actor)
	return toMemberResponse(&member), nil
}

// DeleteMember hard-deletes a member. The member_deleted change log entry,
// carrying a full snapshot as previous data, is the only remaining trace.
func (s *MemberService) DeleteMember(memberID string, actor string) error {
	var member models.Member
	if err := s.db.First(&member, "member_id = ?", memberID).Error; err != nil {
		return notFoundOr(err)
	}

	reason := "Member account deleted by admin"
	snapshot := models.SnapshotPatch(&member)

	start := time.Now()
	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to start transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.audit.RecordChange(tx, &member, models.ChangeTypeMemberDeleted, snapshot, models.MemberPatch{}, actor, &reason, nil); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&models.Member{}, "member_id = ?", memberID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete member: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	monitoring.RecordDBLatency(context.Background(), "member_delete", time.Since(start))

	slog.Info("Member deleted", "memberID", memberID, "memberCode", member.MemberCode, "actor", actor)
	return nil
}

func toMemberResponse(member *models.Member) *models.MemberResponse {
	return &models.MemberResponse{
		MemberID:    member.MemberID,
		MemberCode:  member.MemberCode,
		MemberType:  member.MemberType,
		Name:        member.Name,
		Email:       member.Email,
		Phone:       member.Phone,
		City:        member.City,
		State:       member.State,
		Country:     member.Country,
		Occupation:  member.Occupation,
		DateOfBirth: member.DateOfBirth,
		Status:      member.Status,
		JoinDate:    member.JoinDate,
		Bio:         member.Bio,
		SocialLinks: member.SocialLinks,
		CreatedAt:   member.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   member.UpdatedAt.Format(time.RFC3339),
	}
}
