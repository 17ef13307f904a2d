package services

import (
	"fmt"
	"time"

	"github.com/amitjangid17/SVJSS/v1/models"
	"gorm.io/gorm"
)

// AuditService records and queries the member change log. Entries are
// write-once: there is no update or delete path.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// RecordChange appends one change-log entry inside the caller's transaction.
// Callers compute previous/new as either the minimal diff (direct edits,
// status changes) or full snapshots (approvals, additions, deletions) and
// must skip the call entirely when the diff is empty.
func (s *AuditService) RecordChange(tx *gorm.DB, member *models.Member, changeType models.ChangeType, previous, updated models.MemberPatch, actor string, reason *string, requestID *string) error {
	if actor == "" {
		actor = models.SystemActor
	}

	entry := models.MemberUpdateLog{
		MemberCode:   member.MemberCode,
		MemberName:   member.Name,
		AdminAction:  actor,
		ChangeType:   changeType,
		PreviousData: previous,
		NewData:      updated,
		Timestamp:    time.Now().UTC(),
		Reason:       reason,
		RequestID:    requestID,
	}

	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record %s change log: %w", changeType, err)
	}
	return nil
}

// GetLogsForMember retrieves all change-log entries for a member code,
// newest first
func (s *AuditService) GetLogsForMember(memberCode string) ([]models.MemberUpdateLogResponse, error) {
	var logs []models.MemberUpdateLog
	err := s.db.Where("member_code = ?", memberCode).
		Order("timestamp DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve change logs: %w", err)
	}
	return toLogResponses(logs), nil
}

// GetAllLogs retrieves every change-log entry, newest first
func (s *AuditService) GetAllLogs() ([]models.MemberUpdateLogResponse, error) {
	var logs []models.MemberUpdateLog
	err := s.db.Order("timestamp DESC").Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve change logs: %w", err)
	}
	return toLogResponses(logs), nil
}

func toLogResponses(logs []models.MemberUpdateLog) []models.MemberUpdateLogResponse {
	responses := make([]models.MemberUpdateLogResponse, 0, len(logs))
	for _, entry := range logs {
		responses = append(responses, models.MemberUpdateLogResponse{
			LogID:        entry.LogID.String(),
			MemberCode:   entry.MemberCode,
			MemberName:   entry.MemberName,
			AdminAction:  entry.AdminAction,
			ChangeType:   entry.ChangeType,
			PreviousData: entry.PreviousData,
			NewData:      entry.NewData,
			Timestamp:    entry.Timestamp.Format(time.RFC3339Nano),
			Reason:       entry.Reason,
			RequestID:    entry.RequestID,
		})
	}
	return responses
}
