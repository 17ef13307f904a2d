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

// UpdateRequestService handles proposed profile changes: public submission,
// admin approval (which merges the changes into the member and records an
// approved_request change log entry) and rejection
type UpdateRequestService struct {
	db    *gorm.DB
	audit *AuditService
}

// NewUpdateRequestService creates a new update request service
func NewUpdateRequestService(db *gorm.DB, audit *AuditService) *UpdateRequestService {
	return &UpdateRequestService{db: db, audit: audit}
}

// CreateUpdateRequest records a proposed change with status pending. The
// target member is resolved by member code; its display name is copied onto
// the request at submission time and never re-synced. An empty change set is
// rejected outright.
func (s *UpdateRequestService) CreateUpdateRequest(req *models.CreateUpdateRequestRequest) (*models.UpdateRequestResponse, error) {
	if req.MemberCode == "" {
		return nil, fmt.Errorf("%w: member code is required", ErrInvalidInput)
	}
	if req.RequestedChanges.IsEmpty() {
		return nil, ErrEmptyChanges
	}
	if err := req.RequestedChanges.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	var member models.Member
	if err := s.db.First(&member, "member_code = ?", req.MemberCode).Error; err != nil {
		return nil, notFoundOr(err)
	}

	request := models.UpdateRequest{
		RequestID:        "upd_" + uuid.New().String(),
		MemberCode:       member.MemberCode,
		MemberName:       member.Name,
		RequestDate:      time.Now().Format(dateLayout),
		RequestedChanges: req.RequestedChanges,
		Reason:           req.Reason,
		Status:           models.StatusPending,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to create update request: %w", err)
	}

	slog.Info("Update request submitted", "requestID", request.RequestID, "memberCode", request.MemberCode)
	return toUpdateRequestResponse(&request), nil
}

// ApproveUpdateRequest merges the requested changes into the target member
// and terminally approves the request, in one transaction. The change log
// entry captures full before and after snapshots rather than a minimal diff,
// which is what distinguishes approved_request from direct_edit entries.
// When the target member no longer exists the request is left pending and
// ErrNotFound is returned.
func (s *UpdateRequestService) ApproveUpdateRequest(requestID string, actor string) (*models.UpdateRequestResponse, error) {
	var request models.UpdateRequest
	if err := s.db.First(&request, "request_id = ?", requestID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if request.Status.IsTerminal() {
		return nil, ErrAlreadyResolved
	}

	var member models.Member
	if err := s.db.First(&member, "member_code = ?", request.MemberCode).Error; err != nil {
		return nil, notFoundOr(err)
	}

	previous := models.SnapshotPatch(&member)
	request.RequestedChanges.ApplyTo(&member)
	updated := models.SnapshotPatch(&member)

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

	if err := s.audit.RecordChange(tx, &member, models.ChangeTypeApprovedRequest, previous, updated, actor, request.Reason, &request.RequestID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Save(&member).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	request.Status = models.StatusApproved
	if err := tx.Save(&request).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update request: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	monitoring.RecordDBLatency(context.Background(), "update_request_approve", time.Since(start))

	slog.Info("Update request approved", "requestID", request.RequestID, "memberCode", request.MemberCode, "actor", actor)
	return toUpdateRequestResponse(&request), nil
}

// RejectUpdateRequest terminally rejects a pending update request, storing
// the reviewer's notes verbatim. Rejections are not audited.
func (s *UpdateRequestService) RejectUpdateRequest(requestID string, adminNotes *string, actor string) (*models.UpdateRequestResponse, error) {
	var request models.UpdateRequest
	if err := s.db.First(&request, "request_id = ?", requestID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if request.Status.IsTerminal() {
		return nil, ErrAlreadyResolved
	}

	request.Status = models.StatusRejected
	request.AdminNotes = adminNotes
	if err := s.db.Save(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}

	slog.Info("Update request rejected", "requestID", request.RequestID, "actor", actor)
	return toUpdateRequestResponse(&request), nil
}

// GetUpdateRequest retrieves an update request by ID
func (s *UpdateRequestService) GetUpdateRequest(requestID string) (*models.UpdateRequestResponse, error) {
	var request models.UpdateRequest
	if err := s.db.First(&request, "request_id = ?", requestID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return toUpdateRequestResponse(&request), nil
}

// GetUpdateRequests retrieves all update requests, newest first, optionally
// filtered by status
func (s *UpdateRequestService) GetUpdateRequests(statusFilter *models.Status) ([]models.UpdateRequestResponse, error) {
	var requests []models.UpdateRequest
	query := s.db.Order("created_at DESC")
	if statusFilter != nil && *statusFilter != "" {
		query = query.Where("status = ?", *statusFilter)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve update requests: %w", err)
	}

	responses := make([]models.UpdateRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *toUpdateRequestResponse(&requests[i]))
	}
	return responses, nil
}

func toUpdateRequestResponse(request *models.UpdateRequest) *models.UpdateRequestResponse {
	return &models.UpdateRequestResponse{
		RequestID:        request.RequestID,
		MemberCode:       request.MemberCode,
		MemberName:       request.MemberName,
		RequestDate:      request.RequestDate,
		RequestedChanges: request.RequestedChanges,
		Reason:           request.Reason,
		Status:           request.Status,
		AdminNotes:       request.AdminNotes,
		CreatedAt:        request.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        request.UpdatedAt.Format(time.RFC3339),
	}
}
