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

// MembershipRequestService handles the application workflow for prospective
// members: public submission, admin approval and rejection
type MembershipRequestService struct {
	db      *gorm.DB
	members *MemberService
}

// NewMembershipRequestService creates a new membership request service
func NewMembershipRequestService(db *gorm.DB, members *MemberService) *MembershipRequestService {
	return &MembershipRequestService{db: db, members: members}
}

// CreateMembershipRequest records a new application with status pending.
// No duplicate detection is performed against existing members or other
// pending requests.
func (s *MembershipRequestService) CreateMembershipRequest(req *models.CreateMembershipRequestRequest) (*models.MembershipRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	request := models.MembershipRequest{
		RequestID:   "req_" + uuid.New().String(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		Occupation:  req.Occupation,
		DateOfBirth: req.DateOfBirth,
		Message:     req.Message,
		RequestDate: time.Now().Format(dateLayout),
		Status:      models.StatusPending,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to create membership request: %w", err)
	}

	slog.Info("Membership request submitted", "requestID", request.RequestID)
	return toMembershipRequestResponse(&request), nil
}

// ApproveMembershipRequest approves a pending application: a new active
// member is created (code assigned from the current year, bio defaulted from
// the application message), an admin_added change log entry is recorded, and
// the request becomes terminally approved, all in one transaction.
func (s *MembershipRequestService) ApproveMembershipRequest(requestID string, memberType *models.MemberType, actor string) (*models.MembershipRequestResponse, error) {
	var request models.MembershipRequest
	if err := s.db.First(&request, "request_id = ?", requestID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if request.Status.IsTerminal() {
		return nil, ErrAlreadyResolved
	}

	chosenType := models.MemberTypeRegular
	if memberType != nil {
		if !memberType.IsValid() {
			return nil, fmt.Errorf("%w: invalid member type: %s", ErrInvalidInput, *memberType)
		}
		chosenType = *memberType
	}

	member := models.Member{
		MemberType:  chosenType,
		Name:        request.Name,
		Email:       request.Email,
		Phone:       request.Phone,
		City:        request.City,
		State:       request.State,
		Country:     request.Country,
		Occupation:  request.Occupation,
		DateOfBirth: request.DateOfBirth,
		Bio:         request.Message,
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

	reason := fmt.Sprintf("Approved membership request with %s membership type", chosenType)
	if err := s.members.insertMember(tx, &member, actor, reason, &request.RequestID); err != nil {
		tx.Rollback()
		return nil, err
	}

	request.Status = models.StatusApproved
	if err := tx.Save(&request).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update membership request: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	monitoring.RecordDBLatency(context.Background(), "membership_request_approve", time.Since(start))

	slog.Info("Membership request approved",
		"requestID", request.RequestID,
		"memberID", member.MemberID,
		"memberCode", member.MemberCode,
		"memberType", chosenType,
		"actor", actor)
	return toMembershipRequestResponse(&request), nil
}

// RejectMembershipRequest terminally rejects a pending application.
// Rejections are not audited; only approvals reach the change log.
func (s *MembershipRequestService) RejectMembershipRequest(requestID string, actor string) (*models.MembershipRequestResponse, error) {
	var request models.MembershipRequest
	if err := s.db.First(&request, "request_id = ?", requestID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if request.Status.IsTerminal() {
		return nil, ErrAlreadyResolved
	}

	request.Status = models.StatusRejected
	if err := s.db.Save(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to update membership request: %w", err)
	}

	slog.Info("Membership request rejected", "requestID", request.RequestID, "actor", actor)
	return toMembershipRequestResponse(&request), nil
}

// GetMembershipRequest retrieves a membership request by ID
func (s *MembershipRequestService) GetMembershipRequest(requestID string) (*models.MembershipRequestResponse, error) {
	var request models.MembershipRequest
	if err := s.db.First(&request, "request_id = ?", requestID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return toMembershipRequestResponse(&request), nil
}

// GetMembershipRequests retrieves all membership requests, newest first,
// optionally filtered by status
func (s *MembershipRequestService) GetMembershipRequests(statusFilter *models.Status) ([]models.MembershipRequestResponse, error) {
	var requests []models.MembershipRequest
	query := s.db.Order("created_at DESC")
	if statusFilter != nil && *statusFilter != "" {
		query = query.Where("status = ?", *statusFilter)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve membership requests: %w", err)
	}

	responses := make([]models.MembershipRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *toMembershipRequestResponse(&requests[i]))
	}
	return responses, nil
}

func toMembershipRequestResponse(request *models.MembershipRequest) *models.MembershipRequestResponse {
	return &models.MembershipRequestResponse{
		RequestID:   request.RequestID,
		Name:        request.Name,
		Email:       request.Email,
		Phone:       request.Phone,
		City:        request.City,
		State:       request.State,
		Country:     request.Country,
		Occupation:  request.Occupation,
		DateOfBirth: request.DateOfBirth,
		Message:     request.Message,
		RequestDate: request.RequestDate,
		Status:      request.Status,
		CreatedAt:   request.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   request.UpdatedAt.Format(time.RFC3339),
	}
}
