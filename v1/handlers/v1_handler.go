package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/amitjangid17/SVJSS/monitoring"
	"github.com/amitjangid17/SVJSS/v1/middleware"
	"github.com/amitjangid17/SVJSS/v1/models"
	"github.com/amitjangid17/SVJSS/v1/services"
	"github.com/amitjangid17/SVJSS/v1/utils"

	"gorm.io/gorm"
)

// V1Handler handles all V1 API routes
type V1Handler struct {
	authService              *services.AuthService
	memberService            *services.MemberService
	membershipRequestService *services.MembershipRequestService
	updateRequestService     *services.UpdateRequestService
	auditService             *services.AuditService
}

// NewV1Handler creates a new V1 handler
func NewV1Handler(db *gorm.DB, authService *services.AuthService) *V1Handler {
	auditService := services.NewAuditService(db)
	memberService := services.NewMemberService(db, auditService)

	return &V1Handler{
		authService:              authService,
		memberService:            memberService,
		membershipRequestService: services.NewMembershipRequestService(db, memberService),
		updateRequestService:     services.NewUpdateRequestService(db, auditService),
		auditService:             auditService,
	}
}

// SetupV1Routes configures all V1 API routes
func (h *V1Handler) SetupV1Routes(mux *http.ServeMux) {
	// Auth routes
	mux.Handle("/api/v1/auth/login", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleLogin)))

	// Member routes
	mux.Handle("/api/v1/members", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleMembers)))
	mux.Handle("/api/v1/members/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleMembers)))

	// MembershipRequest routes
	mux.Handle("/api/v1/membership-requests", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleMembershipRequests)))
	mux.Handle("/api/v1/membership-requests/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleMembershipRequests)))

	// UpdateRequest routes
	mux.Handle("/api/v1/update-requests", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleUpdateRequests)))
	mux.Handle("/api/v1/update-requests/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleUpdateRequests)))

	// Change log routes
	mux.Handle("/api/v1/update-logs", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleUpdateLogs)))
	mux.Handle("/api/v1/update-logs/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleUpdateLogs)))
}

// respondServiceError maps service sentinel errors onto HTTP status codes
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyResolved):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrEmptyChanges):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *V1Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		monitoring.RecordBusinessEvent(r.Context(), "admin_login", false)
		respondServiceError(w, err)
		return
	}

	monitoring.RecordBusinessEvent(r.Context(), "admin_login", true)
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// handleMembers handles member-related routes
func (h *V1Handler) handleMembers(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/members")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /api/v1/members and POST /api/v1/members
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.getMembers(w, r)
		case http.MethodPost:
			h.addMember(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) < 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Member ID is required")
		return
	}

	memberId := parts[0]

	// Handle base member endpoint: GET, PUT and DELETE /api/v1/members/:memberId
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getMember(w, r, memberId)
		case http.MethodPut:
			h.updateMember(w, r, memberId)
		case http.MethodDelete:
			h.deleteMember(w, r, memberId)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	// Handle sub-resources: PUT /api/v1/members/:memberId/status and
	// GET /api/v1/members/:memberId/logs
	if len(parts) == 2 {
		switch {
		case parts[1] == "status" && r.Method == http.MethodPut:
			h.updateMemberStatus(w, r, memberId)
		case parts[1] == "logs" && r.Method == http.MethodGet:
			h.getMemberLogs(w, r, memberId)
		default:
			utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
		}
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) getMembers(w http.ResponseWriter, r *http.Request) {
	var status *models.MemberStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.MemberStatus(raw)
		status = &s
	}

	members, err := h.memberService.GetMembers(status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, members)
}

func (h *V1Handler) addMember(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.memberService.AddMember(&req, middleware.ActorFromRequest(r))
	if err != nil {
		monitoring.RecordBusinessEvent(r.Context(), "member_added", false)
		respondServiceError(w, err)
		return
	}

	monitoring.RecordBusinessEvent(r.Context(), "member_added", true)
	utils.RespondWithJSON(w, http.StatusCreated, member)
}

func (h *V1Handler) getMember(w http.ResponseWriter, r *http.Request, memberId string) {
	member, err := h.memberService.GetMember(memberId)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, member)
}

func (h *V1Handler) updateMember(w http.ResponseWriter, r *http.Request, memberId string) {
	var req models.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.memberService.UpdateMember(memberId, &req, middleware.ActorFromRequest(r))
	if err != nil {
		monitoring.RecordBusinessEvent(r.Context(), "member_edited", false)
		respondServiceError(w, err)
		return
	}

	monitoring.RecordBusinessEvent(r.Context(), "member_edited", true)
	utils.RespondWithJSON(w, http.StatusOK, member)
}

func (h *V1Handler) updateMemberStatus(w http.ResponseWriter, r *http.Request, memberId string) {
	var req models.UpdateMemberStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.memberService.UpdateMemberStatus(memberId, req.Status, middleware.ActorFromRequest(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, member)
}

func (h *V1Handler) deleteMember(w http.ResponseWriter, r *http.Request, memberId string) {
	if err := h.memberService.DeleteMember(memberId, middleware.ActorFromRequest(r)); err != nil {
		monitoring.RecordBusinessEvent(r.Context(), "member_deleted", false)
		respondServiceError(w, err)
		return
	}

	monitoring.RecordBusinessEvent(r.Context(), "member_deleted", true)
	w.WriteHeader(http.StatusNoContent)
}

func (h *V1Handler) getMemberLogs(w http.ResponseWriter, r *http.Request, memberId string) {
	member, err := h.memberService.GetMember(memberId)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logs, err := h.auditService.GetLogsForMember(member.MemberCode)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, logs)
}

// handleMembershipRequests handles membership application routes
func (h *V1Handler) handleMembershipRequests(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/membership-requests")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET and POST /api/v1/membership-requests
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.getMembershipRequests(w, r)
		case http.MethodPost:
			h.createMembershipRequest(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) < 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Request ID is required")
		return
	}

	requestId := parts[0]

	// Handle specific request endpoint: GET /api/v1/membership-requests/:requestId
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getMembershipRequest(w, r, requestId)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	// Handle decision endpoints: POST /api/v1/membership-requests/:requestId/approve|reject
	if len(parts) == 2 && r.Method == http.MethodPost {
		switch parts[1] {
		case "approve":
			h.approveMembershipRequest(w, r, requestId)
			return
		case "reject":
			h.rejectMembershipRequest(w, r, requestId)
			return
		}
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) getMembershipRequests(w http.ResponseWriter, r *http.Request) {
	var status *models.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.Status(raw)
		status = &s
	}

	requests, err := h.membershipRequestService.GetMembershipRequests(status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, requests)
}

func (h *V1Handler) createMembershipRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMembershipRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.membershipRequestService.CreateMembershipRequest(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	monitoring.RecordBusinessEvent(r.Context(), "membership_request_submitted", true)
	utils.RespondWithJSON(w, http.StatusCreated, request)
}

func (h *V1Handler) getMembershipRequest(w http.ResponseWriter, r *http.Request, requestId string) {
	request, err := h.membershipRequestService.GetMembershipRequest(requestId)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, request)
}

func (h *V1Handler) approveMembershipRequest(w http.ResponseWriter, r *http.Request, requestId string) {
	// The body is optional; an absent or empty body means a Regular member
	var req models.ApproveMembershipRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.membershipRequestService.ApproveMembershipRequest(requestId, req.MemberType, middleware.ActorFromRequest(r))
	if err != nil {
		monitoring.RecordBusinessEvent(r.Context(), "membership_request_approved", false)
		respondServiceError(w, err)
		return
	}

	monitoring.RecordBusinessEvent(r.Context(), "membership_request_approved", true)
	utils.RespondWithJSON(w, http.StatusOK, request)
}

func (h *V1Handler) rejectMembershipRequest(w http.ResponseWriter, r *http.Request, requestId string) {
	request, err := h.membershipRequestService.RejectMembershipRequest(requestId, middleware.ActorFromRequest(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	monitoring.RecordBusinessEvent(r.Context(), "membership_request_rejected", true)
	utils.RespondWithJSON(w, http.StatusOK, request)
}

// handleUpdateRequests handles profile update request routes
func (h *V1Handler) handleUpdateRequests(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/update-requests")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET and POST /api/v1/update-requests
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.getUpdateRequests(w, r)
		case http.MethodPost:
			h.createUpdateRequest(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) < 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Request ID is required")
		return
	}

	requestId := parts[0]

	// Handle specific request endpoint: GET /api/v1/update-requests/:requestId
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getUpdateRequest(w, r, requestId)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	// Handle decision endpoints: POST /api/v1/update-requests/:requestId/approve|reject
	if len(parts) == 2 && r.Method == http.MethodPost {
		switch parts[1] {
		case "approve":
			h.approveUpdateRequest(w, r, requestId)
			return
		case "reject":
			h.rejectUpdateRequest(w, r, requestId)
			return
		}
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) getUpdateRequests(w http.ResponseWriter, r *http.Request) {
	var status *models.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.Status(raw)
		status = &s
	}

	requests, err := h.updateRequestService.GetUpdateRequests(status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, requests)
}

func (h *V1Handler) createUpdateRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUpdateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.updateRequestService.CreateUpdateRequest(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	monitoring.RecordBusinessEvent(r.Context(), "update_request_submitted", true)
	utils.RespondWithJSON(w, http.StatusCreated, request)
}

func (h *V1Handler) getUpdateRequest(w http.ResponseWriter, r *http.Request, requestId string) {
	request, err := h.updateRequestService.GetUpdateRequest(requestId)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, request)
}

func (h *V1Handler) approveUpdateRequest(w http.ResponseWriter, r *http.Request, requestId string) {
	request, err := h.updateRequestService.ApproveUpdateRequest(requestId, middleware.ActorFromRequest(r))
	if err != nil {
		monitoring.RecordBusinessEvent(r.Context(), "update_request_approved", false)
		respondServiceError(w, err)
		return
	}

	monitoring.RecordBusinessEvent(r.Context(), "update_request_approved", true)
	utils.RespondWithJSON(w, http.StatusOK, request)
}

func (h *V1Handler) rejectUpdateRequest(w http.ResponseWriter, r *http.Request, requestId string) {
	var req models.RejectUpdateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.updateRequestService.RejectUpdateRequest(requestId, req.AdminNotes, middleware.ActorFromRequest(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	monitoring.RecordBusinessEvent(r.Context(), "update_request_rejected", true)
	utils.RespondWithJSON(w, http.StatusOK, request)
}

// handleUpdateLogs handles change-log query routes
func (h *V1Handler) handleUpdateLogs(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/v1/update-logs" && r.URL.Path != "/api/v1/update-logs/" {
		utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
		return
	}
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if memberCode := r.URL.Query().Get("memberCode"); memberCode != "" {
		logs, err := h.auditService.GetLogsForMember(memberCode)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, logs)
		return
	}

	logs, err := h.auditService.GetAllLogs()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, logs)
}
