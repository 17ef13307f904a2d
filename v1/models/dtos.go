package models

import "fmt"

// LoginRequest carries the admin credential pair
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresAt string `json:"expiresAt"`
}

// CreateMemberRequest is the payload for a direct admin member creation,
// bypassing the membership request workflow
type CreateMemberRequest struct {
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	Country     string       `json:"country"`
	Occupation  string       `json:"occupation"`
	DateOfBirth string       `json:"dateOfBirth"`
	MemberType  *MemberType  `json:"memberType,omitempty"`
	Bio         *string      `json:"bio,omitempty"`
	SocialLinks *SocialLinks `json:"socialLinks,omitempty"`
}

// Validate checks required fields and enum values
func (r *CreateMemberRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Phone == "" {
		return fmt.Errorf("name, email and phone are required")
	}
	if len(r.Name) > MaxNameLength || len(r.Email) > MaxEmailLength || len(r.Phone) > MaxPhoneLength {
		return fmt.Errorf("field exceeds maximum length")
	}
	if r.MemberType != nil && !r.MemberType.IsValid() {
		return fmt.Errorf("invalid member type: %s", *r.MemberType)
	}
	return nil
}

// UpdateMemberRequest is the payload for a direct admin edit
type UpdateMemberRequest struct {
	Changes MemberPatch `json:"changes"`
	Reason  *string     `json:"reason,omitempty"`
}

// UpdateMemberStatusRequest toggles a member between active and inactive
type UpdateMemberStatusRequest struct {
	Status MemberStatus `json:"status"`
}

// MemberResponse is the API representation of a member
type MemberResponse struct {
	MemberID    string       `json:"memberId"`
	MemberCode  string       `json:"memberCode"`
	MemberType  MemberType   `json:"memberType"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	Country     string       `json:"country"`
	Occupation  string       `json:"occupation"`
	DateOfBirth string       `json:"dateOfBirth"`
	Status      MemberStatus `json:"status"`
	JoinDate    string       `json:"joinDate"`
	Bio         *string      `json:"bio,omitempty"`
	SocialLinks *SocialLinks `json:"socialLinks,omitempty"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

// CreateMembershipRequestRequest is the public application payload
type CreateMembershipRequestRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	Occupation  string  `json:"occupation"`
	DateOfBirth string  `json:"dateOfBirth"`
	Message     *string `json:"message,omitempty"`
}

// Validate checks required fields
func (r *CreateMembershipRequestRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Phone == "" {
		return fmt.Errorf("name, email and phone are required")
	}
	if len(r.Name) > MaxNameLength || len(r.Email) > MaxEmailLength || len(r.Phone) > MaxPhoneLength {
		return fmt.Errorf("field exceeds maximum length")
	}
	if r.Message != nil && len(*r.Message) > MaxMessageLength {
		return fmt.Errorf("message exceeds maximum length")
	}
	return nil
}

// ApproveMembershipRequestRequest carries the admin-chosen classification.
// Defaults to Regular when omitted.
type ApproveMembershipRequestRequest struct {
	MemberType *MemberType `json:"memberType,omitempty"`
}

// MembershipRequestResponse is the API representation of a membership request
type MembershipRequestResponse struct {
	RequestID   string  `json:"requestId"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	Occupation  string  `json:"occupation"`
	DateOfBirth string  `json:"dateOfBirth"`
	Message     *string `json:"message,omitempty"`
	RequestDate string  `json:"requestDate"`
	Status      Status  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// CreateUpdateRequestRequest is the public profile-change payload.
// RequestedChanges must carry only fields whose value differs from the
// current member record and no blank values; the service rejects an empty
// patch outright.
type CreateUpdateRequestRequest struct {
	MemberCode       string      `json:"memberCode"`
	RequestedChanges MemberPatch `json:"requestedChanges"`
	Reason           *string     `json:"reason,omitempty"`
}

// RejectUpdateRequestRequest carries optional reviewer notes
type RejectUpdateRequestRequest struct {
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// UpdateRequestResponse is the API representation of an update request
type UpdateRequestResponse struct {
	RequestID        string      `json:"requestId"`
	MemberCode       string      `json:"memberCode"`
	MemberName       string      `json:"memberName"`
	RequestDate      string      `json:"requestDate"`
	RequestedChanges MemberPatch `json:"requestedChanges"`
	Reason           *string     `json:"reason,omitempty"`
	Status           Status      `json:"status"`
	AdminNotes       *string     `json:"adminNotes,omitempty"`
	CreatedAt        string      `json:"createdAt"`
	UpdatedAt        string      `json:"updatedAt"`
}

// MemberUpdateLogResponse is the API representation of a change-log entry
type MemberUpdateLogResponse struct {
	LogID        string      `json:"logId"`
	MemberCode   string      `json:"memberCode"`
	MemberName   string      `json:"memberName"`
	AdminAction  string      `json:"adminAction"`
	ChangeType   ChangeType  `json:"changeType"`
	PreviousData MemberPatch `json:"previousData"`
	NewData      MemberPatch `json:"newData"`
	Timestamp    string      `json:"timestamp"`
	Reason       *string     `json:"reason,omitempty"`
	RequestID    *string     `json:"requestId,omitempty"`
}
