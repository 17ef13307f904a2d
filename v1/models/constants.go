package models

// MemberType represents the membership classification assigned by an admin
type MemberType string

const (
	MemberTypeRegular  MemberType = "Regular"
	MemberTypeLife     MemberType = "Life"
	MemberTypeHonorary MemberType = "Honorary"
	MemberTypeStudent  MemberType = "Student"
	MemberTypeSenior   MemberType = "Senior"
)

// IsValid reports whether t is one of the known membership classifications
func (t MemberType) IsValid() bool {
	switch t {
	case MemberTypeRegular, MemberTypeLife, MemberTypeHonorary, MemberTypeStudent, MemberTypeSenior:
		return true
	}
	return false
}

// MemberStatus represents the lifecycle status of a member record
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusPending  MemberStatus = "pending"
	MemberStatusInactive MemberStatus = "inactive"
)

// IsValid reports whether s is one of the known lifecycle statuses
func (s MemberStatus) IsValid() bool {
	switch s {
	case MemberStatusActive, MemberStatusPending, MemberStatusInactive:
		return true
	}
	return false
}

// Status represents the status of membership and update requests
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsTerminal reports whether a request in this status can still transition
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ChangeType classifies why a member record changed
type ChangeType string

const (
	ChangeTypeDirectEdit      ChangeType = "direct_edit"
	ChangeTypeApprovedRequest ChangeType = "approved_request"
	ChangeTypeStatusChange    ChangeType = "status_change"
	ChangeTypeAdminAdded      ChangeType = "admin_added"
	ChangeTypeMemberDeleted   ChangeType = "member_deleted"
)

// SystemActor is recorded on change logs when no authenticated admin is present
const SystemActor = "System"

// MemberCodePrefix is the display-code prefix for all member codes
const MemberCodePrefix = "JS"

// Field length constraints
const (
	MaxNameLength    = 255
	MaxMessageLength = 1000
	MaxEmailLength   = 320 // RFC 3696 specification
	MaxPhoneLength   = 20
)
