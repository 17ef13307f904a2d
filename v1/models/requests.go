package models

// MembershipRequest represents an application from a prospective member.
// The membership classification is deliberately absent: the admin chooses it
// at approval time, it is never part of the application.
type MembershipRequest struct {
	RequestID   string  `gorm:"primaryKey;column:request_id" json:"requestId"`
	Name        string  `gorm:"column:name;not null" json:"name"`
	Email       string  `gorm:"column:email;not null" json:"email"`
	Phone       string  `gorm:"column:phone;not null" json:"phone"`
	City        string  `gorm:"column:city;not null" json:"city"`
	State       string  `gorm:"column:state;not null" json:"state"`
	Country     string  `gorm:"column:country;not null" json:"country"`
	Occupation  string  `gorm:"column:occupation;not null" json:"occupation"`
	DateOfBirth string  `gorm:"column:date_of_birth;not null" json:"dateOfBirth"`
	Message     *string `gorm:"column:message" json:"message,omitempty"`
	RequestDate string  `gorm:"column:request_date;not null" json:"requestDate"`
	Status      Status  `gorm:"column:status;not null" json:"status"`
	BaseModel
}

// TableName sets the table name for GORM
func (MembershipRequest) TableName() string {
	return "membership_requests"
}

// UpdateRequest represents a proposed change to an existing member's fields.
// MemberName is a denormalized copy taken at submission time and never
// re-synced. RequestedChanges holds only the fields whose proposed value
// differs from the member record at submission time.
type UpdateRequest struct {
	RequestID        string      `gorm:"primaryKey;column:request_id" json:"requestId"`
	MemberCode       string      `gorm:"column:member_code;not null;index" json:"memberCode"`
	MemberName       string      `gorm:"column:member_name;not null" json:"memberName"`
	RequestDate      string      `gorm:"column:request_date;not null" json:"requestDate"`
	RequestedChanges MemberPatch `gorm:"column:requested_changes;type:jsonb" json:"requestedChanges"`
	Reason           *string     `gorm:"column:reason" json:"reason,omitempty"`
	Status           Status      `gorm:"column:status;not null" json:"status"`
	AdminNotes       *string     `gorm:"column:admin_notes" json:"adminNotes,omitempty"`
	BaseModel
}

// TableName sets the table name for GORM
func (UpdateRequest) TableName() string {
	return "update_requests"
}
