package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SocialLinks holds the optional social profile URLs of a member.
// Absent slots are omitted from JSON rather than stored as empty strings.
type SocialLinks struct {
	LinkedIn *string `json:"linkedin,omitempty"`
	Facebook *string `json:"facebook,omitempty"`
	Twitter  *string `json:"twitter,omitempty"`
}

// Scan implements the sql.Scanner interface for SocialLinks
func (sl *SocialLinks) Scan(value interface{}) error {
	if value == nil {
		*sl = SocialLinks{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SocialLinks", value)
	}

	return json.Unmarshal(bytes, sl)
}

// Value implements the driver.Valuer interface for SocialLinks
func (sl SocialLinks) Value() (driver.Value, error) {
	return json.Marshal(sl)
}

// GormDataType gorm common data type
func (SocialLinks) GormDataType() string {
	return "jsonb"
}

// Equal compares two link sets slot by slot. Both nil counts as equal.
func (sl *SocialLinks) Equal(other *SocialLinks) bool {
	if sl == nil && other == nil {
		return true
	}
	if sl == nil || other == nil {
		return false
	}
	return equalStringPtr(sl.LinkedIn, other.LinkedIn) &&
		equalStringPtr(sl.Facebook, other.Facebook) &&
		equalStringPtr(sl.Twitter, other.Twitter)
}

func equalStringPtr(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// Member represents a community participant.
// MemberCode is the human-readable display identifier (JS-<year>-<seq>),
// assigned once at creation. MemberID is the opaque internal identifier.
// The code carries no uniqueness constraint: the year/sequence derivation
// can reuse a code after a same-year deletion (see DESIGN.md).
type Member struct {
	MemberID    string       `gorm:"primaryKey;column:member_id" json:"memberId"`
	MemberCode  string       `gorm:"column:member_code;not null;index" json:"memberCode"`
	MemberType  MemberType   `gorm:"column:member_type;not null" json:"memberType"`
	Name        string       `gorm:"column:name;not null" json:"name"`
	Email       string       `gorm:"column:email;not null" json:"email"`
	Phone       string       `gorm:"column:phone;not null" json:"phone"`
	City        string       `gorm:"column:city;not null" json:"city"`
	State       string       `gorm:"column:state;not null" json:"state"`
	Country     string       `gorm:"column:country;not null" json:"country"`
	Occupation  string       `gorm:"column:occupation;not null" json:"occupation"`
	DateOfBirth string       `gorm:"column:date_of_birth;not null" json:"dateOfBirth"`
	Status      MemberStatus `gorm:"column:status;not null" json:"status"`
	JoinDate    string       `gorm:"column:join_date;not null" json:"joinDate"`
	Bio         *string      `gorm:"column:bio" json:"bio,omitempty"`
	SocialLinks *SocialLinks `gorm:"column:social_links;type:jsonb" json:"socialLinks,omitempty"`
	BaseModel
}

// TableName sets the table name for GORM
func (Member) TableName() string {
	return "members"
}
