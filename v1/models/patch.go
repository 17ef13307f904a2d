package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MemberPatch is a structured partial view of a Member: one optional slot per
// mutable field. It replaces untyped key/value bags for requested changes and
// for the before/after captures on change logs, so only real Member fields can
// ever be diffed or merged.
type MemberPatch struct {
	MemberType  *MemberType   `json:"memberType,omitempty"`
	Name        *string       `json:"name,omitempty"`
	Email       *string       `json:"email,omitempty"`
	Phone       *string       `json:"phone,omitempty"`
	City        *string       `json:"city,omitempty"`
	State       *string       `json:"state,omitempty"`
	Country     *string       `json:"country,omitempty"`
	Occupation  *string       `json:"occupation,omitempty"`
	DateOfBirth *string       `json:"dateOfBirth,omitempty"`
	Status      *MemberStatus `json:"status,omitempty"`
	Bio         *string       `json:"bio,omitempty"`
	SocialLinks *SocialLinks  `json:"socialLinks,omitempty"`
}

// Scan implements the sql.Scanner interface for MemberPatch
func (p *MemberPatch) Scan(value interface{}) error {
	if value == nil {
		*p = MemberPatch{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into MemberPatch", value)
	}

	return json.Unmarshal(bytes, p)
}

// Value implements the driver.Valuer interface for MemberPatch
func (p MemberPatch) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// GormDataType gorm common data type
func (MemberPatch) GormDataType() string {
	return "jsonb"
}

// Validate rejects patches whose enum slots carry unknown values. String
// slots are free-form and never validated here.
func (p MemberPatch) Validate() error {
	if p.MemberType != nil && !p.MemberType.IsValid() {
		return fmt.Errorf("invalid member type: %s", *p.MemberType)
	}
	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", *p.Status)
	}
	return nil
}

// IsEmpty reports whether no field slot is set
func (p MemberPatch) IsEmpty() bool {
	return p.MemberType == nil &&
		p.Name == nil &&
		p.Email == nil &&
		p.Phone == nil &&
		p.City == nil &&
		p.State == nil &&
		p.Country == nil &&
		p.Occupation == nil &&
		p.DateOfBirth == nil &&
		p.Status == nil &&
		p.Bio == nil &&
		p.SocialLinks == nil
}

// DiffAgainst returns the subset of p whose values actually differ from the
// member's current values (the minimal diff). Social links are compared by
// value, not by reference, so an identical proposed link set never produces
// a spurious diff entry.
func (p MemberPatch) DiffAgainst(m *Member) MemberPatch {
	var diff MemberPatch
	if p.MemberType != nil && *p.MemberType != m.MemberType {
		diff.MemberType = p.MemberType
	}
	if p.Name != nil && *p.Name != m.Name {
		diff.Name = p.Name
	}
	if p.Email != nil && *p.Email != m.Email {
		diff.Email = p.Email
	}
	if p.Phone != nil && *p.Phone != m.Phone {
		diff.Phone = p.Phone
	}
	if p.City != nil && *p.City != m.City {
		diff.City = p.City
	}
	if p.State != nil && *p.State != m.State {
		diff.State = p.State
	}
	if p.Country != nil && *p.Country != m.Country {
		diff.Country = p.Country
	}
	if p.Occupation != nil && *p.Occupation != m.Occupation {
		diff.Occupation = p.Occupation
	}
	if p.DateOfBirth != nil && *p.DateOfBirth != m.DateOfBirth {
		diff.DateOfBirth = p.DateOfBirth
	}
	if p.Status != nil && *p.Status != m.Status {
		diff.Status = p.Status
	}
	if p.Bio != nil && !equalStringPtr(p.Bio, m.Bio) {
		diff.Bio = p.Bio
	}
	if p.SocialLinks != nil && !p.SocialLinks.Equal(m.SocialLinks) {
		diff.SocialLinks = p.SocialLinks
	}
	return diff
}

// PreviousFrom captures the member's current values for exactly the fields
// set in p. Optional fields absent on the member stay absent in the capture.
func (p MemberPatch) PreviousFrom(m *Member) MemberPatch {
	var prev MemberPatch
	if p.MemberType != nil {
		t := m.MemberType
		prev.MemberType = &t
	}
	if p.Name != nil {
		v := m.Name
		prev.Name = &v
	}
	if p.Email != nil {
		v := m.Email
		prev.Email = &v
	}
	if p.Phone != nil {
		v := m.Phone
		prev.Phone = &v
	}
	if p.City != nil {
		v := m.City
		prev.City = &v
	}
	if p.State != nil {
		v := m.State
		prev.State = &v
	}
	if p.Country != nil {
		v := m.Country
		prev.Country = &v
	}
	if p.Occupation != nil {
		v := m.Occupation
		prev.Occupation = &v
	}
	if p.DateOfBirth != nil {
		v := m.DateOfBirth
		prev.DateOfBirth = &v
	}
	if p.Status != nil {
		s := m.Status
		prev.Status = &s
	}
	if p.Bio != nil && m.Bio != nil {
		v := *m.Bio
		prev.Bio = &v
	}
	if p.SocialLinks != nil && m.SocialLinks != nil {
		links := *m.SocialLinks
		prev.SocialLinks = &links
	}
	return prev
}

// ApplyTo merges every set field of p onto the member in place
func (p MemberPatch) ApplyTo(m *Member) {
	if p.MemberType != nil {
		m.MemberType = *p.MemberType
	}
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.Phone != nil {
		m.Phone = *p.Phone
	}
	if p.City != nil {
		m.City = *p.City
	}
	if p.State != nil {
		m.State = *p.State
	}
	if p.Country != nil {
		m.Country = *p.Country
	}
	if p.Occupation != nil {
		m.Occupation = *p.Occupation
	}
	if p.DateOfBirth != nil {
		m.DateOfBirth = *p.DateOfBirth
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.Bio != nil {
		v := *p.Bio
		m.Bio = &v
	}
	if p.SocialLinks != nil {
		links := *p.SocialLinks
		m.SocialLinks = &links
	}
}

// SnapshotPatch captures the full current state of a member as a patch.
// Used for the before/after captures on approved_request, admin_added and
// member_deleted change logs, which record whole objects rather than diffs.
func SnapshotPatch(m *Member) MemberPatch {
	// Copy into locals so later mutations of the member cannot reach into
	// an already-captured snapshot.
	memberType := m.MemberType
	name := m.Name
	email := m.Email
	phone := m.Phone
	city := m.City
	state := m.State
	country := m.Country
	occupation := m.Occupation
	dateOfBirth := m.DateOfBirth
	status := m.Status
	snap := MemberPatch{
		MemberType:  &memberType,
		Name:        &name,
		Email:       &email,
		Phone:       &phone,
		City:        &city,
		State:       &state,
		Country:     &country,
		Occupation:  &occupation,
		DateOfBirth: &dateOfBirth,
		Status:      &status,
	}
	if m.Bio != nil {
		v := *m.Bio
		snap.Bio = &v
	}
	if m.SocialLinks != nil {
		links := *m.SocialLinks
		snap.SocialLinks = &links
	}
	return snap
}
