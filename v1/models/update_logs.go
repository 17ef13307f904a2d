package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberUpdateLog is an immutable audit record of one mutation to a member.
// Rows are write-once: nothing in the service layer updates or deletes them.
// PreviousData and NewData carry only the fields that changed, except for
// approved_request / admin_added / member_deleted entries which capture whole
// member snapshots by design.
type MemberUpdateLog struct {
	LogID        uuid.UUID   `gorm:"primaryKey;column:log_id" json:"logId"`
	MemberCode   string      `gorm:"column:member_code;not null;index:idx_member_update_logs_member_code" json:"memberCode"`
	MemberName   string      `gorm:"column:member_name;not null" json:"memberName"`
	AdminAction  string      `gorm:"column:admin_action;not null" json:"adminAction"`
	ChangeType   ChangeType  `gorm:"column:change_type;not null" json:"changeType"`
	PreviousData MemberPatch `gorm:"column:previous_data;type:jsonb" json:"previousData"`
	NewData      MemberPatch `gorm:"column:new_data;type:jsonb" json:"newData"`
	Timestamp    time.Time   `gorm:"column:timestamp;not null;index:idx_member_update_logs_timestamp" json:"timestamp"`
	Reason       *string     `gorm:"column:reason" json:"reason,omitempty"`
	RequestID    *string     `gorm:"column:request_id" json:"requestId,omitempty"`
	BaseModel
}

// TableName sets the table name for GORM
func (MemberUpdateLog) TableName() string {
	return "member_update_logs"
}

// BeforeCreate hook to set default values
func (l *MemberUpdateLog) BeforeCreate(tx *gorm.DB) error {
	if l.LogID == uuid.Nil {
		l.LogID = uuid.New()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	return l.BaseModel.BeforeCreate(tx)
}
