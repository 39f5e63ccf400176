package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/timeeasy/backend/pkg/enums"
)

// LeaveOvertime is a single leave or overtime entry. Name is a denormalized
// snapshot of the owner's name at write time; it is never backfilled when the
// user later renames.
type LeaveOvertime struct {
	ID             uint                 `gorm:"column:id;primaryKey;autoIncrement"`
	UserID         uint                 `gorm:"column:user_id;not null;index"`
	Name           string               `gorm:"column:name;size:50;not null"`
	Category       enums.RecordCategory `gorm:"column:leave_or_overtime;size:20;not null"`
	Type           enums.RecordType     `gorm:"column:leave_or_overtime_type;size:30;not null"`
	Reason         *string              `gorm:"column:reason;size:100"`
	StartTime      time.Time            `gorm:"column:start_time;not null"`
	EndTime        time.Time            `gorm:"column:end_time;not null"`
	Duration       decimal.Decimal      `gorm:"column:leave_duration;type:numeric(5,2);not null"`
	AdditionalInfo *string              `gorm:"column:additional_info;size:255"`
}

// TableName keeps the historical table name.
func (LeaveOvertime) TableName() string {
	return "user_leave_overtime"
}
