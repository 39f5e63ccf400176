package records

import (
	"github.com/timeeasy/backend/pkg/db/models"
)

// timestampOutputLayout is the serialization format for record timestamps.
const timestampOutputLayout = "2006-01-02T15:04:05"

// RecordDTO is the wire shape of a leave/overtime record. Column names from
// the original schema are preserved in the JSON contract.
type RecordDTO struct {
	ID             uint    `json:"id"`
	UserID         uint    `json:"user_id"`
	Name           string  `json:"name"`
	Category       string  `json:"leave_or_overtime"`
	Type           string  `json:"leave_or_overtime_type"`
	Reason         *string `json:"reason"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Duration       string  `json:"leave_duration"`
	AdditionalInfo *string `json:"additional_info"`
}

// FromModel serializes a stored record. Duration always carries two
// fractional digits.
func FromModel(r *models.LeaveOvertime) *RecordDTO {
	if r == nil {
		return nil
	}
	return &RecordDTO{
		ID:             r.ID,
		UserID:         r.UserID,
		Name:           r.Name,
		Category:       r.Category.String(),
		Type:           r.Type.String(),
		Reason:         r.Reason,
		StartTime:      r.StartTime.Format(timestampOutputLayout),
		EndTime:        r.EndTime.Format(timestampOutputLayout),
		Duration:       r.Duration.StringFixed(2),
		AdditionalInfo: r.AdditionalInfo,
	}
}

// FromModels serializes a page of stored records.
func FromModels(rows []models.LeaveOvertime) []*RecordDTO {
	dtos := make([]*RecordDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, FromModel(&rows[i]))
	}
	return dtos
}
