package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/timeeasy/backend/pkg/db/models"
	"github.com/timeeasy/backend/pkg/enums"
	pkgerrors "github.com/timeeasy/backend/pkg/errors"
)

const (
	// timestampInputLayout is the accepted client format (minute precision).
	timestampInputLayout = "2006-01-02T15:04"

	reasonMaxLen         = 100
	additionalInfoMaxLen = 255
)

// maxDuration is the first value that no longer fits numeric(5,2).
var maxDuration = decimal.NewFromInt(1000)

// RecordPayload is the untyped client payload for create and update. Caller
// supplied user_id and name are deliberately not part of this shape; the
// owner is stamped by the service and a record's name snapshot is immutable.
type RecordPayload struct {
	Category       *string         `json:"leave_or_overtime"`
	Type           *string         `json:"leave_or_overtime_type"`
	Reason         *string         `json:"reason"`
	StartTime      *string         `json:"start_time"`
	EndTime        *string         `json:"end_time"`
	Duration       json.RawMessage `json:"leave_duration"`
	AdditionalInfo *string         `json:"additional_info"`
}

// RecordFields is a validated candidate produced from a full payload.
type RecordFields struct {
	Category       enums.RecordCategory
	Type           enums.RecordType
	Reason         *string
	StartTime      time.Time
	EndTime        time.Time
	Duration       decimal.Decimal
	AdditionalInfo *string
}

// ValidateCreate checks all required fields and returns the validated
// candidate, or the first validation failure encountered.
func (p RecordPayload) ValidateCreate() (*RecordFields, error) {
	if p.Category == nil {
		return nil, missingField("leave_or_overtime")
	}
	if p.Type == nil {
		return nil, missingField("leave_or_overtime_type")
	}
	if p.StartTime == nil {
		return nil, missingField("start_time")
	}
	if p.EndTime == nil {
		return nil, missingField("end_time")
	}
	if len(p.Duration) == 0 {
		return nil, missingField("leave_duration")
	}

	category, err := parseCategory(*p.Category)
	if err != nil {
		return nil, err
	}
	recordType, err := parseType(*p.Type)
	if err != nil {
		return nil, err
	}
	startTime, err := parseTimestamp("start_time", *p.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := parseTimestamp("end_time", *p.EndTime)
	if err != nil {
		return nil, err
	}
	duration, err := parseDuration(p.Duration)
	if err != nil {
		return nil, err
	}
	if err := checkCap("reason", p.Reason, reasonMaxLen); err != nil {
		return nil, err
	}
	if err := checkCap("additional_info", p.AdditionalInfo, additionalInfoMaxLen); err != nil {
		return nil, err
	}

	return &RecordFields{
		Category:       category,
		Type:           recordType,
		Reason:         p.Reason,
		StartTime:      startTime,
		EndTime:        endTime,
		Duration:       duration,
		AdditionalInfo: p.AdditionalInfo,
	}, nil
}

// ApplyTo merges the present payload fields over the stored record,
// re-validating each supplied value. Absent fields keep their stored values.
// The record is only mutated when every supplied field validates.
func (p RecordPayload) ApplyTo(record *models.LeaveOvertime) error {
	patched := *record

	if p.Category != nil {
		category, err := parseCategory(*p.Category)
		if err != nil {
			return err
		}
		patched.Category = category
	}
	if p.Type != nil {
		recordType, err := parseType(*p.Type)
		if err != nil {
			return err
		}
		patched.Type = recordType
	}
	if p.StartTime != nil {
		startTime, err := parseTimestamp("start_time", *p.StartTime)
		if err != nil {
			return err
		}
		patched.StartTime = startTime
	}
	if p.EndTime != nil {
		endTime, err := parseTimestamp("end_time", *p.EndTime)
		if err != nil {
			return err
		}
		patched.EndTime = endTime
	}
	if len(p.Duration) > 0 {
		duration, err := parseDuration(p.Duration)
		if err != nil {
			return err
		}
		patched.Duration = duration
	}
	if p.Reason != nil {
		if err := checkCap("reason", p.Reason, reasonMaxLen); err != nil {
			return err
		}
		patched.Reason = p.Reason
	}
	if p.AdditionalInfo != nil {
		if err := checkCap("additional_info", p.AdditionalInfo, additionalInfoMaxLen); err != nil {
			return err
		}
		patched.AdditionalInfo = p.AdditionalInfo
	}

	*record = patched
	return nil
}

func missingField(field string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s is required", field)).
		WithDetails(map[string]any{"field": field})
}

func parseCategory(value string) (enums.RecordCategory, error) {
	category, err := enums.ParseRecordCategory(value)
	if err != nil {
		return "", invalidEnum("leave_or_overtime", value)
	}
	return category, nil
}

func parseType(value string) (enums.RecordType, error) {
	recordType, err := enums.ParseRecordType(value)
	if err != nil {
		return "", invalidEnum("leave_or_overtime_type", value)
	}
	return recordType, nil
}

func invalidEnum(field, value string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s value", field)).
		WithDetails(map[string]any{"field": field, "value": value})
}

func parseTimestamp(field, value string) (time.Time, error) {
	parsed, err := time.Parse(timestampInputLayout, value)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("invalid %s, expected format %s", field, timestampInputLayout)).
			WithDetails(map[string]any{"field": field, "value": value})
	}
	return parsed, nil
}

// parseDuration accepts a JSON number or a quoted numeric string, normalizes
// it to two fractional digits, and rejects values outside numeric(5,2).
func parseDuration(raw json.RawMessage) (decimal.Decimal, error) {
	text := string(bytes.Trim(bytes.TrimSpace(raw), `"`))
	value, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, invalidDuration(text)
	}
	value = value.Round(2)
	if value.IsNegative() || value.GreaterThanOrEqual(maxDuration) {
		return decimal.Zero, invalidDuration(text)
	}
	return value, nil
}

func invalidDuration(value string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid leave_duration").
		WithDetails(map[string]any{"field": "leave_duration", "value": value})
}

func checkCap(field string, value *string, max int) error {
	if value == nil || len(*value) <= max {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation,
		fmt.Sprintf("%s exceeds %d characters", field, max)).
		WithDetails(map[string]any{"field": field, "max": max})
}
