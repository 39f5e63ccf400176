package enums

import "fmt"

// RecordCategory mirrors the leave_or_overtime enum column.
type RecordCategory string

const (
	RecordCategoryLeave    RecordCategory = "leave"
	RecordCategoryOvertime RecordCategory = "overtime"
)

var validRecordCategories = []RecordCategory{
	RecordCategoryLeave,
	RecordCategoryOvertime,
}

// String implements fmt.Stringer.
func (c RecordCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known RecordCategory.
func (c RecordCategory) IsValid() bool {
	for _, candidate := range validRecordCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseRecordCategory converts raw input into a RecordCategory. Matching is
// case-sensitive: only the exact enum literals are accepted.
func ParseRecordCategory(value string) (RecordCategory, error) {
	for _, candidate := range validRecordCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid record category %q", value)
}

// RecordType mirrors the leave_or_overtime_type enum column.
type RecordType string

const (
	RecordTypeWeekdayOvertime   RecordType = "weekday_overtime"
	RecordTypeWeekendOvertime   RecordType = "weekend_overtime"
	RecordTypeHolidayOvertime   RecordType = "holiday_overtime"
	RecordTypePersonalLeave     RecordType = "personal_leave"
	RecordTypeSickLeave         RecordType = "sick_leave"
	RecordTypeMarriageLeave     RecordType = "marriage_leave"
	RecordTypeCompensationLeave RecordType = "compensation_leave"
)

var validRecordTypes = []RecordType{
	RecordTypeWeekdayOvertime,
	RecordTypeWeekendOvertime,
	RecordTypeHolidayOvertime,
	RecordTypePersonalLeave,
	RecordTypeSickLeave,
	RecordTypeMarriageLeave,
	RecordTypeCompensationLeave,
}

// String implements fmt.Stringer.
func (t RecordType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known RecordType.
func (t RecordType) IsValid() bool {
	for _, candidate := range validRecordTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseRecordType converts raw input into a RecordType (case-sensitive).
func ParseRecordType(value string) (RecordType, error) {
	for _, candidate := range validRecordTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid record type %q", value)
}
