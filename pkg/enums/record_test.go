package enums

import "testing"

func TestParseRecordCategory(t *testing.T) {
	for _, value := range []string{"leave", "overtime"} {
		category, err := ParseRecordCategory(value)
		if err != nil {
			t.Fatalf("expected %q to parse: %v", value, err)
		}
		if !category.IsValid() {
			t.Fatalf("parsed category %q should be valid", category)
		}
	}

	for _, value := range []string{"vacation", "Leave", "LEAVE", ""} {
		if _, err := ParseRecordCategory(value); err == nil {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}

func TestParseRecordType(t *testing.T) {
	valid := []string{
		"weekday_overtime", "weekend_overtime", "holiday_overtime",
		"personal_leave", "sick_leave", "marriage_leave", "compensation_leave",
	}
	for _, value := range valid {
		recordType, err := ParseRecordType(value)
		if err != nil {
			t.Fatalf("expected %q to parse: %v", value, err)
		}
		if !recordType.IsValid() {
			t.Fatalf("parsed type %q should be valid", recordType)
		}
	}

	for _, value := range []string{"annual_leave", "Sick_Leave", ""} {
		if _, err := ParseRecordType(value); err == nil {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}
