package certwizard

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidateRow(t *testing.T) {
	tests := []struct {
		name     string
		row      Row
		expected *Participant
	}{
		{
			name: "Valid row",
			row:  Row{"full name": "John Doe", "email": "john@x.com", "role": "winner", "place": "1"},
			expected: &Participant{
				FullName: "John Doe",
				Email:    "john@x.com",
				Role:     RoleWinner,
				Place:    "1",
			},
		},
		{
			name: "Role is matched case-insensitively",
			row:  Row{"name": "Ann", "email": "a@b.com", "role": "WINNER"},
			expected: &Participant{
				FullName: "Ann",
				Email:    "a@b.com",
				Role:     RoleWinner,
			},
		},
		{
			name: "Name resolved through snake_case alias",
			row:  Row{"full_name": "Ann", "email": "a@b.com", "role": "speaker"},
			expected: &Participant{
				FullName: "Ann",
				Email:    "a@b.com",
				Role:     RoleSpeaker,
			},
		},
		{
			name: "Localized headers",
			row:  Row{"фио": "Анна", "почта": "a@b.com", "роль": "participant", "место": ""},
			expected: &Participant{
				FullName: "Анна",
				Email:    "a@b.com",
				Role:     RoleParticipant,
			},
		},
		{
			name:     "Unknown role rejects the row",
			row:      Row{"name": "Ann", "email": "a@b.com", "role": "unknownrole"},
			expected: nil,
		},
		{
			name:     "Missing email rejects the row",
			row:      Row{"name": "Ann", "email": "", "role": "winner"},
			expected: nil,
		},
		{
			name:     "Missing name rejects the row",
			row:      Row{"email": "a@b.com", "role": "winner"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateRow(tt.row)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestValidateBatch(t *testing.T) {
	rows := []Row{
		{"full name": "John Doe", "email": "john@x.com", "role": "winner", "place": "1"},
		{"full name": "Bad Row", "email": "notanemail", "role": "unknownrole", "place": ""},
		{"full name": "Jane", "email": "jane@x.com", "role": "speaker", "place": ""},
		{"full name": "Ann", "email": "ann@x.com", "role": "winner", "place": "2"},
	}

	participants, summary, err := ValidateBatch(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(participants) != 3 {
		t.Fatalf("expected 3 accepted participants, got %d", len(participants))
	}
	if summary.Accepted != 3 || summary.Rejected != 1 {
		t.Errorf("expected accepted=3 rejected=1, got %+v", summary)
	}
	if !reflect.DeepEqual(summary.Roles, []string{"speaker", "winner"}) {
		t.Errorf("unexpected roles summary: %v", summary.Roles)
	}
	if !reflect.DeepEqual(summary.Places, []string{"1", "2"}) {
		t.Errorf("unexpected places summary: %v", summary.Places)
	}
}

func TestValidateBatchNoValidRows(t *testing.T) {
	rows := []Row{
		{"full name": "Ann", "email": "a@b.com", "role": "misspelled"},
		{"full name": "Lee", "email": "l@b.com", "role": "also-wrong"},
	}

	_, summary, err := ValidateBatch(rows)
	if !errors.Is(err, ErrNoValidRows) {
		t.Fatalf("expected ErrNoValidRows, got %v", err)
	}
	if summary.Rejected != 2 {
		t.Errorf("expected rejected=2, got %d", summary.Rejected)
	}
}

// End-to-end: parse then validate the example upload from the frontend docs.
func TestParseAndValidateEndToEnd(t *testing.T) {
	input := "Full name,email,role,place\nJohn Doe,john@x.com,winner,1\nBad Row,notanemail,unknownrole,\n"

	rows, err := ParseRecords([]byte(input), FormatCSV)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	participants, summary, err := ValidateBatch(rows)
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	expected := []Participant{
		{FullName: "John Doe", Email: "john@x.com", Role: RoleWinner, Place: "1"},
	}
	if !reflect.DeepEqual(participants, expected) {
		t.Errorf("expected %v, got %v", expected, participants)
	}
	if !reflect.DeepEqual(summary.Roles, []string{"winner"}) {
		t.Errorf("unexpected roles summary: %v", summary.Roles)
	}
	if !reflect.DeepEqual(summary.Places, []string{"1"}) {
		t.Errorf("unexpected places summary: %v", summary.Places)
	}
}
