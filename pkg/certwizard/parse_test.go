package certwizard

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseRecordsCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Row
	}{
		{
			name:  "Basic CSV",
			input: "Full name,email,role\nJohn Doe,john@x.com,winner\nJane,jane@x.com,speaker\n",
			expected: []Row{
				{"full name": "John Doe", "email": "john@x.com", "role": "winner"},
				{"full name": "Jane", "email": "jane@x.com", "role": "speaker"},
			},
		},
		{
			name:  "Headers are lower-cased and trimmed",
			input: " NAME , Email ,ROLE\nAnn,a@b.com,winner\n",
			expected: []Row{
				{"name": "Ann", "email": "a@b.com", "role": "winner"},
			},
		},
		{
			name:  "Quoted fields are stripped",
			input: "name,email,role\n\"Ann Lee\",'a@b.com',winner\n",
			expected: []Row{
				{"name": "Ann Lee", "email": "a@b.com", "role": "winner"},
			},
		},
		{
			name:  "Missing trailing fields default to empty",
			input: "name,email,role,place\nAnn,a@b.com,winner\n",
			expected: []Row{
				{"name": "Ann", "email": "a@b.com", "role": "winner", "place": ""},
			},
		},
		{
			name:  "Duplicate headers are renamed",
			input: "name,name,role\nAnn,Lee,winner\n",
			expected: []Row{
				{"name": "Ann", "name_2": "Lee", "role": "winner"},
			},
		},
		{
			name:  "Trailing empty lines are skipped",
			input: "name,email,role\nAnn,a@b.com,winner\n,,\n",
			expected: []Row{
				{"name": "Ann", "email": "a@b.com", "role": "winner"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseRecords([]byte(tt.input), FormatCSV)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(rows, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, rows)
			}
		})
	}
}

func TestParseRecordsHeaderOnly(t *testing.T) {
	_, err := ParseRecords([]byte("name,email,role\n"), FormatCSV)

	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestParseRecordsUnsupportedFormat(t *testing.T) {
	_, err := ParseRecords([]byte("whatever"), Format("docx"))

	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestParseRecordsXLSX(t *testing.T) {
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	cells := [][]interface{}{
		{"Full name", "Email", "Role", "Place"},
		{"John Doe", "john@x.com", "winner", 1},
		{"Jane", "jane@x.com", "speaker", nil},
	}
	for i, rowCells := range cells {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := wb.SetSheetRow(sheet, cell, &rowCells); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		t.Fatal(err)
	}

	rows, err := ParseRecords(buf.Bytes(), FormatXLSX)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []Row{
		{"full name": "John Doe", "email": "john@x.com", "role": "winner", "place": "1"},
		{"full name": "Jane", "email": "jane@x.com", "role": "speaker", "place": ""},
	}
	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("expected %v, got %v", expected, rows)
	}
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		expected Format
		wantErr  bool
	}{
		{"participants.csv", FormatCSV, false},
		{"Participants.CSV", FormatCSV, false},
		{"participants.xlsx", FormatXLSX, false},
		{"participants.pdf", "", true},
		{"participants", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			format, err := FormatFromFilename(tt.filename)
			if tt.wantErr {
				var formatErr *FormatError
				if !errors.As(err, &formatErr) {
					t.Fatalf("expected FormatError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if format != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, format)
			}
		})
	}
}
