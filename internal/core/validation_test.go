package core

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidateHeader(t *testing.T) {
	tests := []struct {
		name        string
		header      []string
		wantMissing []string
	}{
		{
			name:   "all required",
			header: []string{"name", "salary_from", "salary_to", "salary_currency", "area_name", "published_at"},
		},
		{
			name: "required plus extras",
			header: []string{"name", "description", "key_skills", "experience_id", "premium",
				"employer_name", "salary_from", "salary_to", "salary_gross",
				"salary_currency", "area_name", "published_at"},
		},
		{
			name:        "missing currency",
			header:      []string{"name", "salary_from", "salary_to", "area_name", "published_at"},
			wantMissing: []string{"salary_currency"},
		},
		{
			name:        "case matters",
			header:      []string{"Name", "salary_from", "salary_to", "salary_currency", "Area_Name", "published_at"},
			wantMissing: []string{"name", "area_name"},
		},
		{
			name:        "empty header",
			header:      nil,
			wantMissing: RequiredColumns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := ValidateHeader(tt.header)
			if tt.wantMissing == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				for _, col := range RequiredColumns {
					if _, ok := idx[col]; !ok {
						t.Errorf("index lacks %q", col)
					}
				}
				return
			}

			if !errors.Is(err, ErrMissingColumns) {
				t.Fatalf("error = %v, want ErrMissingColumns", err)
			}
			var mce *MissingColumnsError
			if !errors.As(err, &mce) {
				t.Fatalf("error is not *MissingColumnsError: %T", err)
			}
			if !reflect.DeepEqual(mce.Columns, tt.wantMissing) {
				t.Errorf("missing = %v, want %v", mce.Columns, tt.wantMissing)
			}
		})
	}
}

func TestMakeHeaderIndex_LastDuplicateWins(t *testing.T) {
	idx := MakeHeaderIndex([]string{"name", "area_name", "name"})
	if idx["name"] != 2 {
		t.Errorf("idx[name] = %d, want 2", idx["name"])
	}
	if idx["area_name"] != 1 {
		t.Errorf("idx[area_name] = %d, want 1", idx["area_name"])
	}
}

func TestKeep(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   bool
	}{
		{"complete row", []string{"a", "b", "c"}, true},
		{"whitespace counts as a value", []string{"a", " ", "c"}, true},
		{"empty field", []string{"a", "", "c"}, false},
		{"too few fields", []string{"a", "b"}, false},
		{"too many fields", []string{"a", "b", "c", "d"}, false},
		{"no fields", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Keep(3, tt.fields); got != tt.want {
				t.Errorf("Keep(3, %q) = %v, want %v", tt.fields, got, tt.want)
			}
		})
	}
}

func TestFilterRows(t *testing.T) {
	rows := []RawRow{
		{Line: 2, Fields: []string{"a", "b"}},
		{Line: 3, Fields: []string{"a", ""}},
		{Line: 4, Fields: []string{"a"}},
		{Line: 5, Fields: []string{"c", "d"}},
	}

	kept, dropped := FilterRows(2, rows)
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	if len(kept) != 2 || kept[0].Line != 2 || kept[1].Line != 5 {
		t.Errorf("kept = %+v, want lines 2 and 5 in order", kept)
	}
}
