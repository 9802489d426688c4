package version

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    ThreadVersion
		wantErr bool
	}{
		{"1.3", ThreadVersion{1, 3}, false},
		{"1.3.0", ThreadVersion{1, 3}, false},
		{"1.4.1", ThreadVersion{1, 4}, false},
		{"2.0", ThreadVersion{2, 0}, false},
		{"1", ThreadVersion{}, true},
		{"", ThreadVersion{}, true},
		{"1.", ThreadVersion{}, true},
		{".3", ThreadVersion{}, true},
		{"a.b", ThreadVersion{}, true},
		{"1.2.3.4", ThreadVersion{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	v := ThreadVersion{Major: 1, Minor: 3}
	if v.String() != "1.3" {
		t.Errorf("unexpected string %q", v.String())
	}
}
