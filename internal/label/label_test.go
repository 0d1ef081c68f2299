package label

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Label
		wantErr bool
	}{
		{in: "1", want: Comedy},
		{in: "0", want: Other},
		{in: " TRUE ", want: Comedy},
		{in: "false", want: Other},
		{in: "comedy", want: Comedy},
		{in: "Other", want: Other},
		{in: "yes", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLabelEncodings(t *testing.T) {
	if Comedy.CSV() != "1" || Other.CSV() != "0" {
		t.Fatalf("unexpected CSV encodings %q %q", Comedy.CSV(), Other.CSV())
	}
	if Comedy.String() != "comedy" || Other.String() != "other" {
		t.Fatalf("unexpected names %q %q", Comedy, Other)
	}
	if !FromBool(true).Bool() || FromBool(false).Bool() {
		t.Fatal("FromBool round trip failed")
	}
	if Label(2).Valid() {
		t.Fatal("Label(2) should be invalid")
	}
}
