package naming

import "testing"

func TestComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Button", "v-button"},
		{"Data Table", "v-data-table"},
		{"DataTable", "v-data-table"},
		{"v-btn", "v-btn"},
		{"V-Btn", "v-btn"},
		{"v-data-table", "v-data-table"},
		{"  Button  ", "v-button"},
		{"App Bar", "v-app-bar"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Component(tt.in); got != tt.want {
			t.Errorf("Component(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTagPattern(t *testing.T) {
	got := TagPattern.FindAllString("use v-btn with v-data-table and V-Card", -1)
	want := []string{"v-btn", "v-data-table", "V-Card"}
	if len(got) != len(want) {
		t.Fatalf("matches = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCamelPattern(t *testing.T) {
	got := CamelPattern.FindAllString("How does DataTable compare to Color options", -1)
	if len(got) != 1 || got[0] != "DataTable" {
		t.Errorf("matches = %q, want only DataTable", got)
	}
}
