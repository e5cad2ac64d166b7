package ocr

import (
	"reflect"
	"testing"
)

func TestOptionsLanguages(t *testing.T) {
	tests := []struct {
		lang string
		want []string
	}{
		{"", []string{"kor", "eng"}},
		{"eng", []string{"eng"}},
		{"kor + jpn+", []string{"kor", "jpn"}},
	}
	for _, tt := range tests {
		got := Options{Language: tt.lang}.languages()
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("languages(%q) = %v, want %v", tt.lang, got, tt.want)
		}
	}
}

func TestJoinLines(t *testing.T) {
	lines := []Line{
		{Text: " 표 1. 매출 현황\n", Confidence: 91},
		{Text: "~~", Confidence: 12},
		{Text: "  ", Confidence: 99},
		{Text: "단위: 백만원", Confidence: 60},
	}

	if got, want := joinLines(lines, 50), "표 1. 매출 현황\n단위: 백만원"; got != want {
		t.Errorf("joinLines(50) = %q, want %q", got, want)
	}
	if got, want := joinLines(lines, 0), "표 1. 매출 현황\n~~\n단위: 백만원"; got != want {
		t.Errorf("joinLines(0) = %q, want %q", got, want)
	}
	if got := joinLines(nil, 0); got != "" {
		t.Errorf("joinLines(nil) = %q, want empty", got)
	}
}
