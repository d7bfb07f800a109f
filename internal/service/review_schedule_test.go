package service

import (
	"testing"
	"time"
)

func TestNextReviewAt(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		masteryLevel int
		wantDays     int
	}{
		{"等级0立即到期", 0, 0},
		{"等级1间隔1天", 1, 1},
		{"等级2间隔3天", 2, 3},
		{"等级3间隔7天", 3, 7},
		{"等级4间隔14天", 4, 14},
		{"等级5间隔30天", 5, 30},
		{"负数等级回退30天", -1, 30},
		{"超出上限回退30天", 6, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextReviewAt(tt.masteryLevel, now)
			want := now.AddDate(0, 0, tt.wantDays)
			if !got.Equal(want) {
				t.Errorf("NextReviewAt(%d) = %v, want %v", tt.masteryLevel, got, want)
			}
		})
	}
}

func TestNextMasteryLevel(t *testing.T) {
	tests := []struct {
		name       string
		current    int
		wasCorrect bool
		want       int
	}{
		{"答对从0升到1", 0, true, 1},
		{"答对从4升到5", 4, true, 5},
		{"答对封顶5", 5, true, 5},
		{"答错从3归零", 3, false, 0},
		{"答错从0保持0", 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextMasteryLevel(tt.current, tt.wasCorrect); got != tt.want {
				t.Errorf("NextMasteryLevel(%d, %v) = %d, want %d", tt.current, tt.wasCorrect, got, tt.want)
			}
		})
	}
}
