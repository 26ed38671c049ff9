package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pfrederiksen/xoso-stats/internal/analysis"
)

func TestGanPost(t *testing.T) {
	stats := analysis.Gan([]string{"12", "34", "12", "56", "78"})
	post := GanPost(analysis.CompareSpecial, "17/10/2024", stats)

	wantParts := []string{
		"==== TOP GAN GĐB (17/10) ====\n\n",
		"Bộ: hai mươi ba\nDàn: 23,28,32,37,73,78,82,87\nLâu ra: bốn ngày\n---\n",
		"Đầu: bảy\n",
		"Con Giáp: Ngọ\n",
		"Kép: Không kép\n",
		"#xoso #thongke\n⛔ Chỉ mang tính chất tham khảo!",
	}
	for _, part := range wantParts {
		if !strings.Contains(post, part) {
			t.Errorf("GanPost() missing %q\n%s", part, post)
		}
	}
	if got := strings.Count(post, "---\n"); got != len(analysis.Dimensions) {
		t.Errorf("post has %d sections, want %d", got, len(analysis.Dimensions))
	}
}

func TestGanPost_FirstPrize(t *testing.T) {
	post := GanPost(analysis.CompareFirst, "17/10/2024", nil)
	if !strings.HasPrefix(post, "==== TOP GAN G1 (17/10) ====") {
		t.Errorf("GanPost() header = %q", strings.SplitN(post, "\n", 2)[0])
	}
}

func TestPriorityPost(t *testing.T) {
	records := []analysis.CycleRecord{
		analysis.Classify("14/10/2024", analysis.Combos("12"), nil, []int{1, 2, 3}),
		analysis.Classify("15/10/2024", analysis.Combos("34"), []int{1}, nil),
	}

	post := PriorityPost(records)
	if !strings.HasPrefix(post, "Có 1 dàn cần ưu tiên theo dõi") {
		t.Errorf("PriorityPost() = %q", post)
	}
	if !strings.Contains(post, "1. Thứ 2 14/10/2024: 11, 12, 21, 22 - Chưa ra (3 ngày kiểm tra) - Ưu tiên cao") {
		t.Errorf("PriorityPost() missing entry:\n%s", post)
	}
	if !strings.Contains(post, "Mức 1 (4 số): 11, 12, 21, 22") {
		t.Errorf("PriorityPost() missing level line:\n%s", post)
	}

	calm := PriorityPost(records[1:])
	if calm != "Tất cả các dàn đang trong chu kỳ bình thường" {
		t.Errorf("PriorityPost() without priorities = %q", calm)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"ngắn", 10, "ngắn"},
		{"Chỉ mang tính chất", 8, "Chỉ m..."},
		{"abcdef", 0, "abcdef"},
		{"abcdef", 2, "ab"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, 0).Print("một", "hai"); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "--- Post 1/2 ---\nmột\n\n(Length: 3 characters)\n") {
		t.Errorf("Print() output:\n%s", out)
	}
	if !strings.Contains(out, "--- Post 2/2 ---") {
		t.Errorf("Print() missing second post:\n%s", out)
	}
}
