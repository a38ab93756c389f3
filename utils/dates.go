package utils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate đọc ngày dạng YYYY-MM-DD, trả về 00:00 UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}

// NormalizeDate bỏ phần giờ, giữ ngày theo UTC
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Today(now time.Time) time.Time {
	return NormalizeDate(now)
}

// Nights trả về số đêm giữa hai ngày đã chuẩn hóa
func Nights(start, end time.Time) int {
	return int(NormalizeDate(end).Sub(NormalizeDate(start)).Hours() / 24)
}

// RoundMoney làm tròn 2 chữ số thập phân
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
