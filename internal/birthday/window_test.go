package birthday

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestClassify_BeforeThisYearBirthday 는 올해 생일 전에는 올해 생일이 다음 생일이 됨을 검증한다.
func TestClassify_BeforeThisYearBirthday(t *testing.T) {
	// 생일 5월 10일, 오늘 3월 1일
	w := Classify(date(2025, time.March, 1), date(2000, time.May, 10))

	if w.NextBirthday != date(2025, time.May, 10) {
		t.Errorf("NextBirthday = %v, want 2025-05-10", w.NextBirthday)
	}
	if w.DaysUntil != 70 {
		t.Errorf("DaysUntil = %d, want 70", w.DaysUntil)
	}
	if w.Age != 25 {
		t.Errorf("Age = %d, want 25", w.Age)
	}
	if w.IsToday {
		t.Error("IsToday = true, want false")
	}
}

// TestClassify_AfterThisYearBirthday 는 올해 생일이 지나면 내년 생일이 다음 생일이 됨을 검증한다.
func TestClassify_AfterThisYearBirthday(t *testing.T) {
	// 생일 5월 10일, 오늘 6월 1일
	w := Classify(date(2025, time.June, 1), date(2000, time.May, 10))

	if w.NextBirthday != date(2026, time.May, 10) {
		t.Errorf("NextBirthday = %v, want 2026-05-10", w.NextBirthday)
	}
	if w.Age != 26 {
		t.Errorf("Age = %d, want 26", w.Age)
	}
	if w.IsToday {
		t.Error("IsToday = true, want false")
	}
}

// TestClassify_BirthdayToday 는 생일 당일의 판정을 검증한다.
// 다음 생일은 내년으로 넘어가며 나이는 내년 생일 기준으로 계산된다.
func TestClassify_BirthdayToday(t *testing.T) {
	w := Classify(date(2025, time.May, 10), date(2000, time.May, 10))

	if !w.IsToday {
		t.Fatal("IsToday = false, want true")
	}
	if w.NextBirthday != date(2026, time.May, 10) {
		t.Errorf("NextBirthday = %v, want 2026-05-10", w.NextBirthday)
	}
	if w.DaysUntil != 365 {
		t.Errorf("DaysUntil = %d, want 365", w.DaysUntil)
	}
	if w.Age != 26 {
		t.Errorf("Age = %d, want 26", w.Age)
	}
}

// TestClassify_365ProxyEquivalence 는 평년 구간에서
// "DaysUntil == 365" 프록시 판정과 월/일 직접 비교가 일치함을 검증한다.
func TestClassify_365ProxyEquivalence_NonLeapSpan(t *testing.T) {
	birth := date(1995, time.July, 20)
	for d := 0; d < 365; d++ {
		today := date(2025, time.March, 1).AddDate(0, 0, d)
		w := Classify(today, birth)

		proxy := w.DaysUntil == 365
		if proxy != w.IsToday {
			t.Errorf("today=%v: proxy(%v) != IsToday(%v)", today, proxy, w.IsToday)
		}
	}
}

// TestClassify_365ProxyBreaks_LeapSpan 는 다음 생일까지 윤일이 끼는 경우
// 365일 프록시가 생일 당일을 놓치는 것을 검증한다. 직접 비교는 올바르게 판정한다.
func TestClassify_365ProxyBreaks_LeapSpan(t *testing.T) {
	// 생일 5월 10일, 오늘 2027-05-10. 다음 생일 2028-05-10 까지는 윤일 포함 366일.
	w := Classify(date(2027, time.May, 10), date(2000, time.May, 10))

	if w.DaysUntil != 366 {
		t.Fatalf("DaysUntil = %d, want 366", w.DaysUntil)
	}
	if w.DaysUntil == 365 {
		t.Error("proxy should not equal 365 in a leap span")
	}
	if !w.IsToday {
		t.Error("IsToday = false, want true (direct month/day comparison)")
	}
}

// TestClassify_Feb29Birthday 는 2월 29일생의 판정을 검증한다.
// 평년에는 3월 1일로 정규화되어 일 수 계산에 쓰이지만 당일 판정은 되지 않는다.
func TestClassify_Feb29Birthday(t *testing.T) {
	birth := date(1996, time.February, 29)

	// 윤년의 2월 29일은 생일 당일
	w := Classify(date(2024, time.February, 29), birth)
	if !w.IsToday {
		t.Error("leap-year Feb 29 should be the birthday")
	}

	// 평년의 3월 1일(정규화된 날짜)은 생일 당일이 아님
	w = Classify(date(2025, time.March, 1), birth)
	if w.IsToday {
		t.Error("normalized Mar 1 must not count as the birthday")
	}
}

// TestClassify_YearBoundary 는 연말/연초 생일의 연도 경계 처리를 검증한다.
func TestClassify_YearBoundary(t *testing.T) {
	// 12월 31일생, 오늘 1월 1일 → 다음 생일은 올해 12월 31일
	w := Classify(date(2025, time.January, 1), date(1990, time.December, 31))
	if w.NextBirthday != date(2025, time.December, 31) {
		t.Errorf("NextBirthday = %v, want 2025-12-31", w.NextBirthday)
	}
	if w.DaysUntil != 364 {
		t.Errorf("DaysUntil = %d, want 364", w.DaysUntil)
	}

	// 1월 2일생, 오늘 12월 30일 → 다음 생일은 내년 1월 2일
	w = Classify(date(2025, time.December, 30), date(1990, time.January, 2))
	if w.NextBirthday != date(2026, time.January, 2) {
		t.Errorf("NextBirthday = %v, want 2026-01-02", w.NextBirthday)
	}
	if w.DaysUntil != 3 {
		t.Errorf("DaysUntil = %d, want 3", w.DaysUntil)
	}
}

// TestClassify_NextBirthdayNeverPast 는 다음 생일이 항상 오늘 이후임을 넓은 범위에서 검증한다.
func TestClassify_NextBirthdayNeverPast(t *testing.T) {
	birth := date(1992, time.November, 3)
	start := date(2024, time.January, 1)
	for d := 0; d < 800; d++ {
		today := start.AddDate(0, 0, d)
		w := Classify(today, birth)

		if w.NextBirthday.Before(today) {
			t.Fatalf("today=%v: NextBirthday %v is in the past", today, w.NextBirthday)
		}
		// 다음 생일은 올해 또는 내년 생일이어야 한다
		if w.NextBirthday.Year() != today.Year() && w.NextBirthday.Year() != today.Year()+1 {
			t.Fatalf("today=%v: NextBirthday %v is too far out", today, w.NextBirthday)
		}
		if w.DaysUntil < 0 || w.DaysUntil > 366 {
			t.Fatalf("today=%v: DaysUntil %d out of range", today, w.DaysUntil)
		}
	}
}

// TestWindow_InRevealWindow 는 부분 공개 구간 판정을 검증한다.
func TestWindow_InRevealWindow(t *testing.T) {
	birth := date(2000, time.May, 10)

	tests := []struct {
		name  string
		today time.Time
		want  bool
	}{
		{"45일 전", date(2025, time.March, 26), false},
		{"31일 전", date(2025, time.April, 9), false},
		{"30일 전", date(2025, time.April, 10), true},
		{"10일 전", date(2025, time.April, 30), true},
		{"하루 전", date(2025, time.May, 9), true},
		{"당일은 부분 공개가 아님", date(2025, time.May, 10), false},
		{"다음 날", date(2025, time.May, 11), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Classify(tt.today, birth)
			if got := w.InRevealWindow(); got != tt.want {
				t.Errorf("InRevealWindow() = %v, want %v (DaysUntil=%d)", got, tt.want, w.DaysUntil)
			}
		})
	}
}
