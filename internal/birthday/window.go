// Package birthday 는 생일 기준 공개 범위 판정을 위한 날짜 계산을 제공한다.
package birthday

import "time"

// RevealWindowDays 는 공개 범위 분기 기준이다.
// 생일까지 30일 이하로 남으면 케이크를 부분 공개한다.
const RevealWindowDays = 30

// Window 는 오늘과 생일의 관계를 분류한 결과다.
type Window struct {
	// DaysUntil 은 오늘부터 다음 생일까지 남은 일 수.
	// 생일 당일에는 다음 해 생일까지의 일 수(365 또는 366)가 된다.
	DaysUntil int
	// Age 는 다음 생일 기준 나이(다음 생일 연도 - 출생 연도).
	Age int
	// IsToday 는 오늘이 생일 당일인지 여부.
	// 월/일 직접 비교로 판정하므로 윤년 전후에도 365일 프록시 판정과 달리 어긋나지 않는다.
	IsToday bool
	// NextBirthday 는 다음 생일 날짜.
	NextBirthday time.Time
}

// Classify 는 오늘 날짜와 생일(연도 포함)로 Window 를 계산한다.
// 시각과 타임존 성분은 무시하고 날짜 필드만 사용한다.
//
// 다음 생일은 올해의 생일이 아직 지나지 않았으면 올해, 지났거나 당일이면 내년이다.
// 2월 29일생은 평년에 3월 1일로 정규화되어 일 수 계산에 쓰이며,
// 당일 판정은 실제 2월 29일에만 참이 된다.
func Classify(today, birthday time.Time) Window {
	t := truncateToDate(today)
	thisYear := time.Date(t.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)

	next := thisYear
	if !t.Before(thisYear) {
		next = time.Date(t.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	}

	return Window{
		DaysUntil:    int(next.Sub(t).Hours() / 24),
		Age:          next.Year() - birthday.Year(),
		IsToday:      t.Month() == birthday.Month() && t.Day() == birthday.Day(),
		NextBirthday: next,
	}
}

// InRevealWindow 는 생일까지 30일 이하로 남았는지(당일 제외) 반환한다.
func (w Window) InRevealWindow() bool {
	return !w.IsToday && w.DaysUntil >= 0 && w.DaysUntil <= RevealWindowDays
}

// truncateToDate 는 시각 성분을 제거하고 UTC 자정의 날짜로 정규화한다.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
