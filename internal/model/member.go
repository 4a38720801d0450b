// Package model 은 도메인 모델을 정의한다.
package model

import "time"

// Member 는 서비스 회원을 표현한다.
// Birthday 는 날짜만 의미를 가지며 시각 성분은 사용하지 않는다.
type Member struct {
	ID           string
	Email        string
	Nickname     string
	ProfileImg   string
	PasswordHash string
	Birthday     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session 은 회원의 로그인 세션을 표현한다.
type Session struct {
	ID        string
	MemberID  string
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// AccountSettings 는 회원 계정 설정(닉네임, 프로필 이미지)을 표현한다.
type AccountSettings struct {
	Nickname   string
	ProfileImg string
}
