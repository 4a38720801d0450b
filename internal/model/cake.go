// Package model 은 도메인 모델을 정의한다.
package model

import "time"

// Cake 는 회원이 연도별로 하나씩 가지는 생일 케이크를 표현한다.
// (Email, CreatedYear) 조합은 저장 계층의 유니크 제약으로 보장된다.
type Cake struct {
	ID                     string
	MemberID               string
	Email                  string
	Name                   string
	CreatedYear            int
	CandleCreatePermission CandleCreatePermission
	CandleViewPermission   CandleViewPermission
	CandleCountPermission  CandleCountPermission
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Candle 은 케이크에 남겨진 장식 메시지를 표현한다.
// IsPrivate 는 원본 데이터 호환을 위해 텍스트("true"/"false")로 저장하며,
// 응답 조립 시점에 불리언으로 파싱한다.
type Candle struct {
	ID        string
	CakeID    string
	Name      string
	Title     string
	Content   string
	Writer    string
	IsPrivate string
	CreatedAt time.Time
}

// CandleCreatePermission 은 캔들 작성 권한을 표현한다.
type CandleCreatePermission string

const (
	// CandleCreateEveryone 은 로그인한 누구나 캔들을 작성할 수 있음을 나타낸다.
	CandleCreateEveryone CandleCreatePermission = "EVERYONE"
	// CandleCreateOwnerOnly 는 케이크 소유자만 캔들을 작성할 수 있음을 나타낸다.
	CandleCreateOwnerOnly CandleCreatePermission = "OWNER_ONLY"
	// CandleCreateNone 은 캔들 작성이 비활성화된 상태를 나타낸다.
	CandleCreateNone CandleCreatePermission = "NONE"
)

// Valid 는 허용된 값인지 검증한다.
func (p CandleCreatePermission) Valid() bool {
	switch p {
	case CandleCreateEveryone, CandleCreateOwnerOnly, CandleCreateNone:
		return true
	default:
		return false
	}
}

// CandleViewPermission 은 캔들 열람 권한을 표현한다.
// 현재 조회 경로에서는 응답에 실어 내보내기만 하고 열람 차단에는 사용하지 않는다.
type CandleViewPermission string

const (
	// CandleViewEveryone 은 누구나 캔들을 열람할 수 있음을 나타낸다.
	CandleViewEveryone CandleViewPermission = "EVERYONE"
	// CandleViewOwnerOnly 는 케이크 소유자만 캔들을 열람할 수 있음을 나타낸다.
	CandleViewOwnerOnly CandleViewPermission = "OWNER_ONLY"
)

// Valid 는 허용된 값인지 검증한다.
func (p CandleViewPermission) Valid() bool {
	switch p {
	case CandleViewEveryone, CandleViewOwnerOnly:
		return true
	default:
		return false
	}
}

// CandleCountPermission 은 캔들 개수 공개 여부를 표현한다.
// 선언만 되어 있고 조회 경로에서는 아직 참조하지 않는다.
type CandleCountPermission string

const (
	// CandleCountEveryone 은 누구에게나 캔들 개수를 공개함을 나타낸다.
	CandleCountEveryone CandleCountPermission = "EVERYONE"
	// CandleCountOwnerOnly 는 소유자에게만 캔들 개수를 공개함을 나타낸다.
	CandleCountOwnerOnly CandleCountPermission = "OWNER_ONLY"
	// CandleCountNone 은 캔들 개수를 공개하지 않음을 나타낸다.
	CandleCountNone CandleCountPermission = "NONE"
)

// Valid 는 허용된 값인지 검증한다.
func (p CandleCountPermission) Valid() bool {
	switch p {
	case CandleCountEveryone, CandleCountOwnerOnly, CandleCountNone:
		return true
	default:
		return false
	}
}

// CakeSetting 은 케이크의 세 가지 권한 설정 묶음이다.
type CakeSetting struct {
	CandleCreatePermission CandleCreatePermission
	CandleViewPermission   CandleViewPermission
	CandleCountPermission  CandleCountPermission
}
