// Package model 은 도메인 모델을 정의한다.
package model

import "fmt"

// APIError 는 통일 에러 포맷을 표현한다.
// UI에 표시할 원인 카테고리와 대처 방법을 포함한다.
type APIError struct {
	Code     string // 에러 코드
	Message  string // 에러 메시지
	Category string // 카테고리: auth, validation, cake, candle, system
	Action   string // 사용자 대처 방법
}

// Error 는 error 인터페이스를 구현한다.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 정의된 에러 코드
const (
	ErrCodeMemberNotFound        = "MEMBER_NOT_FOUND"
	ErrCodeEmailMismatch         = "EMAIL_MISMATCH"
	ErrCodeCakeAlreadyExists     = "CAKE_ALREADY_EXISTS"
	ErrCodeCakeNotFound          = "CAKE_NOT_FOUND"
	ErrCodeCandleCreateForbidden = "CANDLE_CREATE_FORBIDDEN"
	ErrCodeInvalidPermission     = "INVALID_PERMISSION"
	ErrCodeValidationFailed      = "VALIDATION_FAILED"
	ErrCodeEmailExists           = "EMAIL_EXISTS"
	ErrCodeInvalidCredentials    = "INVALID_CREDENTIALS"
	ErrCodeWeakPassword          = "WEAK_PASSWORD"
)

// NewMemberNotFoundError 는 회원 미존재 에러를 생성한다.
func NewMemberNotFoundError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeMemberNotFound,
		Message:  fmt.Sprintf("해당 이메일의 회원을 찾을 수 없습니다: %s", email),
		Category: "auth",
		Action:   "이메일 주소를 확인해 주세요.",
	}
}

// NewMemberNotFoundByIDError 는 회원 ID 기준 미존재 에러를 생성한다.
// 이메일이 아닌 세션의 회원 ID 로 조회하는 경로에서 사용한다.
func NewMemberNotFoundByIDError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeMemberNotFound,
		Message:  fmt.Sprintf("해당 회원을 찾을 수 없습니다: %s", id),
		Category: "auth",
		Action:   "로그인 상태를 확인한 뒤 다시 시도해 주세요.",
	}
}

// NewEmailMismatchError 는 인증된 이메일과 요청 이메일이 다를 때의 에러를 생성한다.
// 케이크 생성은 본인 케이크에 대해서만 허용된다.
func NewEmailMismatchError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailMismatch,
		Message:  "본인의 케이크만 생성할 수 있습니다.",
		Category: "auth",
		Action:   "로그인한 계정의 이메일로 요청해 주세요.",
	}
}

// NewCakeAlreadyExistsError 는 해당 연도의 케이크가 이미 존재할 때의 에러를 생성한다.
func NewCakeAlreadyExistsError(year int) *APIError {
	return &APIError{
		Code:     ErrCodeCakeAlreadyExists,
		Message:  fmt.Sprintf("%d년 케이크가 이미 존재합니다.", year),
		Category: "cake",
		Action:   "케이크는 연도별로 하나만 만들 수 있습니다.",
	}
}

// NewCakeNotFoundError 는 케이크 미존재 에러를 생성한다.
// 케이크 조회 경로에서는 케이크 부재가 에러가 아니므로 캔들 작성 경로에서만 사용한다.
func NewCakeNotFoundError(year int) *APIError {
	return &APIError{
		Code:     ErrCodeCakeNotFound,
		Message:  fmt.Sprintf("%d년 케이크를 찾을 수 없습니다.", year),
		Category: "cake",
		Action:   "케이크가 생성된 연도인지 확인해 주세요.",
	}
}

// NewCandleCreateForbiddenError 는 캔들 작성 권한이 없을 때의 에러를 생성한다.
func NewCandleCreateForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeCandleCreateForbidden,
		Message:  "이 케이크에는 캔들을 작성할 수 없습니다.",
		Category: "candle",
		Action:   "케이크 소유자의 캔들 작성 권한 설정을 확인해 주세요.",
	}
}

// NewInvalidPermissionError 는 허용되지 않은 권한 값 에러를 생성한다.
func NewInvalidPermissionError(field, value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPermission,
		Message:  fmt.Sprintf("허용되지 않은 권한 값입니다: %s=%s", field, value),
		Category: "validation",
		Action:   "EVERYONE, OWNER_ONLY, NONE 중 하나를 지정해 주세요.",
	}
}

// NewValidationFailedError 는 요청 필드 검증 실패 에러를 생성한다.
func NewValidationFailedError(detail string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("요청 값이 올바르지 않습니다: %s", detail),
		Category: "validation",
		Action:   "요청 필드를 확인한 뒤 다시 시도해 주세요.",
	}
}

// NewEmailExistsError 는 이미 가입된 이메일 에러를 생성한다.
func NewEmailExistsError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeEmailExists,
		Message:  fmt.Sprintf("이미 가입된 이메일입니다: %s", email),
		Category: "auth",
		Action:   "다른 이메일을 사용하거나 로그인해 주세요.",
	}
}

// NewInvalidCredentialsError 는 로그인 실패 에러를 생성한다.
// 이메일 부재와 비밀번호 불일치를 구분하지 않는다.
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "이메일 또는 비밀번호가 올바르지 않습니다.",
		Category: "auth",
		Action:   "입력한 정보를 확인한 뒤 다시 시도해 주세요.",
	}
}

// NewWeakPasswordError 는 비밀번호 강도 미달 에러를 생성한다.
func NewWeakPasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeWeakPassword,
		Message:  "비밀번호는 8자 이상이어야 합니다.",
		Category: "validation",
		Action:   "8자 이상의 비밀번호를 사용해 주세요.",
	}
}
