package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// minPasswordLength 는 회원 가입 시 허용하는 최소 비밀번호 길이.
const minPasswordLength = 8

// HashPassword 는 평문 비밀번호를 bcrypt 해시로 변환한다.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("비밀번호 해시 생성 실패: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword 는 평문 비밀번호와 저장된 해시를 비교한다.
// 일치하지 않으면 에러를 반환한다.
func VerifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
