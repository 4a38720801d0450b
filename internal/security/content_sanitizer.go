// Package security 는 사용자 입력 콘텐츠의 정화 기능을 제공한다.
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizer 는 캔들 제목/내용 등 사용자 입력 텍스트에서
// 스크립트와 HTML 태그를 제거한다.
type ContentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer 는 태그를 일절 허용하지 않는 정화기를 생성한다.
// 축하 메시지는 평문 텍스트만 저장한다.
func NewContentSanitizer() *ContentSanitizer {
	return &ContentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// SanitizeText 는 입력 문자열에서 HTML 태그와 스크립트를 제거하고
// 앞뒤 공백을 정리한다.
func (s *ContentSanitizer) SanitizeText(input string) string {
	cleaned := s.policy.Sanitize(input)
	return strings.TrimSpace(cleaned)
}
