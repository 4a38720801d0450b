// Package validation 은 요청 DTO 검증 기능을 제공한다.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jiyun/decoratemycake/internal/model"
)

// Validator 는 go-playground/validator 를 감싸 검증 실패를
// model.APIError(VALIDATION_FAILED)로 변환한다.
type Validator struct {
	validate *validator.Validate
}

// New 는 JSON 태그명을 필드명으로 사용하는 Validator 를 생성한다.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct 는 구조체를 검증하고, 실패 시 첫 번째 위반 필드를 담은
// VALIDATION_FAILED 에러를 반환한다.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !asValidationErrors(err, &verrs) || len(verrs) == 0 {
		return model.NewValidationFailedError(err.Error())
	}

	fe := verrs[0]
	return model.NewValidationFailedError(fieldMessage(fe))
}

// fieldMessage 는 위반 태그별 한국어 안내 문구를 만든다.
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s 은(는) 필수 항목입니다", field)
	case "email":
		return fmt.Sprintf("%s 형식이 올바르지 않습니다", field)
	case "min":
		return fmt.Sprintf("%s 은(는) 최소 %s자 이상이어야 합니다", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s 은(는) 최대 %s자 이하여야 합니다", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s 값이 허용되지 않습니다", field)
	default:
		return fmt.Sprintf("%s 값이 올바르지 않습니다", field)
	}
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}
