package errors

import (
	"errors"
	"fmt"
)

// 표준 라이브러리 함수 재노출
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Error는 기본 에러 인터페이스를 확장합니다.
// 도메인 에러 타입도 Code()만 구현하면 HTTP/gRPC 매핑에 참여할 수 있습니다.
type Error interface {
	error
	Code() string
}

// PublicError는 클라이언트에 노출해도 되는 메시지와 코드보다 세분화된 유형을 제공합니다.
// 원인(cause) 에러의 내용은 PublicMessage에 포함되지 않습니다.
type PublicError interface {
	Error
	PublicMessage() string
	ErrorType() string
}

// AppError는 기본 에러 구현체입니다
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

// Message는 내부 원인을 제외한 메시지를 반환합니다
func (e *AppError) Message() string {
	return e.message
}

func (e *AppError) PublicMessage() string {
	return e.message
}

// ErrorType은 AppError에 세부 유형이 없으므로 코드를 그대로 반환합니다
func (e *AppError) ErrorType() string {
	return e.code
}

func (e *AppError) Unwrap() error {
	return e.err
}

// NewAppError는 새 애플리케이션 에러를 생성합니다
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// Wrap은 기존 에러를 래핑합니다. 코드가 있는 에러는 코드를 유지합니다.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return NewAppError(CodeOf(err), message, err)
}

// CodeOf는 에러 체인에서 가장 바깥쪽 코드를 찾습니다. 없으면 ErrInternal입니다.
func CodeOf(err error) string {
	var coded Error
	if As(err, &coded) {
		return coded.Code()
	}
	return ErrInternal
}

// TypeOf는 에러 체인에서 세부 유형을 찾습니다. 없으면 CodeOf 결과를 반환합니다.
func TypeOf(err error) string {
	var public PublicError
	if As(err, &public) {
		return public.ErrorType()
	}
	return CodeOf(err)
}
