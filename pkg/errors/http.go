package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ToHTTPStatus는 에러 코드를 HTTP 상태 코드로 변환합니다
func ToHTTPStatus(code string) int {
	httpStatus, _ := GetCodeMapping(code)
	return httpStatus
}

// ToHTTPError는 에러를 Echo HTTP 에러로 변환합니다
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	// Echo 에러인 경우 그대로 반환
	var echoErr *echo.HTTPError
	if As(err, &echoErr) {
		return echoErr
	}

	// 5xx 응답에는 내부 원인 메시지를 노출하지 않음
	var coded Error
	if As(err, &coded) {
		httpStatus := ToHTTPStatus(coded.Code())
		if httpStatus >= http.StatusInternalServerError {
			return echo.NewHTTPError(httpStatus, http.StatusText(httpStatus))
		}
		// 4xx 응답도 원인 에러(드라이버 메시지 등)는 제외
		if public, ok := coded.(PublicError); ok {
			return echo.NewHTTPError(httpStatus, public.PublicMessage())
		}
		return echo.NewHTTPError(httpStatus, http.StatusText(httpStatus))
	}

	// 코드가 없는 에러는 내부 정보를 노출하지 않고 500으로 처리
	return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// CodeFromHTTPStatus는 HTTP 상태 코드를 내부 에러 코드로 변환합니다
func CodeFromHTTPStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusMethodNotAllowed:
		return ErrInvalidArgument
	case http.StatusConflict:
		return ErrConflict
	case http.StatusGatewayTimeout:
		return ErrTimeout
	case http.StatusServiceUnavailable:
		return ErrUnavailable
	default:
		return ErrInternal
	}
}
