package serviceutils

import (
	"github.com/labstack/echo/v4"
)

// GenericResponse is the envelope of every JSON answer of the API.
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func ResponseSuccess(c echo.Context, code int, msg string, data interface{}) error {
	return c.JSON(code, GenericResponse{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

func ResponseError(c echo.Context, code int, msg string, err error) error {
	return ResponseErrorWithData(c, code, msg, err, nil)
}

// ResponseErrorWithData reports a failure that still carries a payload,
// such as the per-object failures of a batch.
func ResponseErrorWithData(c echo.Context, code int, msg string, err error, data interface{}) error {
	resp := GenericResponse{
		Success: false,
		Message: msg,
		Data:    data,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return c.JSON(code, resp)
}
