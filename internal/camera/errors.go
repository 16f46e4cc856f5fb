package camera

import "fmt"

// Коды ошибок валидации конфигурации
const (
	CodeUnknownDevice   = "unknown_device"
	CodeUnsupportedMode = "unsupported_mode"
	CodeInvalidRotation = "invalid_rotation"
)

// ValidationError - ошибка валидации предложенной конфигурации.
// Содержит поле и код, достаточные для подсказки клиенту,
// но без внутренних идентификаторов.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func errUnknownDevice(device string) *ValidationError {
	return &ValidationError{
		Code:    CodeUnknownDevice,
		Field:   "device",
		Message: fmt.Sprintf("device %q is not available", device),
	}
}

func errUnsupportedMode(resolution Resolution, framerate int) *ValidationError {
	return &ValidationError{
		Code:    CodeUnsupportedMode,
		Field:   "resolution",
		Message: fmt.Sprintf("mode %s@%dfps is not supported by the device", resolution, framerate),
	}
}

func errInvalidRotation(rotation int) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidRotation,
		Field:   "rotation",
		Message: fmt.Sprintf("rotation must be 0, 90, 180 or 270, got %d", rotation),
	}
}
