package domain

import "fmt"

// ActionCode — код ошибки валидации действия игрока.
type ActionCode string

const (
	ErrCodeInsufficientFunds ActionCode = "INSUFFICIENT_FUNDS"
	ErrCodeInvalidPlacement  ActionCode = "INVALID_PLACEMENT"
	ErrCodeTooClose          ActionCode = "TOO_CLOSE"
	ErrCodeNotRevealed       ActionCode = "NOT_REVEALED"
	ErrCodeOutOfRange        ActionCode = "OUT_OF_RANGE"
	ErrCodeNotOwner          ActionCode = "NOT_OWNER"
	ErrCodeTargetOccupied    ActionCode = "TARGET_OCCUPIED"
	ErrCodeAlreadyUpgraded   ActionCode = "ALREADY_UPGRADED"
	ErrCodeNotYourTurn       ActionCode = "NOT_YOUR_TURN"
	ErrCodeAlreadyActed      ActionCode = "ALREADY_ACTED"
)

// ActionError — типизированная ошибка применения действия.
// Такая ошибка локальна и восстановима: состояние движка не изменилось,
// игрок может попробовать другое действие.
type ActionError struct {
	Code ActionCode
	Msg  string
}

func (e *ActionError) Error() string {
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// NewActionError создаёт типизированную ошибку с форматированным сообщением.
func NewActionError(code ActionCode, format string, args ...any) *ActionError {
	return &ActionError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// IsActionCode проверяет, что err — ActionError с данным кодом.
func IsActionCode(err error, code ActionCode) bool {
	ae, ok := err.(*ActionError)
	return ok && ae.Code == code
}
