package handlers

import (
	"encoding/json"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
)

// Context передает хендлеру состояние партии.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	State *domain.GameState

	// Team — команда, от имени которой выполняется действие.
	// Движок уже проверил, что сейчас её ход.
	Team *domain.Team
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи движка напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, COMBAT, ECONOMY, ERROR)

	// EndsTurn true, когда действие завершает ход команды (END_TURN).
	EndsTurn bool
}

// HandlerFunc - это контракт для любой команды (MOVE, SPAWN, etc).
//
// Контракт всё-или-ничего: хендлер сначала валидирует действие целиком
// и только потом мутирует состояние. Вернул ошибку — состояние не тронуто.
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
