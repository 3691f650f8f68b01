package actions

import (
	"fmt"

	"github.com/Liam-made-young/REPUBLIC/internal/engine/handlers"
)

// HandleEndTurn завершает ход активной команды.
// Саму ротацию выполняет движок после применения действия.
func HandleEndTurn(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:      fmt.Sprintf("%s ended their turn", ctx.Team.Name),
		MsgType:  "INFO",
		EndsTurn: true,
	}, nil
}
