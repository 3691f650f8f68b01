package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
	"github.com/Liam-made-young/REPUBLIC/internal/engine/handlers"
	"github.com/Liam-made-young/REPUBLIC/internal/engine/handlers/actions"
	"github.com/Liam-made-young/REPUBLIC/internal/fog"
	"github.com/Liam-made-young/REPUBLIC/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Delta — одно применённое действие. Это единица репликации:
// реплика, применившая ту же последовательность дельт к тому же
// снапшоту, приходит в идентичное состояние.
type Delta struct {
	Turn    int               `json:"turn"`
	Team    domain.TeamID     `json:"team"`
	Action  domain.ActionType `json:"-"`
	Name    string            `json:"action"`
	Payload json.RawMessage   `json:"payload,omitempty"`

	// Msg — человекочитаемый лог действия (для UI).
	Msg string `json:"msg,omitempty"`
}

// TurnOutcome — результат продвижения машины ходов.
type TurnOutcome struct {
	Turn   int
	Active domain.TeamID
	Ended  bool
	Winner domain.TeamID
	Draw   bool
}

// Engine — авторитетная машина партии.
//
// Всё состояние принадлежит движку; мутации идут строго последовательно
// через Apply/AdvanceTurn из одной горутины. Сетевой слой кладёт команды
// в CommandChan, цикл Run применяет их между операциями — это
// единственная легальная точка подвеса симуляции.
type Engine struct {
	State *domain.GameState

	// CommandChan - мост между транспортом и единственной
	// мутирующей горутиной.
	CommandChan chan domain.Command

	// OnDelta вызывается из мутирующей горутины после каждого
	// успешно применённого действия.
	OnDelta func(Delta)

	handlers map[domain.ActionType]handlers.HandlerFunc
	log      *logrus.Entry
}

// New создаёт движок с новой партией из конфига.
func New(cfg Config) *Engine {
	return wrap(buildWorld(cfg))
}

// NewFromState создаёт движок поверх восстановленного состояния
// (вход реплики по снапшоту).
func NewFromState(state *domain.GameState) *Engine {
	return wrap(state)
}

func wrap(state *domain.GameState) *Engine {
	e := &Engine{
		State:       state,
		CommandChan: make(chan domain.Command, 100),
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
		log:         logger.Log.WithField("component", "engine"),
	}
	e.registerHandlers()
	return e
}

func (e *Engine) registerHandlers() {
	e.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	e.handlers[domain.ActionSpawn] = handlers.WithPayload(actions.HandleSpawn)
	e.handlers[domain.ActionBuild] = handlers.WithPayload(actions.HandleBuild)
	e.handlers[domain.ActionUpgrade] = handlers.WithPayload(actions.HandleUpgrade)
	e.handlers[domain.ActionEndTurn] = handlers.WithEmptyPayload(actions.HandleEndTurn)
}

// Apply валидирует и применяет одно действие активной команды.
// Контракт всё-или-ничего: при любой ошибке состояние не изменено.
func (e *Engine) Apply(cmd domain.Command) (Delta, error) {
	if e.State.Phase == domain.PhaseEnded {
		return Delta{}, domain.NewActionError(domain.ErrCodeNotYourTurn, "game is over")
	}
	if cmd.Team != e.State.Active {
		return Delta{}, domain.NewActionError(domain.ErrCodeNotYourTurn,
			"team %d acted on team %d's turn", cmd.Team, e.State.Active)
	}
	team := e.State.Team(cmd.Team)
	if team == nil || team.Eliminated {
		return Delta{}, domain.NewActionError(domain.ErrCodeNotYourTurn, "team %d is out of the game", cmd.Team)
	}

	h, ok := e.handlers[cmd.Action]
	if !ok {
		return Delta{}, fmt.Errorf("no handler for action %s", cmd.Action)
	}

	res, err := h(handlers.Context{State: e.State, Team: team}, cmd.Payload)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"team":   cmd.Team,
			"action": cmd.Action.String(),
		}).WithError(err).Debug("action rejected")
		return Delta{}, err
	}

	// Действие могло изменить видимость любой команды
	// (смерть чужого юнита, захват здания).
	fog.RecomputeAll(e.State)

	delta := Delta{
		Turn:    e.State.Turn,
		Team:    cmd.Team,
		Action:  cmd.Action,
		Name:    cmd.Action.String(),
		Payload: cmd.Payload,
		Msg:     res.Msg,
	}

	if res.Msg != "" {
		e.log.WithFields(logrus.Fields{
			"team":   cmd.Team,
			"action": cmd.Action.String(),
		}).Info(res.Msg)
	}

	if res.EndsTurn {
		e.AdvanceTurn()
	}
	return delta, nil
}

// AdvanceTurn завершает ход активной команды и открывает ход следующей.
//
// Порядок фазы Resolving фиксирован и одинаков на всех репликах:
// автоход провидцев новой команды, доход шахт, пополнение ресурсов,
// лечение госпиталей, проверка выбывания.
func (e *Engine) AdvanceTurn() TurnOutcome {
	s := e.State
	if s.Phase == domain.PhaseEnded {
		return e.outcome()
	}
	s.Phase = domain.PhaseResolving

	e.checkElimination()
	if e.tryFinish() {
		return e.outcome()
	}

	next := e.nextTeam(s.Active)
	s.Active = next
	s.Turn++

	team := s.Team(next)
	for _, u := range s.UnitsOf(next) {
		u.ResetTurn()
	}

	runSeerMoves(s, team)
	runMineIncome(s, team)
	topUpPickups(s)
	runHealing(s, team)

	e.checkElimination()
	if e.tryFinish() {
		return e.outcome()
	}

	fog.RecomputeAll(s)
	s.Phase = domain.PhaseWaiting

	e.log.WithFields(logrus.Fields{
		"turn":   s.Turn,
		"active": s.Active,
		"gold":   team.Gold,
	}).Info("turn started")
	return e.outcome()
}

// nextTeam возвращает следующую невыбывшую команду по кругу.
func (e *Engine) nextTeam(from domain.TeamID) domain.TeamID {
	n := len(e.State.Teams)
	for i := 1; i <= n; i++ {
		cand := domain.TeamID((int(from) + i) % n)
		if !e.State.Teams[cand].Eliminated {
			return cand
		}
	}
	return from
}

// checkElimination помечает команды без юнитов и зданий.
// Флаг ставится один раз и не снимается.
func (e *Engine) checkElimination() {
	for _, t := range e.State.Teams {
		if t.Eliminated {
			continue
		}
		if !e.State.HasAssets(t.ID) {
			t.Eliminated = true
			e.log.WithField("team", t.ID).Info("team eliminated")
		}
	}
}

// tryFinish переводит партию в PhaseEnded, когда живых команд <= 1.
func (e *Engine) tryFinish() bool {
	alive := e.State.AliveTeams()
	if len(alive) > 1 {
		return false
	}
	e.State.Phase = domain.PhaseEnded
	if len(alive) == 1 {
		e.State.Winner = alive[0].ID
		e.log.WithField("winner", alive[0].ID).Info("game over")
	} else {
		// Взаимное уничтожение в одном шаге резолюции.
		e.State.Draw = true
		e.log.Info("game over: draw")
	}
	return true
}

func (e *Engine) outcome() TurnOutcome {
	return TurnOutcome{
		Turn:   e.State.Turn,
		Active: e.State.Active,
		Ended:  e.State.Phase == domain.PhaseEnded,
		Winner: e.State.Winner,
		Draw:   e.State.Draw,
	}
}

// Run запускает цикл обработки команд. Единственная горутина,
// мутирующая состояние: команды применяются строго по одной.
func (e *Engine) Run(ctx context.Context) {
	e.log.Info("engine loop started")
	for {
		select {
		case <-ctx.Done():
			e.log.Info("engine loop stopped")
			return
		case cmd := <-e.CommandChan:
			delta, err := e.Apply(cmd)
			if err != nil {
				continue
			}
			if e.OnDelta != nil {
				e.OnDelta(delta)
			}
		}
	}
}

// SubmitCommand принимает команду от внешнего мира (UI, сеть).
func (e *Engine) SubmitCommand(cmd domain.Command) {
	e.CommandChan <- cmd
}
