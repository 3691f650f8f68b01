// Package netsession — клиентская сторона сетевой синхронизации.
//
// Сессия держит сокет к релею и превращает поток конвертов в
// упорядоченные события для движка: снапшоты, дельты строго по Seq,
// вход/потеря пиров. Сессия не владеет авторитетным состоянием —
// только транспортным зеркалом.
package netsession

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/Liam-made-young/REPUBLIC/pkg/api"
	"github.com/Liam-made-young/REPUBLIC/pkg/logger"
)

// DisconnectPolicy определяет реакцию хост-слоя на потерю пира.
type DisconnectPolicy int

const (
	// PolicyPauseForever: партия стоит до возвращения пира. Умолчание.
	PolicyPauseForever DisconnectPolicy = iota
	// PolicyEliminateAfterTimeout: команда пира выбывает по таймауту.
	PolicyEliminateAfterTimeout
)

// DefaultResyncThreshold — ширина дыры в нумерации, после которой сессия
// перестаёт буферизовать и запрашивает полный снапшот.
const DefaultResyncThreshold = 32

const handshakeTimeout = 10 * time.Second

// EventType — вид события сессии.
type EventType int

const (
	// EventSnapshot: получен полный снапшот, движок должен заменить
	// локальное состояние целиком.
	EventSnapshot EventType = iota
	// EventDelta: очередная дельта в строгом порядке.
	EventDelta
	// EventPeerJoined: в комнату вошёл пир.
	EventPeerJoined
	// EventPeerLost: пир ушёл или оборвался.
	EventPeerLost
	// EventHostChanged: хост мигрировал.
	EventHostChanged
	// EventPeerTimedOut: пир не вернулся за EliminateAfter, его команду
	// пора выводить из партии (только при PolicyEliminateAfterTimeout).
	EventPeerTimedOut
	// EventResyncRequested: пир просит у нас полный снапшот (мы хост).
	EventResyncRequested
	// EventDesync: локальная копия разошлась, отправлен запрос снапшота.
	EventDesync
	// EventClosed: сессия закрыта, событий больше не будет.
	EventClosed
)

// Event — одно событие сессии для хост-слоя движка.
type Event struct {
	Type     EventType
	Snapshot *api.FullSnapshot
	Delta    *api.ActionDelta
	Peer     api.PeerInfo
	HostID   string
	Err      error
}

// Config — настройки сессии.
type Config struct {
	// URL сокета релея, например "ws://127.0.0.1:8080/ws".
	URL string
	// Name — отображаемое имя участника.
	Name string

	ResyncThreshold uint64
	Policy          DisconnectPolicy
	// EliminateAfter используется только с PolicyEliminateAfterTimeout.
	EliminateAfter time.Duration
}

// Session — подключение к одной комнате релея.
type Session struct {
	cfg Config

	// Events закрывается при завершении сессии.
	Events chan Event

	conn    *websocket.Conn
	writeMu sync.Mutex

	seqMu sync.Mutex
	seq   *sequencer

	// peerMu защищает таймеры потерянных пиров и флаг закрытия: таймер,
	// сработавший после закрытия сессии, не должен писать в Events.
	peerMu     sync.Mutex
	lostTimers map[string]*time.Timer
	closed     bool

	roomCode string
	peerID   string
	hostID   string

	log *logrus.Entry
}

// RoomCode возвращает код комнаты сессии.
func (s *Session) RoomCode() string { return s.roomCode }

// PeerID возвращает собственный ID участника.
func (s *Session) PeerID() string { return s.peerID }

// HostID возвращает ID текущего хоста комнаты.
func (s *Session) HostID() string { return s.hostID }

// IsHost сообщает, является ли эта сессия хостом комнаты.
func (s *Session) IsHost() bool { return s.hostID == s.peerID }

// Host создаёт комнату и становится её хостом.
func Host(ctx context.Context, cfg Config) (*Session, error) {
	s, err := dial(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := s.sendEnvelope(api.Envelope{Type: api.MsgCreateRoom}, api.CreateRoomPayload{Name: cfg.Name}); err != nil {
		s.closeConn()
		return nil, err
	}

	env, err := s.readEnvelope(handshakeTimeout)
	if err != nil {
		s.closeConn()
		return nil, fmt.Errorf("create room: %w", err)
	}
	if env.Type != api.MsgRoomCreated {
		s.closeConn()
		return nil, fmt.Errorf("create room: unexpected reply %s", env.Type)
	}
	var created api.RoomCreatedPayload
	if err := json.Unmarshal(env.Payload, &created); err != nil {
		s.closeConn()
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.roomCode = created.Code
	s.peerID = created.PeerID
	s.hostID = created.PeerID
	s.log = s.log.WithField("room", s.roomCode)
	s.log.Info("room hosted")

	go s.readLoop()
	return s, nil
}

// Join входит в комнату по коду и запрашивает у хоста полный снапшот.
// Дельты начинают применяться только после его получения: стартовая
// точка реплики всегда консистентна.
func Join(ctx context.Context, cfg Config, code string) (*Session, error) {
	s, err := dial(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := s.sendEnvelope(api.Envelope{Type: api.MsgJoinRoom}, api.JoinRoomPayload{Code: code, Name: cfg.Name}); err != nil {
		s.closeConn()
		return nil, err
	}

	env, err := s.readEnvelope(handshakeTimeout)
	if err != nil {
		s.closeConn()
		return nil, fmt.Errorf("join room %s: %w", code, err)
	}
	switch env.Type {
	case api.MsgRoomJoined:
	case api.MsgRoomError:
		var re api.RoomErrorPayload
		_ = json.Unmarshal(env.Payload, &re)
		s.closeConn()
		return nil, fmt.Errorf("join room %s: %s", code, re.Code)
	default:
		s.closeConn()
		return nil, fmt.Errorf("join room %s: unexpected reply %s", code, env.Type)
	}

	var joined api.RoomJoinedPayload
	if err := json.Unmarshal(env.Payload, &joined); err != nil {
		s.closeConn()
		return nil, fmt.Errorf("join room %s: %w", code, err)
	}
	s.roomCode = joined.Code
	s.peerID = joined.PeerID
	s.hostID = joined.HostID
	s.log = s.log.WithField("room", s.roomCode)
	s.log.Info("room joined")

	go s.readLoop()

	if err := s.RequestResync(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func dial(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.ResyncThreshold == 0 {
		cfg.ResyncThreshold = DefaultResyncThreshold
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial relay %s: %w", cfg.URL, err)
	}
	return &Session{
		cfg:        cfg,
		Events:     make(chan Event, 64),
		conn:       conn,
		seq:        newSequencer(cfg.ResyncThreshold),
		lostTimers: make(map[string]*time.Timer),
		log:        logger.Log.WithField("component", "netsession"),
	}, nil
}

// SendDelta рассылает подтверждённую дельту остальным участникам.
// Вызывает хост (или активный пир) после локального Apply.
func (s *Session) SendDelta(d *api.ActionDelta) error {
	return s.sendGame("", api.GameMsgDelta, d)
}

// SendSnapshot отправляет полный снапшот конкретному пиру.
// Ответ хоста на EventResyncRequested.
func (s *Session) SendSnapshot(to string, snap *api.FullSnapshot) error {
	return s.sendGame(to, api.GameMsgSnapshot, snap)
}

// RequestResync просит у хоста полный снапшот.
func (s *Session) RequestResync() error {
	return s.sendGame(s.hostID, api.GameMsgResyncRequest, nil)
}

// MarkApplied фиксирует Seq дельты, применённой локально в обход
// сессии (собственное действие хоста).
func (s *Session) MarkApplied(seq uint64) {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	s.seq.Reset(seq)
}

// Close завершает сессию. Сокет закрывается на любом пути выхода,
// канал событий закрывает цикл чтения.
func (s *Session) Close() error {
	s.writeMu.Lock()
	err := s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	s.writeMu.Unlock()
	if err != nil {
		s.log.WithError(err).Debug("close handshake failed")
	}
	return s.closeConn()
}

func (s *Session) closeConn() error {
	return s.conn.Close()
}

// --- внутренности ---

func (s *Session) sendGame(to, msgType string, payload any) error {
	gm := api.GameMessage{Type: msgType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		gm.Payload = raw
	}
	gmRaw, err := json.Marshal(gm)
	if err != nil {
		return err
	}
	return s.sendEnvelope(api.Envelope{Type: api.MsgRelay, To: to}, json.RawMessage(gmRaw))
}

func (s *Session) sendEnvelope(env api.Envelope, payload any) error {
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		env.Payload = raw
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(env)
}

func (s *Session) readEnvelope(timeout time.Duration) (api.Envelope, error) {
	var env api.Envelope
	if err := s.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return env, err
	}
	err := s.conn.ReadJSON(&env)
	if err != nil {
		return env, err
	}
	// Снимаем дедлайн рукопожатия.
	if err := s.conn.SetReadDeadline(time.Time{}); err != nil {
		return env, err
	}
	return env, nil
}

// readLoop превращает конверты релея в события сессии.
func (s *Session) readLoop() {
	defer func() {
		s.closeConn()
		s.peerMu.Lock()
		s.closed = true
		for id, t := range s.lostTimers {
			t.Stop()
			delete(s.lostTimers, id)
		}
		s.peerMu.Unlock()
		s.Events <- Event{Type: EventClosed}
		close(s.Events)
	}()

	for {
		var env api.Envelope
		if err := s.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.WithError(err).Warn("relay connection lost")
			}
			return
		}

		switch env.Type {
		case api.MsgPeerJoined:
			var p api.PeerJoinedPayload
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				continue
			}
			s.Events <- Event{Type: EventPeerJoined, Peer: p.Peer}

		case api.MsgPeerLeft:
			var p api.PeerLeftPayload
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				continue
			}
			s.Events <- Event{Type: EventPeerLost, Peer: api.PeerInfo{ID: p.PeerID}}
			s.armEliminationTimer(p.PeerID)

		case api.MsgHostChanged:
			var p api.HostChangedPayload
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				continue
			}
			s.hostID = p.HostID
			s.Events <- Event{Type: EventHostChanged, HostID: p.HostID}

		case api.MsgRoomError:
			var p api.RoomErrorPayload
			_ = json.Unmarshal(env.Payload, &p)
			s.Events <- Event{Type: EventClosed, Err: fmt.Errorf("room error: %s", p.Code)}
			return

		case api.MsgRelay:
			s.handleGameMessage(env)

		case api.MsgPong:
			// Поддержание соединения, событий не порождает.
		}
	}
}

// handleGameMessage разбирает игровое сообщение внутри RELAY-конверта.
func (s *Session) handleGameMessage(env api.Envelope) {
	var gm api.GameMessage
	if err := json.Unmarshal(env.Payload, &gm); err != nil {
		s.log.WithError(err).Warn("malformed game message")
		return
	}

	switch gm.Type {
	case api.GameMsgSnapshot:
		var snap api.FullSnapshot
		if err := json.Unmarshal(gm.Payload, &snap); err != nil {
			// Нечитаемый снапшот фатален: без консистентной точки
			// старта сессия бесполезна.
			s.Events <- Event{Type: EventClosed, Err: fmt.Errorf("corrupt snapshot: %w", err)}
			s.closeConn()
			return
		}
		s.seqMu.Lock()
		s.seq.Reset(snap.Seq)
		s.seqMu.Unlock()
		s.Events <- Event{Type: EventSnapshot, Snapshot: &snap}

	case api.GameMsgDelta:
		var d api.ActionDelta
		if err := json.Unmarshal(gm.Payload, &d); err != nil {
			s.log.WithError(err).Warn("malformed delta")
			return
		}
		s.ingestDelta(&d)

	case api.GameMsgResyncRequest:
		s.Events <- Event{Type: EventResyncRequested, Peer: api.PeerInfo{ID: env.From}}
	}
}

// armEliminationTimer взводит таймер выбывания для потерянного пира.
// При PolicyPauseForever пауза — решение хост-слоя, таймер не нужен.
func (s *Session) armEliminationTimer(peerID string) {
	if s.cfg.Policy != PolicyEliminateAfterTimeout || s.cfg.EliminateAfter <= 0 {
		return
	}

	s.peerMu.Lock()
	defer s.peerMu.Unlock()
	if s.closed {
		return
	}
	if t, ok := s.lostTimers[peerID]; ok {
		t.Stop()
	}
	s.lostTimers[peerID] = time.AfterFunc(s.cfg.EliminateAfter, func() {
		// Отправка под peerMu: закрытие канала тоже берёт peerMu и
		// выставляет closed, поэтому записи в закрытый канал не бывает.
		s.peerMu.Lock()
		defer s.peerMu.Unlock()
		if s.closed {
			return
		}
		delete(s.lostTimers, peerID)
		s.Events <- Event{Type: EventPeerTimedOut, Peer: api.PeerInfo{ID: peerID}}
	})
}

func (s *Session) ingestDelta(d *api.ActionDelta) {
	s.seqMu.Lock()
	ready, needResync := s.seq.Ingest(d)
	want := s.seq.Next()
	s.seqMu.Unlock()

	if needResync {
		s.log.WithFields(logrus.Fields{
			"got":  d.Seq,
			"want": want,
		}).Warn("sequence gap exceeds threshold, requesting resync")
		s.Events <- Event{Type: EventDesync}
		if err := s.RequestResync(); err != nil {
			s.log.WithError(err).Error("resync request failed")
		}
		return
	}
	for _, r := range ready {
		s.Events <- Event{Type: EventDelta, Delta: r}
	}
}
