package relay

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Liam-made-young/REPUBLIC/pkg/api"
	"github.com/Liam-made-young/REPUBLIC/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Полный снапшот партии проходит через релей одним сообщением.
	maxMessageSize = 512 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Peer - посредник между Websocket и реестром комнат.
// Релей не заглядывает в игровые сообщения: RELAY-конверты пересылаются
// байт-в-байт.
type Peer struct {
	ID   string
	Name string

	registry *Registry
	conn     *websocket.Conn
	send     chan []byte

	// room — текущая комната пира. Читается и пишется только из readPump.
	room *Room
}

// NewPeer создаёт пира для свежепринятого соединения.
func NewPeer(reg *Registry, conn *websocket.Conn) *Peer {
	return &Peer{
		ID:       uuid.NewString(),
		registry: reg,
		conn:     conn,
		send:     make(chan []byte, 256),
	}
}

// enqueue кладёт сообщение в очередь отправки. Медленный получатель
// сообщения теряет — релей не копит бесконечный буфер.
func (p *Peer) enqueue(raw []byte) {
	select {
	case p.send <- raw:
	default:
		logger.Log.WithField("peer", p.ID).Warn("send queue full, dropping message")
	}
}

// detach закрывает соединение пира со стороны сервера (очистка комнат).
func (p *Peer) detach() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Close(); err != nil {
		logger.Log.WithError(err).Debug("failed to close swept peer connection")
	}
}

// readPump читает конверты от клиента
func (p *Peer) readPump() {
	defer func() {
		p.leaveRoom()
		close(p.send)
		if err := p.conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
		logger.Log.WithField("peer", p.ID).Info("peer disconnected")
	}()

	p.conn.SetReadLimit(maxMessageSize)
	if err := p.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	p.conn.SetPongHandler(func(string) error {
		if err := p.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		_, raw, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithField("peer", p.ID).WithError(err).Error("ws read error")
			}
			return
		}

		var env api.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			p.sendError("", "malformed envelope")
			continue
		}
		p.handle(env)
	}
}

// handle обрабатывает один конверт от клиента.
func (p *Peer) handle(env api.Envelope) {
	switch env.Type {
	case api.MsgCreateRoom:
		var payload api.CreateRoomPayload
		_ = json.Unmarshal(env.Payload, &payload)
		p.Name = payload.Name

		if p.room != nil {
			p.leaveRoom()
		}
		p.room = p.registry.CreateRoom(p)
		p.sendEnvelope(api.MsgRoomCreated, api.RoomCreatedPayload{
			Code:   p.room.Code,
			PeerID: p.ID,
		})

	case api.MsgJoinRoom:
		var payload api.JoinRoomPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			p.sendError("", "malformed join payload")
			return
		}
		if err := payload.Validate(); err != nil {
			p.sendError(api.RoomErrNotFound, err.Error())
			return
		}
		p.Name = payload.Name

		if p.room != nil {
			p.leaveRoom()
		}
		room, errCode := p.registry.JoinRoom(payload.Code, p)
		if errCode != "" {
			p.sendError(errCode, "cannot join room "+payload.Code)
			return
		}
		p.room = room

		p.sendEnvelope(api.MsgRoomJoined, api.RoomJoinedPayload{
			Code:   room.Code,
			PeerID: p.ID,
			HostID: room.HostID(),
			Peers:  room.Peers(),
		})
		room.broadcast(p, marshalEnvelope(api.MsgPeerJoined, "", api.PeerJoinedPayload{
			Peer: api.PeerInfo{ID: p.ID, Name: p.Name},
		}))
		logger.Log.WithField("room", room.Code).WithField("peer", p.ID).Info("peer joined room")

	case api.MsgRelay:
		if p.room == nil {
			p.sendError(api.RoomErrNotInRoom, "relay outside a room")
			return
		}
		// Проставляем отправителя и пересылаем без разбора содержимого.
		out := env
		out.From = p.ID
		raw, err := json.Marshal(out)
		if err != nil {
			return
		}
		p.room.fanout(p, env.To, raw)

	case api.MsgLeaveRoom:
		p.leaveRoom()

	case api.MsgPing:
		p.sendEnvelope(api.MsgPong, nil)

	default:
		p.sendError("", "unknown message type "+env.Type)
	}
}

// leaveRoom выводит пира из текущей комнаты и оповещает остальных.
// Вызывается на каждом пути выхода: явный LEAVE_ROOM, обрыв сокета,
// повторный CREATE/JOIN.
func (p *Peer) leaveRoom() {
	room := p.room
	if room == nil {
		return
	}
	p.room = nil

	newHost := p.registry.Leave(room, p)
	room.broadcast(nil, marshalEnvelope(api.MsgPeerLeft, "", api.PeerLeftPayload{PeerID: p.ID}))
	if newHost != "" {
		room.broadcast(nil, marshalEnvelope(api.MsgHostChanged, "", api.HostChangedPayload{HostID: newHost}))
		logger.Log.WithField("room", room.Code).WithField("host", newHost).Info("host migrated")
	}
}

func (p *Peer) sendEnvelope(msgType string, payload any) {
	p.enqueue(marshalEnvelope(msgType, "", payload))
}

func (p *Peer) sendError(code, msg string) {
	p.enqueue(marshalEnvelope(api.MsgRoomError, "", api.RoomErrorPayload{Code: code, Msg: msg}))
}

func marshalEnvelope(msgType, from string, payload any) []byte {
	env := api.Envelope{Type: msgType, From: from}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			logger.Log.WithError(err).Error("failed to marshal envelope payload")
			return nil
		}
		env.Payload = raw
	}
	out, err := json.Marshal(env)
	if err != nil {
		logger.Log.WithError(err).Error("failed to marshal envelope")
		return nil
	}
	return out
}

// writePump отправляет данные клиенту + Ping
func (p *Peer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := p.conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-p.send:
			if err := p.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := p.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if message == nil {
				continue
			}
			if err := p.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Log.WithError(err).Debug("write message failed")
				return
			}

		case <-ticker.C:
			if err := p.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
