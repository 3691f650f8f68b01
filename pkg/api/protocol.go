package api

import (
	"encoding/json"
)

// --- РЕЛЕЙ ---

// Типы сообщений релея. Клиент и сервер обмениваются конвертами Envelope,
// тип определяет структуру Payload.
const (
	MsgCreateRoom  = "CREATE_ROOM"
	MsgRoomCreated = "ROOM_CREATED"
	MsgJoinRoom    = "JOIN_ROOM"
	MsgRoomJoined  = "ROOM_JOINED"
	MsgPeerJoined  = "PEER_JOINED"
	MsgLeaveRoom   = "LEAVE_ROOM"
	MsgPeerLeft    = "PEER_LEFT"
	MsgHostChanged = "HOST_CHANGED"
	MsgRelay       = "RELAY"
	MsgRoomError   = "ROOM_ERROR"
	MsgPing        = "PING"
	MsgPong        = "PONG"
)

// Envelope — корневой объект всех сообщений через релей.
// Сервер не заглядывает внутрь Payload сообщений RELAY: он только
// пересылает байты адресатам.
type Envelope struct {
	Type string `json:"type"`

	// From заполняет сервер при пересылке: ID пира-отправителя.
	From string `json:"from,omitempty"`

	// To — ID пира-адресата. Пустое значение = всем в комнате, кроме
	// отправителя.
	To string `json:"to,omitempty"`

	Payload json.RawMessage `json:"payload,omitempty"`
}

// CreateRoomPayload — запрос на создание комнаты.
type CreateRoomPayload struct {
	// Name — отображаемое имя пира (не обязано быть уникальным).
	Name string `json:"name,omitempty"`
}

// RoomCreatedPayload — ответ создателю комнаты.
type RoomCreatedPayload struct {
	// Code — 4-символьный код комнаты для передачи другим игрокам.
	Code   string `json:"code"`
	PeerID string `json:"peerId"`
}

// JoinRoomPayload — запрос на вход в комнату по коду.
type JoinRoomPayload struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// PeerInfo — описание пира в комнате.
type PeerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// RoomJoinedPayload — ответ вошедшему: его ID, текущий хост и состав.
type RoomJoinedPayload struct {
	Code   string     `json:"code"`
	PeerID string     `json:"peerId"`
	HostID string     `json:"hostId"`
	Peers  []PeerInfo `json:"peers"`
}

// PeerJoinedPayload — уведомление остальных о новом пире.
type PeerJoinedPayload struct {
	Peer PeerInfo `json:"peer"`
}

// PeerLeftPayload — уведомление об уходе пира (явном или по обрыву).
type PeerLeftPayload struct {
	PeerID string `json:"peerId"`
}

// HostChangedPayload — уведомление о миграции хоста.
type HostChangedPayload struct {
	HostID string `json:"hostId"`
}

// RoomErrorPayload — ошибка уровня комнаты (не найдена, переполнена).
type RoomErrorPayload struct {
	Code string `json:"code"`
	Msg  string `json:"msg,omitempty"`
}

// Коды RoomErrorPayload.
const (
	RoomErrNotFound = "ROOM_NOT_FOUND"
	RoomErrFull     = "ROOM_FULL"
	RoomErrNotInRoom = "NOT_IN_ROOM"
)

// --- СИНХРОНИЗАЦИЯ ПАРТИИ ---

// Типы игровых сообщений внутри RELAY-конвертов.
const (
	GameMsgSnapshot = "SNAPSHOT"
	GameMsgDelta    = "DELTA"
	GameMsgResyncRequest = "RESYNC_REQUEST"
)

// GameMessage — игровое сообщение, которое пиры гоняют через релей.
type GameMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ActionDelta — одно подтверждённое действие с порядковым номером.
// Реплики применяют дельты строго по возрастанию Seq без пропусков.
type ActionDelta struct {
	Seq    uint64          `json:"seq"`
	Turn   int             `json:"turn"`
	Team   uint8           `json:"team"`
	Action string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- СНАПШОТ ---

// FullSnapshot — полное авторитетное состояние партии в каноническом
// порядке. Карта не сериализуется: реплика регенерирует её из Seed.
type FullSnapshot struct {
	Seed   int64 `json:"seed"`
	Width  int   `json:"width"`
	Height int   `json:"height"`

	Turn   int    `json:"turn"`
	Active uint8  `json:"active"`
	Phase  string `json:"phase"`
	Winner uint8  `json:"winner,omitempty"`
	Draw   bool   `json:"draw,omitempty"`

	// Seq — номер последней дельты, вошедшей в снапшот.
	Seq uint64 `json:"seq"`

	// NextSerial продолжает нумерацию сущностей на реплике.
	NextSerial uint64 `json:"nextSerial"`

	Teams     []TeamSnapshot     `json:"teams"`
	Units     []UnitSnapshot     `json:"units"`
	Buildings []BuildingSnapshot `json:"buildings"`
	Pickups   []PickupSnapshot   `json:"pickups"`
}

// TeamSnapshot — состояние команды. Seen отсортирован (Y, затем X),
// чтобы снапшот был байт-в-байт воспроизводимым.
type TeamSnapshot struct {
	ID         uint8    `json:"id"`
	Name       string   `json:"name"`
	Gold       int      `json:"gold"`
	Eliminated bool     `json:"eliminated"`
	Seen       []PosSnapshot `json:"seen"`
}

// PosSnapshot — координата в снапшоте.
type PosSnapshot struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// UnitSnapshot — состояние юнита.
type UnitSnapshot struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Team       uint8  `json:"team"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	HP         int    `json:"hp"`
	HasActed   bool   `json:"hasActed"`
	BudgetLeft int    `json:"budgetLeft"`
}

// BuildingSnapshot — состояние здания.
type BuildingSnapshot struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Team         uint8  `json:"team"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	HP           int    `json:"hp"`
	Level        int    `json:"level"`
	SpawnedTotal int    `json:"spawnedTotal"`
}

// PickupSnapshot — состояние ресурса.
type PickupSnapshot struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// --- PAYLOADS ДЕЙСТВИЙ ---

// GameCommand — корневой объект действия игрока.
type GameCommand struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MovePayload — переместить юнит (или атаковать цель на тайле назначения).
type MovePayload struct {
	UnitID string `json:"unitId"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// SpawnPayload — породить юнит из столицы.
type SpawnPayload struct {
	CapitalID string `json:"capitalId"`
	UnitType  string `json:"unitType"`
}

// BuildPayload — построить здание на тайле.
type BuildPayload struct {
	BuildingType string `json:"buildingType"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
}

// UpgradePayload — апгрейд здания до первого уровня.
type UpgradePayload struct {
	BuildingID string `json:"buildingId"`
}
