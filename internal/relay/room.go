package relay

import (
	"math/rand"
	"sync"
	"time"

	"github.com/Liam-made-young/REPUBLIC/pkg/api"
	"github.com/Liam-made-young/REPUBLIC/pkg/logger"
)

// Алфавит кодов комнат: без 0/O/1/I, чтобы код диктовался голосом без ошибок.
const (
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	roomCodeLength   = 4

	// maxRoomPeers — партия рассчитана на 2-4 игроков.
	maxRoomPeers = 4
)

// Room — одна комната релея: состав участников и их сокеты.
// Мьютекс комнаты покрывает И изменение состава, И рассылку: вход/выход
// не перемежается с fan-out. Разные комнаты полностью независимы.
type Room struct {
	Code string

	mu sync.Mutex
	// peers в порядке входа: первый — хост. При уходе хоста роль
	// переходит к старейшему из оставшихся.
	peers      []*Peer
	lastActive time.Time
}

// HostID возвращает ID текущего хоста комнаты.
func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.peers) == 0 {
		return ""
	}
	return r.peers[0].ID
}

// Peers возвращает снимок состава комнаты.
func (r *Room) Peers() []api.PeerInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.peersLocked()
}

func (r *Room) peersLocked() []api.PeerInfo {
	out := make([]api.PeerInfo, 0, len(r.peers))
	for _, p := range r.peers {
		out = append(out, api.PeerInfo{ID: p.ID, Name: p.Name})
	}
	return out
}

// add подключает пира. Возвращает false, когда комната полна.
func (r *Room) add(p *Peer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.peers) >= maxRoomPeers {
		return false
	}
	r.peers = append(r.peers, p)
	r.lastActive = time.Now()
	return true
}

// remove отключает пира. Возвращает ID нового хоста (пустая строка,
// если хост не менялся) и признак опустевшей комнаты.
func (r *Room) remove(p *Peer) (newHost string, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wasHost := len(r.peers) > 0 && r.peers[0] == p
	for i, cur := range r.peers {
		if cur == p {
			r.peers = append(r.peers[:i], r.peers[i+1:]...)
			break
		}
	}
	r.lastActive = time.Now()

	if len(r.peers) == 0 {
		return "", true
	}
	if wasHost {
		return r.peers[0].ID, false
	}
	return "", false
}

// fanout рассылает готовый конверт: адресату, если to задан, иначе всем,
// кроме отправителя. Содержимое не разбирается и не валидируется.
func (r *Room) fanout(from *Peer, to string, raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastActive = time.Now()

	for _, p := range r.peers {
		if p == from {
			continue
		}
		if to != "" && p.ID != to {
			continue
		}
		p.enqueue(raw)
	}
}

// broadcast шлёт конверт всем участникам, кроме except (nil — вообще всем).
func (r *Room) broadcast(except *Peer, raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.peers {
		if p == except {
			continue
		}
		p.enqueue(raw)
	}
}

// idleSince сообщает, была ли комната активна после порога.
func (r *Room) idleSince(cutoff time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActive.Before(cutoff)
}

// Registry — реестр активных комнат.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	rng   *rand.Rand
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateRoom регистрирует комнату со свежим кодом и первым участником.
// Код генерируется до первого свободного: коллизия с живой комнатой
// вызывает регенерацию. Код умершей комнаты может быть выдан заново.
func (reg *Registry) CreateRoom(host *Peer) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var code string
	for {
		code = reg.generateCode()
		if _, taken := reg.rooms[code]; !taken {
			break
		}
	}

	room := &Room{Code: code, lastActive: time.Now()}
	room.peers = []*Peer{host}
	reg.rooms[code] = room

	logger.Log.WithField("room", code).Info("room created")
	return room
}

// JoinRoom подключает пира к существующей комнате.
func (reg *Registry) JoinRoom(code string, p *Peer) (*Room, string) {
	reg.mu.RLock()
	room, ok := reg.rooms[code]
	reg.mu.RUnlock()
	if !ok {
		return nil, api.RoomErrNotFound
	}
	if !room.add(p) {
		return nil, api.RoomErrFull
	}
	return room, ""
}

// Leave отключает пира от комнаты. Опустевшая комната уничтожается,
// её код освобождается; иначе возвращается ID нового хоста (или "").
func (reg *Registry) Leave(room *Room, p *Peer) (newHost string) {
	newHost, empty := room.remove(p)
	if empty {
		reg.mu.Lock()
		delete(reg.rooms, room.Code)
		reg.mu.Unlock()
		logger.Log.WithField("room", room.Code).Info("room destroyed")
	}
	return newHost
}

// generateCode собирает код из алфавита. Вызывается под замком реестра.
func (reg *Registry) generateCode() string {
	buf := make([]byte, roomCodeLength)
	for i := range buf {
		buf[i] = roomCodeAlphabet[reg.rng.Intn(len(roomCodeAlphabet))]
	}
	return string(buf)
}

// RoomCount возвращает число активных комнат.
func (reg *Registry) RoomCount() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// Sweep закрывает комнаты, простоявшие без трафика дольше ttl.
// Возвращает число закрытых комнат.
func (reg *Registry) Sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	reg.mu.Lock()
	var stale []*Room
	for code, room := range reg.rooms {
		if room.idleSince(cutoff) {
			stale = append(stale, room)
			delete(reg.rooms, code)
		}
	}
	reg.mu.Unlock()

	for _, room := range stale {
		room.mu.Lock()
		peers := room.peers
		room.peers = nil
		room.mu.Unlock()
		for _, p := range peers {
			p.detach()
		}
		logger.Log.WithField("room", room.Code).Info("stale room swept")
	}
	return len(stale)
}

// RoomSummary — срез состояния комнаты для /debug/rooms.
type RoomSummary struct {
	Code       string         `json:"code"`
	HostID     string         `json:"hostId"`
	Peers      []api.PeerInfo `json:"peers"`
	LastActive time.Time      `json:"lastActive"`
}

// Summaries возвращает снимок всех комнат для отладочной выдачи.
func (reg *Registry) Summaries() []RoomSummary {
	reg.mu.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		rooms = append(rooms, r)
	}
	reg.mu.RUnlock()

	out := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		r.mu.Lock()
		s := RoomSummary{Code: r.Code, Peers: r.peersLocked(), LastActive: r.lastActive}
		if len(r.peers) > 0 {
			s.HostID = r.peers[0].ID
		}
		r.mu.Unlock()
		out = append(out, s)
	}
	return out
}
