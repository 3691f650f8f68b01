package domain

// Phase — состояние машины ходов.
type Phase uint8

const (
	// PhaseWaiting: активная команда вводит действия.
	PhaseWaiting Phase = iota
	// PhaseResolving: движок выполняет автоматику конца хода.
	PhaseResolving
	// PhaseEnded: партия завершена.
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "WAITING"
	case PhaseResolving:
		return "RESOLVING"
	case PhaseEnded:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}

// GameState — всё авторитетное состояние партии.
//
// Владелец — движок (engine.Engine); никакой другой компонент не держит
// мутабельную ссылку на эти данные. Юниты/здания/ресурсы хранятся в
// слайсах в порядке создания: порядок обхода одинаков на всех репликах,
// что обязательно для сходимости сетевого состояния.
type GameState struct {
	Grid *Grid
	Seed int64

	Teams     []*Team
	Units     []*Unit
	Buildings []*Building
	Pickups   []*Pickup

	// Turn — номер хода, монотонно растёт при каждом advance.
	Turn int
	// Active — команда, чьи действия сейчас принимаются.
	Active TeamID
	Phase  Phase

	// Результат партии (валидны только в PhaseEnded).
	Winner TeamID
	Draw   bool

	// NextSerial — счётчик порядковых номеров сущностей.
	// Входит в снапшот: реплики продолжают нумерацию с той же точки.
	NextSerial uint64
}

// NewGameState создаёт состояние партии на готовой карте.
func NewGameState(grid *Grid, seed int64, teamNames []string) *GameState {
	s := &GameState{
		Grid:       grid,
		Seed:       seed,
		Turn:       1,
		NextSerial: 1,
	}
	for i, name := range teamNames {
		s.Teams = append(s.Teams, NewTeam(TeamID(i), name))
	}
	return s
}

// AllocID выдаёт следующий детерминированный идентификатор.
func (s *GameState) AllocID(kind EntityKind, team TeamID) EntityID {
	id := MakeID(kind, team, s.NextSerial)
	s.NextSerial++
	return id
}

// Team возвращает команду по ID или nil.
func (s *GameState) Team(id TeamID) *Team {
	if int(id) >= len(s.Teams) {
		return nil
	}
	return s.Teams[id]
}

// --- Поиск по позиции ---

// UnitAt возвращает живой юнит на тайле или nil.
func (s *GameState) UnitAt(p Position) *Unit {
	for _, u := range s.Units {
		if u.Pos == p && !u.IsDead() {
			return u
		}
	}
	return nil
}

// BuildingAt возвращает здание на тайле или nil.
func (s *GameState) BuildingAt(p Position) *Building {
	for _, b := range s.Buildings {
		if b.Pos == p {
			return b
		}
	}
	return nil
}

// PickupAt возвращает ресурс на тайле или nil.
func (s *GameState) PickupAt(p Position) *Pickup {
	for _, pk := range s.Pickups {
		if pk.Pos == p {
			return pk
		}
	}
	return nil
}

// IsOccupied сообщает, занят ли тайл юнитом или зданием.
// Ресурсы тайл не занимают: юнит входит и подбирает их.
func (s *GameState) IsOccupied(p Position) bool {
	return s.UnitAt(p) != nil || s.BuildingAt(p) != nil
}

// --- Поиск по ID ---

// FindUnit возвращает юнит по ID или nil.
func (s *GameState) FindUnit(id EntityID) *Unit {
	for _, u := range s.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// FindBuilding возвращает здание по ID или nil.
func (s *GameState) FindBuilding(id EntityID) *Building {
	for _, b := range s.Buildings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// --- Удаление ---
// Удаление сохраняет порядок слайса (НЕ swap-with-last):
// порядок создания — часть детерминизма реплик.

// RemoveUnit убирает юнит из состояния.
func (s *GameState) RemoveUnit(id EntityID) {
	for i, u := range s.Units {
		if u.ID == id {
			s.Units = append(s.Units[:i], s.Units[i+1:]...)
			return
		}
	}
}

// RemoveBuilding убирает здание из состояния.
func (s *GameState) RemoveBuilding(id EntityID) {
	for i, b := range s.Buildings {
		if b.ID == id {
			s.Buildings = append(s.Buildings[:i], s.Buildings[i+1:]...)
			return
		}
	}
}

// RemovePickup убирает ресурс из состояния.
func (s *GameState) RemovePickup(id EntityID) {
	for i, p := range s.Pickups {
		if p.ID == id {
			s.Pickups = append(s.Pickups[:i], s.Pickups[i+1:]...)
			return
		}
	}
}

// --- Агрегаты по командам ---

// UnitsOf возвращает живые юниты команды в порядке создания.
func (s *GameState) UnitsOf(id TeamID) []*Unit {
	var out []*Unit
	for _, u := range s.Units {
		if u.Team == id && !u.IsDead() {
			out = append(out, u)
		}
	}
	return out
}

// BuildingsOf возвращает здания команды в порядке создания.
func (s *GameState) BuildingsOf(id TeamID) []*Building {
	var out []*Building
	for _, b := range s.Buildings {
		if b.Team == id {
			out = append(out, b)
		}
	}
	return out
}

// HasAssets сообщает, осталось ли у команды хоть что-то на карте.
func (s *GameState) HasAssets(id TeamID) bool {
	for _, u := range s.Units {
		if u.Team == id && !u.IsDead() {
			return true
		}
	}
	for _, b := range s.Buildings {
		if b.Team == id {
			return true
		}
	}
	return false
}

// AliveTeams возвращает список невыбывших команд в порядке ID.
func (s *GameState) AliveTeams() []*Team {
	var out []*Team
	for _, t := range s.Teams {
		if !t.Eliminated {
			out = append(out, t)
		}
	}
	return out
}
