package domain

// TeamID — индекс команды в партии (0..3).
type TeamID uint8

// TerrainKind — вид тайла. Карта неизменяема после генерации.
type TerrainKind uint8

const (
	TerrainGrass TerrainKind = iota
	TerrainGranite
	TerrainWater
)

func (t TerrainKind) String() string {
	switch t {
	case TerrainGrass:
		return "grass"
	case TerrainGranite:
		return "granite"
	case TerrainWater:
		return "water"
	default:
		return "unknown"
	}
}

// IsLand сообщает, можно ли стоять на тайле.
func (t TerrainKind) IsLand() bool {
	return t != TerrainWater
}

// --- ЮНИТЫ ---

// UnitType — закрытый набор типов юнитов. Поведение определяется
// таблицей статов, а не ветвлением по месту использования.
type UnitType string

const (
	UnitWarrior   UnitType = "warrior"
	UnitSwordsman UnitType = "swordsman"
	UnitShieldman UnitType = "shieldman"
	UnitRunner    UnitType = "runner"
	UnitTank      UnitType = "tank"
	UnitSeer      UnitType = "seer"
)

// UnitStats — таблица характеристик для типа юнита.
type UnitStats struct {
	MaxHP    int
	Damage   int
	Movement int
	Sight    int
	Cost     int

	// ChainAttack: после убийства юнит сохраняет остаток хода
	// и может атаковать дальше в рамках того же действия.
	ChainAttack bool

	// AutoExplore: юнит ходит сам, детерминированной эвристикой,
	// до начала действий владельца.
	AutoExplore bool
}

var unitStats = map[UnitType]UnitStats{
	UnitWarrior:   {MaxHP: 10, Damage: 5, Movement: 3, Sight: 2, Cost: 5},
	UnitSwordsman: {MaxHP: 15, Damage: 10, Movement: 3, Sight: 2, Cost: 8},
	UnitShieldman: {MaxHP: 20, Damage: 2, Movement: 2, Sight: 2, Cost: 6},
	UnitRunner:    {MaxHP: 5, Damage: 5, Movement: 10, Sight: 2, Cost: 7},
	UnitTank:      {MaxHP: 25, Damage: 6, Movement: 4, Sight: 2, Cost: 12, ChainAttack: true},
	UnitSeer:      {MaxHP: 5, Damage: 0, Movement: 6, Sight: 4, Cost: 8, AutoExplore: true},
}

// StatsFor возвращает таблицу статов для типа юнита.
// Неизвестный тип трактуется как Warrior (как в таблице по умолчанию).
func StatsFor(t UnitType) UnitStats {
	if s, ok := unitStats[t]; ok {
		return s
	}
	return unitStats[UnitWarrior]
}

// KnownUnitType проверяет, что строка является валидным типом юнита.
func KnownUnitType(t UnitType) bool {
	_, ok := unitStats[t]
	return ok
}

// AllUnitTypes возвращает типы юнитов в фиксированном порядке.
func AllUnitTypes() []UnitType {
	return []UnitType{UnitWarrior, UnitSwordsman, UnitShieldman, UnitRunner, UnitTank, UnitSeer}
}

// --- ЗДАНИЯ ---

// BuildingType — закрытый набор типов зданий.
type BuildingType string

const (
	BuildingCapital  BuildingType = "capital"
	BuildingHospital BuildingType = "hospital"
	BuildingMine     BuildingType = "mine"
)

// BuildingStats — таблица характеристик для типа здания.
type BuildingStats struct {
	MaxHP       int
	Cost        int
	Sight       int
	UpgradeCost int
}

var buildingStats = map[BuildingType]BuildingStats{
	BuildingCapital:  {MaxHP: 20, Cost: 10, Sight: 3, UpgradeCost: 15},
	BuildingHospital: {MaxHP: 10, Cost: 8, Sight: 2, UpgradeCost: 20},
	BuildingMine:     {MaxHP: 10, Cost: 6, Sight: 2, UpgradeCost: 10},
}

// BuildingStatsFor возвращает таблицу статов для типа здания.
func BuildingStatsFor(t BuildingType) BuildingStats {
	if s, ok := buildingStats[t]; ok {
		return s
	}
	return buildingStats[BuildingCapital]
}

// KnownBuildingType проверяет, что строка является валидным типом здания.
func KnownBuildingType(t BuildingType) bool {
	_, ok := buildingStats[t]
	return ok
}

// Константы правил столицы.
const (
	// CapitalMinDistance — минимальная дистанция Чебышёва между столицами.
	CapitalMinDistance = 14

	// CapitalMaxSpawns — всего юнитов с одной столицы за партию.
	CapitalMaxSpawns = 3
)

// Константы госпиталя.
const (
	HospitalHealRadius         = 2 // область 5x5
	HospitalHealRadiusUpgraded = 4 // область 9x9
	HospitalHealPerUnit        = 3 // максимум HP одному юниту за ход
	HospitalCostPerPoint       = 1 // золото за единицу восстановленного HP
)

// Константы шахты.
const (
	MineIncome         = 1
	MineIncomeUpgraded = 2
)

// --- РЕСУРСЫ ---

// PickupKind — вид подбираемого ресурса.
type PickupKind string

const (
	PickupChicken      PickupKind = "chicken"
	PickupBlackChicken PickupKind = "black_chicken"
	PickupGold         PickupKind = "gold"
	PickupShinyGold    PickupKind = "shiny_gold"
)

const (
	PickupRegularValue = 1
	PickupRareValue    = 3

	// PickupSpawnRatio — целевая плотность: один ресурс на столько тайлов.
	PickupSpawnRatio = 10

	// PickupRareChance — вероятность редкого варианта при спавне.
	PickupRareChance = 0.15
)

// Value возвращает номинал ресурса.
func (k PickupKind) Value() int {
	if k == PickupBlackChicken || k == PickupShinyGold {
		return PickupRareValue
	}
	return PickupRegularValue
}

// TerrainFor возвращает вид тайла, на котором спавнится этот ресурс.
func (k PickupKind) TerrainFor() TerrainKind {
	if k == PickupChicken || k == PickupBlackChicken {
		return TerrainGrass
	}
	return TerrainGranite
}
