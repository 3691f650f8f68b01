package domain

// Unit — мобильный боец. Принадлежит ровно одной команде.
type Unit struct {
	ID    EntityID `json:"id"`
	Type  UnitType `json:"type"`
	Team  TeamID   `json:"team"`
	Pos   Position `json:"pos"`
	HP    int      `json:"hp"`
	MaxHP int      `json:"maxHp"`

	// Damage/Movement/Sight дублируются из таблицы статов, потому что
	// бафы (апгрейд столицы) могут поменять их для конкретного экземпляра.
	Damage   int `json:"damage"`
	Movement int `json:"movement"`
	Sight    int `json:"sight"`

	// HasActed true, когда юнит исчерпал действие в текущем ходу.
	HasActed bool `json:"hasActed"`

	// BudgetLeft — остаток хода в тайлах. Сбрасывается к Movement в начале
	// хода владельца. Танк после убийства продолжает с остатком.
	BudgetLeft int `json:"budgetLeft"`
}

// NewUnit создаёт юнит с характеристиками из таблицы статов.
func NewUnit(id EntityID, t UnitType, team TeamID, pos Position) *Unit {
	s := StatsFor(t)
	return &Unit{
		ID: id, Type: t, Team: team, Pos: pos,
		HP: s.MaxHP, MaxHP: s.MaxHP,
		Damage: s.Damage, Movement: s.Movement, Sight: s.Sight,
		BudgetLeft: s.Movement,
	}
}

// TakeDamage снимает HP, не опускаясь ниже нуля.
// Возвращает true, если юнит погиб от этого удара.
func (u *Unit) TakeDamage(amount int) bool {
	before := u.HP
	u.HP -= amount
	if u.HP < 0 {
		u.HP = 0
	}
	return before > 0 && u.HP == 0
}

// Heal восстанавливает HP с потолком MaxHP. Возвращает фактически
// восстановленное количество.
func (u *Unit) Heal(amount int) int {
	missing := u.MaxHP - u.HP
	if amount > missing {
		amount = missing
	}
	if amount < 0 {
		amount = 0
	}
	u.HP += amount
	return amount
}

// IsDead сообщает, что юнит мёртв.
func (u *Unit) IsDead() bool {
	return u.HP <= 0
}

// ResetTurn готовит юнит к ходу владельца.
func (u *Unit) ResetTurn() {
	u.HasActed = false
	u.BudgetLeft = u.Movement
}

// Building — стационарное строение, привязанное к тайлу.
type Building struct {
	ID    EntityID     `json:"id"`
	Type  BuildingType `json:"type"`
	Team  TeamID       `json:"team"`
	Pos   Position     `json:"pos"`
	HP    int          `json:"hp"`
	MaxHP int          `json:"maxHp"`

	// Level апгрейда: 0 или 1.
	Level int `json:"level"`

	// SpawnedTotal — сколько юнитов породила столица за партию.
	SpawnedTotal int `json:"spawnedTotal,omitempty"`
}

// NewBuilding создаёт здание с характеристиками из таблицы статов.
func NewBuilding(id EntityID, t BuildingType, team TeamID, pos Position) *Building {
	s := BuildingStatsFor(t)
	return &Building{
		ID: id, Type: t, Team: team, Pos: pos,
		HP: s.MaxHP, MaxHP: s.MaxHP,
	}
}

// TakeDamage снимает HP. Возвращает true, если здание разрушено.
func (b *Building) TakeDamage(amount int) bool {
	before := b.HP
	b.HP -= amount
	if b.HP < 0 {
		b.HP = 0
	}
	return before > 0 && b.HP == 0
}

// Sight возвращает радиус обзора здания.
func (b *Building) Sight() int {
	return BuildingStatsFor(b.Type).Sight
}

// CanSpawn сообщает, может ли столица породить ещё одного юнита.
func (b *Building) CanSpawn() bool {
	return b.Type == BuildingCapital && b.SpawnedTotal < CapitalMaxSpawns
}

// SpawnCost возвращает стоимость спавна юнита из этой столицы.
// Апгрейд первого уровня вдвое удешевляет спавн (округление вверх).
func (b *Building) SpawnCost(t UnitType) int {
	cost := StatsFor(t).Cost
	if b.Level >= 1 {
		cost = (cost + 1) / 2
	}
	return cost
}

// Income возвращает доход шахты за ход.
func (b *Building) Income() int {
	if b.Type != BuildingMine {
		return 0
	}
	if b.Level >= 1 {
		return MineIncomeUpgraded
	}
	return MineIncome
}

// HealRadius возвращает радиус лечения госпиталя.
func (b *Building) HealRadius() int {
	if b.Type != BuildingHospital {
		return 0
	}
	if b.Level >= 1 {
		return HospitalHealRadiusUpgraded
	}
	return HospitalHealRadius
}

// Pickup — ничейный ресурс на тайле. Снимается при подборе.
type Pickup struct {
	ID   EntityID   `json:"id"`
	Kind PickupKind `json:"kind"`
	Pos  Position   `json:"pos"`
}

// Value возвращает номинал ресурса.
func (p *Pickup) Value() int {
	return p.Kind.Value()
}
