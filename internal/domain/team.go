package domain

// TeamColor — палитра команды для клиентского рендера.
type TeamColor struct {
	Key   string `json:"key"`
	RGB   string `json:"rgb"`
	Light string `json:"light"`
	Dark  string `json:"dark"`
}

// defaultColors — палитры по умолчанию в порядке TeamID.
var defaultColors = []TeamColor{
	{Key: "red", RGB: "#C83232", Light: "#FF6464", Dark: "#781E1E"},
	{Key: "blue", RGB: "#3264C8", Light: "#6496FF", Dark: "#1E3C78"},
	{Key: "green", RGB: "#32B432", Light: "#64DC64", Dark: "#1E641E"},
	{Key: "purple", RGB: "#9632B4", Light: "#C864DC", Dark: "#5A1E6E"},
}

// DefaultColor возвращает палитру по индексу команды.
func DefaultColor(id TeamID) TeamColor {
	if int(id) < len(defaultColors) {
		return defaultColors[id]
	}
	return defaultColors[0]
}

// FogState — туман войны одной команды.
//
// Инвариант: Visible ⊆ Seen; Seen монотонно только растёт.
// Потребители (рендер, валидация размещения) спрашивают ТОЛЬКО эти два
// множества — сырое глобальное состояние команде не выдаётся.
type FogState struct {
	// Seen — ранее увиденные тайлы. Сохраняются, даже когда открывший
	// их юнит погиб.
	Seen map[Position]bool `json:"-"`

	// Visible — тайлы, видимые прямо сейчас.
	Visible map[Position]bool `json:"-"`
}

// NewFogState создаёт пустой туман войны.
func NewFogState() *FogState {
	return &FogState{
		Seen:    make(map[Position]bool),
		Visible: make(map[Position]bool),
	}
}

// IsSeen сообщает, был ли тайл когда-либо открыт.
func (f *FogState) IsSeen(p Position) bool {
	return f.Seen[p]
}

// IsVisible сообщает, виден ли тайл прямо сейчас.
func (f *FogState) IsVisible(p Position) bool {
	return f.Visible[p]
}

// Team — агрегат игрока: казна, флаг выбывания и туман войны.
// Юниты и здания хранятся централизованно в GameState, чтобы порядок
// обхода был детерминированным на всех репликах.
type Team struct {
	ID    TeamID    `json:"id"`
	Name  string    `json:"name"`
	Color TeamColor `json:"color"`
	Gold  int       `json:"gold"`

	// Eliminated выставляется один раз и никогда не снимается.
	Eliminated bool `json:"eliminated"`

	Fog *FogState `json:"-"`
}

// NewTeam создаёт команду с пустой казной и палитрой по умолчанию.
func NewTeam(id TeamID, name string) *Team {
	if name == "" {
		name = DefaultColor(id).Key
	}
	return &Team{
		ID:    id,
		Name:  name,
		Color: DefaultColor(id),
		Fog:   NewFogState(),
	}
}

// CanAfford проверяет, хватает ли золота.
func (t *Team) CanAfford(amount int) bool {
	return t.Gold >= amount
}

// Spend списывает золото. Возвращает false, если не хватает
// (казна при этом не меняется — золото никогда не уходит в минус).
func (t *Team) Spend(amount int) bool {
	if t.Gold < amount {
		return false
	}
	t.Gold -= amount
	return true
}

// Credit зачисляет золото.
func (t *Team) Credit(amount int) {
	t.Gold += amount
}
