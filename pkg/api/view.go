package api

// --- ДВИЖОК -> UI ---

// ClientView — персональный "снимок" партии для одной команды-наблюдателя.
// Содержит только то, что команде положено знать: разведанную местность
// и сущности на видимых прямо сейчас тайлах.
type ClientView struct {
	Turn   int    `json:"turn"`
	Active uint8  `json:"active"`
	Phase  string `json:"phase"`

	Me   TeamView `json:"me"`
	Grid GridMeta `json:"grid"`

	Map       []TileView     `json:"map"`
	Units     []UnitView     `json:"units"`
	Buildings []BuildingView `json:"buildings"`
	Pickups   []PickupView   `json:"pickups"`

	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TeamView — публичные данные команды-наблюдателя.
type TeamView struct {
	ID         uint8  `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Gold       int    `json:"gold"`
	Eliminated bool   `json:"eliminated"`
}

// TileView это DTO для одного разведанного тайла карты.
type TileView struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Terrain string `json:"terrain"`

	// IsVisible true, если тайл в текущем поле зрения. Рендерится ярко;
	// разведанный, но не видимый тайл рендерится тускло.
	IsVisible bool `json:"isVisible"`
}

// UnitView это DTO видимого юнита.
type UnitView struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Team       uint8  `json:"team"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	HP         int    `json:"hp"`
	MaxHP      int    `json:"maxHp"`
	HasActed   bool   `json:"hasActed"`
	BudgetLeft int    `json:"budgetLeft"`
}

// BuildingView это DTO видимого здания.
type BuildingView struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Team  uint8  `json:"team"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"maxHp"`
	Level int    `json:"level"`
}

// PickupView это DTO видимого ресурса.
type PickupView struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	Text      string `json:"text"`
	Type      string `json:"type"` // INFO, COMBAT, ECONOMY, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}
