package domain

// Grid — неизменяемая карта тайлов. Генерируется один раз на старте
// партии (pkg/terrain) и дальше только читается.
type Grid struct {
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Tiles  []TerrainKind `json:"tiles"` // индекс = Y*Width + X
}

// NewGrid создаёт карту указанного размера, залитую травой.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Tiles:  make([]TerrainKind, width*height),
	}
}

// Index возвращает линейный индекс тайла.
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// InBounds проверяет, что координата лежит внутри карты.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// At возвращает вид тайла. Выход за границы считается водой:
// для всех правил движка это эквивалентно «ходить нельзя».
func (g *Grid) At(p Position) TerrainKind {
	if !g.InBounds(p) {
		return TerrainWater
	}
	return g.Tiles[g.Index(p.X, p.Y)]
}

// Set записывает вид тайла. Используется только генератором.
func (g *Grid) Set(x, y int, t TerrainKind) {
	g.Tiles[g.Index(x, y)] = t
}
