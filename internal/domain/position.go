package domain

// Position — координата тайла на карте.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Dist возвращает расстояние Чебышёва до другой точки.
// Это ЕДИНСТВЕННАЯ метрика движка: дальность хода, атака, обзор,
// радиус лечения и дистанция между столицами считаются одинаково.
func (p Position) Dist(other Position) int {
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Shift возвращает новую позицию со смещением, не меняя текущую.
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
