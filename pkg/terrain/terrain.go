// Package terrain генерирует карту местности из сида.
// Одинаковый сид даёт байт-в-байт одинаковую сетку на любой платформе.
package terrain

import (
	"github.com/Liam-made-young/REPUBLIC/internal/domain"
)

// Пороги классификации высот.
const (
	waterLevel    = 0.30
	graniteLevel  = 0.70
	roughGranite  = 0.50
	noiseScale    = 0.08
	noiseOctaves  = 6
	noisePersist  = 0.5
	noiseLacunar  = 2.0
	roughSeedSalt = 0x9E3779B9
)

// Generate строит сетку width x height по сиду.
// Две карты шума: высота определяет воду и горы,
// шероховатость добавляет гранит на средних высотах.
func Generate(seed int64, width, height int) *domain.Grid {
	grid := domain.NewGrid(width, height)

	landCount := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fx := float64(x) * noiseScale
			fy := float64(y) * noiseScale

			e := fbm(fx, fy, seed, noiseOctaves, noisePersist, noiseLacunar)
			// Перераспределение высот: сглаживает берега, заостряет пики.
			e = 3*e*e - 2*e*e*e

			rough := fbm(fx, fy, seed^roughSeedSalt, noiseOctaves, noisePersist, noiseLacunar)

			var kind domain.TerrainKind
			switch {
			case e < waterLevel:
				kind = domain.TerrainWater
			case e > graniteLevel:
				kind = domain.TerrainGranite
			case rough > roughGranite:
				kind = domain.TerrainGranite
			default:
				kind = domain.TerrainGrass
			}
			if kind.IsLand() {
				landCount++
			}
			grid.Set(x, y, kind)
		}
	}

	// Карта без суши непригодна для игры: гарантируем хотя бы один
	// проходимый тайл в центре.
	if landCount == 0 {
		grid.Set(width/2, height/2, domain.TerrainGrass)
	}
	return grid
}

// LandTiles возвращает все проходимые позиции в порядке обхода сетки.
func LandTiles(grid *domain.Grid) []domain.Position {
	var out []domain.Position
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := domain.Position{X: x, Y: y}
			if grid.At(p) == domain.TerrainGrass {
				out = append(out, p)
			}
		}
	}
	return out
}

// GraniteTiles возвращает все гранитные позиции в порядке обхода сетки.
func GraniteTiles(grid *domain.Grid) []domain.Position {
	var out []domain.Position
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := domain.Position{X: x, Y: y}
			if grid.At(p) == domain.TerrainGranite {
				out = append(out, p)
			}
		}
	}
	return out
}
