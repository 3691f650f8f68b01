package terrain

import (
	"testing"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(42, 64, 64)
	b := Generate(42, 64, 64)

	for i := range a.Tiles {
		if a.Tiles[i] != b.Tiles[i] {
			t.Fatalf("tile %d differs between identical seeds: %v vs %v", i, a.Tiles[i], b.Tiles[i])
		}
	}
}

func TestGenerateSeedVariation(t *testing.T) {
	a := Generate(1, 64, 64)
	b := Generate(2, 64, 64)

	same := 0
	for i := range a.Tiles {
		if a.Tiles[i] == b.Tiles[i] {
			same++
		}
	}
	if same == len(a.Tiles) {
		t.Errorf("different seeds produced identical maps")
	}
}

func TestGenerateTerrainMix(t *testing.T) {
	grid := Generate(7, 96, 96)

	counts := map[domain.TerrainKind]int{}
	for _, k := range grid.Tiles {
		counts[k]++
	}
	if counts[domain.TerrainGrass] == 0 {
		t.Errorf("expected at least one grass tile")
	}
	if counts[domain.TerrainWater] == 0 {
		t.Errorf("expected at least one water tile")
	}
	if counts[domain.TerrainGranite] == 0 {
		t.Errorf("expected at least one granite tile")
	}
}

func TestGenerateHasLand(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		grid := Generate(seed, 16, 16)
		land := 0
		for _, k := range grid.Tiles {
			if k.IsLand() {
				land++
			}
		}
		if land == 0 {
			t.Errorf("seed %d: map has no land tiles", seed)
		}
	}
}

func TestLatticeValueRange(t *testing.T) {
	for x := -50; x < 50; x += 7 {
		for y := -50; y < 50; y += 7 {
			v := latticeValue(x, y, 99)
			if v < 0 || v > 1 {
				t.Fatalf("latticeValue(%d,%d) = %f out of [0,1]", x, y, v)
			}
		}
	}
}

func TestLandTilesOrdered(t *testing.T) {
	grid := Generate(3, 32, 32)
	tiles := LandTiles(grid)
	for i := 1; i < len(tiles); i++ {
		prev, cur := tiles[i-1], tiles[i]
		if cur.Y < prev.Y || (cur.Y == prev.Y && cur.X <= prev.X) {
			t.Fatalf("land tiles out of scan order at %d: %v after %v", i, cur, prev)
		}
	}
}
