package terrain

import "math"

// valueNoise2D — детерминированный value noise в [0,1].
// Билинейная интерполяция хешей узлов решётки со сглаживанием Эрмита.
func valueNoise2D(x, y float64, seed int64) float64 {
	xi := int(math.Floor(x))
	yi := int(math.Floor(y))
	xf := x - float64(xi)
	yf := y - float64(yi)

	// Hermite smoothstep
	u := xf * xf * (3 - 2*xf)
	v := yf * yf * (3 - 2*yf)

	n00 := latticeValue(xi, yi, seed)
	n10 := latticeValue(xi+1, yi, seed)
	n01 := latticeValue(xi, yi+1, seed)
	n11 := latticeValue(xi+1, yi+1, seed)

	nx0 := n00*(1-u) + n10*u
	nx1 := n01*(1-u) + n11*u
	return nx0*(1-v) + nx1*v
}

// latticeValue возвращает псевдослучайное значение [0,1] для узла решётки.
// Хеш не зависит от платформы: одинаковый seed даёт одинаковую карту везде.
func latticeValue(x, y int, seed int64) float64 {
	h := uint64(seed)
	h ^= uint64(x) * 0x517cc1b727220a95
	h ^= uint64(y) * 0x6c62272e07bb0142
	h = h*0x2545f4914f6cdd1d + 0x14057b7ef767814f
	h ^= h >> 16
	h *= 0xd6e8feb86659fd93
	h ^= h >> 16
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// fbm складывает несколько октав valueNoise2D. Результат в [0,1].
func fbm(x, y float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	var total, amplitude, maxValue float64
	amplitude = 1.0
	freq := 1.0

	for i := 0; i < octaves; i++ {
		total += valueNoise2D(x*freq, y*freq, seed+int64(i)) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= lacunarity
	}
	return total / maxValue
}
