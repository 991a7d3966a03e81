package suggestion

import (
	"math"
	"sort"
)

// Keyboard rows used to derive replacement tables.
var (
	QwertyRows = []string{
		"qwertyuiop",
		"asdfghjkl",
		"zxcvbnm",
	}
	JcukenRows = []string{
		"ёйцукенгшщзхъ",
		"фывапролджэ",
		"ячсмитьбю",
	}
)

func keyPositions(rows []string) map[rune][2]int {
	m := make(map[rune][2]int)
	for r, row := range rows {
		for c, ch := range []rune(row) {
			m[ch] = [2]int{r, c}
		}
	}
	return m
}

func keyDistance(pa, pb [2]int) float64 {
	dr := float64(pa[0] - pb[0])
	dc := float64(pa[1] - pb[1])
	return math.Sqrt(dr*dr + dc*dc)
}

// KeyboardNeighbours maps each key of rows to the keys within maxDistance,
// nearest first. Keys at equal distance keep layout order.
func KeyboardNeighbours(rows []string, maxDistance float64) map[rune][]rune {
	pos := keyPositions(rows)
	var keys []rune
	for _, row := range rows {
		keys = append(keys, []rune(row)...)
	}
	table := make(map[rune][]rune, len(keys))
	for _, a := range keys {
		var near []rune
		for _, b := range keys {
			if a == b {
				continue
			}
			if keyDistance(pos[a], pos[b]) <= maxDistance {
				near = append(near, b)
			}
		}
		sort.SliceStable(near, func(i, j int) bool {
			return keyDistance(pos[a], pos[near[i]]) < keyDistance(pos[a], pos[near[j]])
		})
		table[a] = near
	}
	return table
}
