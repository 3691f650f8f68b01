package engine

import (
	"sort"

	"github.com/Liam-made-young/REPUBLIC/internal/domain"
)

// runHealing выполняет лечение госпиталями команды в начале её хода.
//
// Порядок детерминирован и одинаков на всех репликах: госпитали в порядке
// создания; внутри радиуса — юниты по возрастанию дистанции Чебышёва,
// при равенстве по возрастанию ID. Лечение стоит золото владельцу
// (HospitalCostPerPoint за единицу HP) и молча останавливается, когда
// казна исчерпана: оплачивается доступный префикс, частичные очки допустимы.
func runHealing(state *domain.GameState, team *domain.Team) {
	for _, b := range state.BuildingsOf(team.ID) {
		if b.Type != domain.BuildingHospital {
			continue
		}
		healFromHospital(state, team, b)
	}
}

func healFromHospital(state *domain.GameState, team *domain.Team, hospital *domain.Building) {
	radius := hospital.HealRadius()

	var wounded []*domain.Unit
	for _, u := range state.UnitsOf(team.ID) {
		if u.HP < u.MaxHP && u.Pos.Dist(hospital.Pos) <= radius {
			wounded = append(wounded, u)
		}
	}
	sort.SliceStable(wounded, func(i, j int) bool {
		di := wounded[i].Pos.Dist(hospital.Pos)
		dj := wounded[j].Pos.Dist(hospital.Pos)
		if di != dj {
			return di < dj
		}
		return wounded[i].ID < wounded[j].ID
	})

	for _, u := range wounded {
		points := domain.HospitalHealPerUnit
		if missing := u.MaxHP - u.HP; missing < points {
			points = missing
		}
		affordable := team.Gold / domain.HospitalCostPerPoint
		if affordable < points {
			points = affordable
		}
		if points <= 0 {
			return
		}
		healed := u.Heal(points)
		team.Spend(healed * domain.HospitalCostPerPoint)
	}
}
