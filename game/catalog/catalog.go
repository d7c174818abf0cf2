// Package catalog holds the static situation-card catalogue. Cards are
// baked into source and exposed through read-only lookups; games copy a
// card on assignment so in-game changes never reach the catalogue.
package catalog

import (
	"fmt"
	"sync"

	"github.com/gridlock-games/gridlock-server/game/engine"
)

var (
	once  sync.Once
	cards []engine.SituationCard
)

// All returns every situation card in the catalogue, ordered by ID.
func All() []engine.SituationCard {
	once.Do(build)
	out := make([]engine.SituationCard, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}

// Lookup returns the situation card with the given ID.
func Lookup(id int) (engine.SituationCard, error) {
	once.Do(build)
	for _, c := range cards {
		if c.ID == id {
			return c.Clone(), nil
		}
	}
	return engine.SituationCard{}, fmt.Errorf("there is no situation card with id %d", id)
}

func build() {
	cards = []engine.SituationCard{
		{
			ID:          1,
			Title:       "Regular traffic",
			Description: "Regular traffic in all zones.",
			Goal:        "Facilitate transport operations. Rewards green behavior.",
			Costs: costs(
				engine.TrafficLevelOne, engine.TrafficLevelOne, engine.TrafficLevelOne,
				engine.TrafficLevelOne, engine.TrafficLevelOne, engine.TrafficLevelOne,
			),
			ObjectiveCards: []engine.ObjectiveCard{
				engine.NewObjectiveCard("Packages", 13, 7, 15, nil, engine.CargoPackages, 5),
				engine.NewObjectiveCard("Passengers", 8, 11, 27, electric(), engine.CargoPeople, 3),
				engine.NewObjectiveCard("Passengers", 15, 23, 2, nil, engine.CargoPeople, 4),
				engine.NewObjectiveCard("Passengers", 17, 22, 14, electric(), engine.CargoPeople, 4),
				engine.NewObjectiveCard("Passengers", 5, 12, 28, nil, engine.CargoPeople, 3),
				engine.NewObjectiveCard("Passengers", 11, 14, 24, nil, engine.CargoPeople, 3),
			},
		},
		{
			ID:          2,
			Title:       "Concert",
			Description: "City centre is crowded. Reduced capacity for traffic.",
			Goal:        "Facilitate transport of people to concert. Limit other traffic in city centre to what is necesary.",
			Costs: costs(
				engine.TrafficLevelOne, engine.TrafficLevelOne, engine.TrafficLevelOne,
				engine.TrafficLevelThree, engine.TrafficLevelFive, engine.TrafficLevelOne,
			),
			ObjectiveCards: []engine.ObjectiveCard{
				engine.NewObjectiveCard("Passengers", 8, 14, 12, nil, engine.CargoPeople, 4),
				engine.NewObjectiveCard("Passengers", 14, 28, 12, nil, engine.CargoPeople, 5),
				engine.NewObjectiveCard("Passengers", 24, 22, 12, nil, engine.CargoPeople, 5),
				engine.NewObjectiveCard("Passengers", 22, 10, 12, electric(), engine.CargoPeople, 3),
				engine.NewObjectiveCard("Passengers", 5, 13, 28, nil, engine.CargoPeople, 4),
				engine.NewObjectiveCard("Packages", 23, 10, 2, nil, engine.CargoPackages, 5),
			},
		},
		{
			ID:          3,
			Title:       "Gas Leakage",
			Description: "Gas leakage in Industry Park zone. Health and explosion risk.",
			Goal:        "Evacuate people and dangerous goods from the area. Safety comes first.",
			Costs: costs(
				engine.TrafficLevelOne, engine.TrafficLevelOne, engine.TrafficLevelOne,
				engine.TrafficLevelThree, engine.TrafficLevelOne, engine.TrafficLevelOne,
			),
			ObjectiveCards: []engine.ObjectiveCard{
				engine.NewObjectiveCard("Evacuate", 4, 0, 10, []engine.RestrictionType{engine.RestrictionEmergency}, engine.CargoPeople, 4),
				engine.NewObjectiveCard("Dangerous goods", 9, 0, 17, []engine.RestrictionType{engine.RestrictionHazard, engine.RestrictionEmergency}, engine.CargoPackages, 4),
				engine.NewObjectiveCard("Ambulance", 15, 0, 15, []engine.RestrictionType{engine.RestrictionEmergency}, engine.CargoPeople, 2),
				engine.NewObjectiveCard("Evacuate", 5, 1, 17, []engine.RestrictionType{engine.RestrictionHazard, engine.RestrictionEmergency}, engine.CargoPackages, 3),
				engine.NewObjectiveCard("Passengers", 24, 22, 10, nil, engine.CargoPeople, 4),
				engine.NewObjectiveCard("Packages", 5, 5, 23, nil, engine.CargoPackages, 5),
			},
		},
		{
			ID:          4,
			Title:       "Accident",
			Description: "Accident in ring road section I6 - I7. Traffic blocked in east-bound lanes",
			Goal:        "Support emergency services. Coordinate with other zones.",
			Costs: costs(
				engine.TrafficLevelOne, engine.TrafficLevelOne, engine.TrafficLevelThree,
				engine.TrafficLevelFive, engine.TrafficLevelThree, engine.TrafficLevelOne,
			),
			ObjectiveCards: []engine.ObjectiveCard{
				engine.NewObjectiveCard("Ambulance", 15, 19, 14, []engine.RestrictionType{engine.RestrictionEmergency}, engine.CargoPeople, 1),
				engine.NewObjectiveCard("Car removal", 14, 19, 14, []engine.RestrictionType{engine.RestrictionEmergency}, engine.CargoPackages, 1),
				engine.NewObjectiveCard("Passengers", 16, 16, 28, nil, engine.CargoPeople, 5),
				engine.NewObjectiveCard("Passengers", 17, 20, 28, electric(), engine.CargoPeople, 3),
				engine.NewObjectiveCard("Passengers", 27, 27, 15, electric(), engine.CargoPeople, 4),
				engine.NewObjectiveCard("Packages", 23, 24, 7, nil, engine.CargoPackages, 5),
			},
		},
		{
			ID:          5,
			Title:       "Airport train stops",
			Description: "No train from City Centre to Airport during rush hours. Delays for passengers.",
			Goal:        "Passengers reach airport in time.",
			Costs: costs(
				engine.TrafficLevelOne, engine.TrafficLevelTwo, engine.TrafficLevelOne,
				engine.TrafficLevelFour, engine.TrafficLevelOne, engine.TrafficLevelFour,
			),
			ObjectiveCards: []engine.ObjectiveCard{
				engine.NewObjectiveCard("Passengers", 23, 10, 27, electric(), engine.CargoPeople, 4),
				engine.NewObjectiveCard("Passengers", 0, 2, 27, nil, engine.CargoPeople, 4),
				engine.NewObjectiveCard("Passengers", 5, 7, 28, nil, engine.CargoPeople, 5),
				engine.NewObjectiveCard("Passengers", 16, 10, 28, nil, engine.CargoPeople, 4),
				engine.NewObjectiveCard("Passengers", 14, 10, 27, nil, engine.CargoPeople, 4),
				engine.NewObjectiveCard("Packages", 23, 24, 8, nil, engine.CargoPackages, 5),
			},
		},
	}
}

// costs builds a traffic table in the fixed district order industry park,
// suburbs, port, ring road, city centre, airport.
func costs(industry, suburbs, port, ringRoad, cityCentre, airport engine.TrafficLevel) []engine.DistrictCost {
	return []engine.DistrictCost{
		{District: engine.DistrictIndustryPark, Traffic: industry},
		{District: engine.DistrictSuburbs, Traffic: suburbs},
		{District: engine.DistrictPort, Traffic: port},
		{District: engine.DistrictRingRoad, Traffic: ringRoad},
		{District: engine.DistrictCityCentre, Traffic: cityCentre},
		{District: engine.DistrictAirport, Traffic: airport},
	}
}

func electric() []engine.RestrictionType {
	return []engine.RestrictionType{engine.RestrictionElectric}
}
