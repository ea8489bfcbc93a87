package domain

import "sort"

type WorldViewID int

var crewNames = map[string]struct{}{
	"Jobless Jim":       {},
	"Ex-Captain Siad":   {},
	"Adventurer Ada":    {},
	"Cabin Boy Jenkins": {},
	"Oarswoman Olga":    {},
	"Jittery Jim":       {},
	"Bosun Zarah":       {},
	"Jolly Jim":         {},
	"Spotter Virginia":  {},
	"Sailor Jakob":      {},
}

func IsCrewName(raw string) bool {
	_, ok := crewNames[CleanName(raw)]
	return ok
}

func CrewNames() []string {
	names := make([]string, 0, len(crewNames))
	for name := range crewNames {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
