package models

// Program is one scheduled workout entry.
// Progress is a completion fraction in [0, 1]; 0 means not started or rest day.
type Program struct {
	ID       int     `json:"id"`
	Day      string  `json:"day"`
	Muscle   string  `json:"muscle"`
	Progress float64 `json:"progress"`
}

// DefaultPrograms returns the demo week present at startup.
func DefaultPrograms() []Program {
	return []Program{
		{ID: 1, Day: "Monday", Muscle: "Chest", Progress: 0.8},
		{ID: 2, Day: "Tuesday", Muscle: "Back", Progress: 0.65},
		{ID: 3, Day: "Wednesday", Muscle: "Shoulder", Progress: 0.7},
		{ID: 4, Day: "Thursday", Muscle: "Bicep & Tricep", Progress: 0.75},
		{ID: 5, Day: "Friday", Muscle: "Leg", Progress: 0.95},
		{ID: 6, Day: "Saturday", Muscle: "Rest", Progress: 0.0},
	}
}
