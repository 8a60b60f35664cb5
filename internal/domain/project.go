package domain

import "fmt"

// Shift is a named start/end wall-clock template attached to a project,
// used to prefill the entry creation form.
type Shift struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Project is a billable client or work site ("postazione") that entries are
// logged against. Shift presets travel with the project as an embedded list.
type Project struct {
	ID                string  `json:"id"`
	UserID            string  `json:"user_id,omitempty"`
	Name              string  `json:"name"`
	Color             string  `json:"color"`
	DefaultHourlyRate float64 `json:"defaultHourlyRate"`
	Shifts            []Shift `json:"shifts,omitempty"`
}

// Palette holds the project color rotation offered when creating clients.
var Palette = []string{
	"#6366f1", // indigo
	"#ec4899", // pink
	"#10b981", // emerald
	"#f59e0b", // amber
	"#3b82f6", // blue
	"#8b5cf6", // violet
	"#ef4444", // red
	"#14b8a6", // teal
}

// PaletteColor returns the palette entry for i, wrapping around.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// Validate checks the fields a project needs before it can be saved.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.DefaultHourlyRate < 0 {
		return fmt.Errorf("default hourly rate must not be negative")
	}
	for _, s := range p.Shifts {
		if s.StartTime == "" || s.EndTime == "" {
			return fmt.Errorf("shift preset %q needs both start and end times", s.Name)
		}
	}
	return nil
}

// FindShift returns the shift preset with the given name, or nil.
func (p *Project) FindShift(name string) *Shift {
	for i := range p.Shifts {
		if p.Shifts[i].Name == name {
			return &p.Shifts[i]
		}
	}
	return nil
}
