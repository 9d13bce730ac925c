package entity

// Valores por defecto de Settings.
const (
	DefaultWorkingDaysPerMonth = 22
	DefaultWorkingHoursPerDay  = 8
)

// Settings parámetros de nómina (singleton).
type Settings struct {
	WorkingDaysPerMonth int `json:"working_days_per_month"`
	WorkingHoursPerDay  int `json:"working_hours_per_day"`
}

// DefaultSettings devuelve los parámetros por defecto (22 días, 8 horas).
func DefaultSettings() Settings {
	return Settings{
		WorkingDaysPerMonth: DefaultWorkingDaysPerMonth,
		WorkingHoursPerDay:  DefaultWorkingHoursPerDay,
	}
}

// Normalized reemplaza valores no positivos por los valores por defecto.
func (s Settings) Normalized() Settings {
	if s.WorkingDaysPerMonth <= 0 {
		s.WorkingDaysPerMonth = DefaultWorkingDaysPerMonth
	}
	if s.WorkingHoursPerDay <= 0 {
		s.WorkingHoursPerDay = DefaultWorkingHoursPerDay
	}
	return s
}
