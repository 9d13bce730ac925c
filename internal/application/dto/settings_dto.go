package dto

// SettingsDTO parámetros de nómina.
type SettingsDTO struct {
	WorkingDaysPerMonth int `json:"working_days_per_month"`
	WorkingHoursPerDay  int `json:"working_hours_per_day"`
}

// UpdateSettingsRequest entrada para guardar la configuración. Valores no
// positivos se reemplazan por los valores por defecto.
type UpdateSettingsRequest struct {
	WorkingDaysPerMonth int `json:"working_days_per_month" validate:"gte=0,lte=31"`
	WorkingHoursPerDay  int `json:"working_hours_per_day" validate:"gte=0,lte=24"`
}
