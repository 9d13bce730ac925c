package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/application/store"
	"github.com/jhoicas/ems-api/internal/domain"
	"github.com/jhoicas/ems-api/internal/domain/entity"
	"github.com/jhoicas/ems-api/internal/domain/repository"
)

const settingsVersion = 1

// SettingsUseCase lectura y escritura de la configuración de nómina.
type SettingsUseCase struct {
	mu       sync.Mutex
	settings *store.Record[*entity.Settings]
	log      zerolog.Logger
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(kv repository.KVStore, log zerolog.Logger) *SettingsUseCase {
	return &SettingsUseCase{
		settings: store.NewRecord(kv, store.KeySettings, settingsVersion, func() *entity.Settings { return nil }, log),
		log:      log,
	}
}

// Get devuelve la configuración guardada o los valores por defecto.
func (uc *SettingsUseCase) Get(ctx context.Context) (entity.Settings, error) {
	s, err := uc.settings.Load(ctx)
	if err != nil {
		return entity.Settings{}, err
	}
	if s == nil {
		return entity.DefaultSettings(), nil
	}
	return s.Normalized(), nil
}

// Save guarda la configuración. Solo admin.
func (uc *SettingsUseCase) Save(ctx context.Context, actor entity.Session, in dto.UpdateSettingsRequest) (entity.Settings, error) {
	if !actor.IsAdmin() {
		return entity.Settings{}, domain.ErrForbidden
	}
	if in.WorkingDaysPerMonth > 31 || in.WorkingHoursPerDay > 24 {
		return entity.Settings{}, fmt.Errorf("%w: días por mes <= 31 y horas por día <= 24", domain.ErrValidation)
	}
	s := entity.Settings{
		WorkingDaysPerMonth: in.WorkingDaysPerMonth,
		WorkingHoursPerDay:  in.WorkingHoursPerDay,
	}.Normalized()

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.settings.Save(ctx, &s); err != nil {
		return entity.Settings{}, err
	}
	uc.log.Info().
		Str("by", actor.Username).
		Int("working_days_per_month", s.WorkingDaysPerMonth).
		Int("working_hours_per_day", s.WorkingHoursPerDay).
		Msg("configuración actualizada")
	return s, nil
}

// EnsureDefaults persiste los valores por defecto si aún no hay configuración.
func (uc *SettingsUseCase) EnsureDefaults(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s, err := uc.settings.Load(ctx)
	if err != nil {
		return err
	}
	if s != nil {
		return nil
	}
	def := entity.DefaultSettings()
	return uc.settings.Save(ctx, &def)
}
