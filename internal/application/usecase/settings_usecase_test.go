package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/application/store"
	"github.com/jhoicas/ems-api/internal/application/usecase"
	"github.com/jhoicas/ems-api/internal/domain"
	"github.com/jhoicas/ems-api/internal/domain/entity"
	"github.com/jhoicas/ems-api/internal/infrastructure/memory"
)

var (
	adminSession    = entity.Session{Username: "admin", Name: "Company Admin", Role: entity.RoleAdmin}
	employeeSession = entity.Session{Username: "jdoe", Name: "John Doe", Role: entity.RoleEmployee}
)

func TestSettingsGet_SinConfiguracionDevuelveDefecto(t *testing.T) {
	uc := usecase.NewSettingsUseCase(memory.NewKVStore(), zerolog.Nop())
	s, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings(), s)
}

func TestSettingsSave_SoloAdmin(t *testing.T) {
	uc := usecase.NewSettingsUseCase(memory.NewKVStore(), zerolog.Nop())
	_, err := uc.Save(context.Background(), employeeSession, dto.UpdateSettingsRequest{WorkingDaysPerMonth: 20, WorkingHoursPerDay: 7})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSettingsSave_NoPositivosVuelvenAlDefecto(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSettingsUseCase(memory.NewKVStore(), zerolog.Nop())

	saved, err := uc.Save(ctx, adminSession, dto.UpdateSettingsRequest{WorkingDaysPerMonth: 0, WorkingHoursPerDay: 6})
	require.NoError(t, err)
	assert.Equal(t, entity.Settings{WorkingDaysPerMonth: 22, WorkingHoursPerDay: 6}, saved)

	got, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestSettingsSave_FueraDeRango(t *testing.T) {
	uc := usecase.NewSettingsUseCase(memory.NewKVStore(), zerolog.Nop())
	_, err := uc.Save(context.Background(), adminSession, dto.UpdateSettingsRequest{WorkingDaysPerMonth: 40, WorkingHoursPerDay: 8})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEnsureDefaults_NoSobrescribe(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	uc := usecase.NewSettingsUseCase(kv, zerolog.Nop())

	require.NoError(t, uc.EnsureDefaults(ctx))
	raw, err := kv.Get(ctx, store.KeySettings)
	require.NoError(t, err)
	assert.NotNil(t, raw)

	_, err = uc.Save(ctx, adminSession, dto.UpdateSettingsRequest{WorkingDaysPerMonth: 20, WorkingHoursPerDay: 7})
	require.NoError(t, err)
	require.NoError(t, uc.EnsureDefaults(ctx))

	got, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.Settings{WorkingDaysPerMonth: 20, WorkingHoursPerDay: 7}, got)
}
