package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/ems-api/internal/application/store"
	"github.com/jhoicas/ems-api/internal/domain"
	"github.com/jhoicas/ems-api/internal/domain/entity"
	"github.com/jhoicas/ems-api/internal/domain/repository"
	"github.com/jhoicas/ems-api/pkg/jwt"
)

const sessionVersion = 1

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// CredentialFinder es lo que el login necesita del directorio.
type CredentialFinder interface {
	FindByCredentials(ctx context.Context, identifier, password, role string) (*entity.Employee, error)
	Get(ctx context.Context, username string) (*entity.Employee, error)
	EnsureSeedData(ctx context.Context) error
}

// AuthUseCase casos de uso de sesión: login, logout, sesión actual y datos demo.
// La última sesión iniciada se guarda en un único slot del almacén.
type AuthUseCase struct {
	finder  CredentialFinder
	current *store.Record[*entity.Session]
	jwtCfg  JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(finder CredentialFinder, kv repository.KVStore, log zerolog.Logger, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{
		finder:  finder,
		current: store.NewRecord(kv, store.KeyCurrent, sessionVersion, func() *entity.Session { return nil }, log),
		jwtCfg:  jwtCfg,
	}
}

// Login verifica identificador (username o email), password y rol; guarda la
// sesión y genera el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, identifier, password, role string, now time.Time) (string, *entity.Employee, error) {
	if identifier == "" || password == "" {
		return "", nil, domain.ErrValidation
	}
	emp, err := uc.finder.FindByCredentials(ctx, identifier, password, role)
	if err != nil {
		return "", nil, err
	}
	if emp == nil {
		return "", nil, domain.ErrUnauthorized
	}
	session := entity.SessionFor(*emp, now)
	if err := uc.current.Save(ctx, &session); err != nil {
		return "", nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, emp.Username, emp.Name, emp.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", nil, err
	}
	return token, emp, nil
}

// Logout limpia el slot de sesión.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	return uc.current.Clear(ctx)
}

// Current devuelve la última sesión iniciada o nil.
func (uc *AuthUseCase) Current(ctx context.Context) (*entity.Session, error) {
	return uc.current.Load(ctx)
}

// Demo garantiza que existan los usuarios semilla.
func (uc *AuthUseCase) Demo(ctx context.Context) error {
	return uc.finder.EnsureSeedData(ctx)
}

// Refresh contrasta una sesión extraída del token con el directorio: el
// empleado debe seguir existiendo y prevalecen su nombre y rol actuales.
func (uc *AuthUseCase) Refresh(ctx context.Context, s entity.Session) (entity.Session, error) {
	emp, err := uc.finder.Get(ctx, s.Username)
	if err != nil {
		return entity.Session{}, err
	}
	if emp == nil {
		return entity.Session{}, fmt.Errorf("%w: el empleado %q ya no existe", domain.ErrUnauthorized, s.Username)
	}
	s.Name = emp.Name
	s.Role = emp.Role
	return s, nil
}

// SessionFromToken valida el token y reconstruye la sesión que contiene.
func SessionFromToken(secret, token string) (entity.Session, error) {
	claims, err := jwt.Parse(secret, token)
	if err != nil {
		return entity.Session{}, err
	}
	s := entity.Session{Username: claims.Username, Name: claims.Name, Role: claims.Role}
	if claims.IssuedAt != nil {
		s.StartedAt = claims.IssuedAt.Time
	}
	return s, nil
}
