// Package directory contiene el directorio de empleados: CRUD, búsqueda,
// verificación de credenciales y datos semilla.
package directory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"

	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/application/store"
	"github.com/jhoicas/ems-api/internal/domain"
	"github.com/jhoicas/ems-api/internal/domain/entity"
	"github.com/jhoicas/ems-api/internal/domain/repository"
)

// DefaultPassword se asigna cuando se crea un empleado sin password.
const DefaultPassword = "1234"

const usersVersion = 1

type seed struct {
	employee entity.Employee
	password string
}

// Empleados semilla: admin/admin y jdoe/1234.
var seeds = []seed{
	{
		employee: entity.Employee{
			Username: "admin", Name: "Company Admin", Email: "admin@company.com",
			Role: entity.RoleAdmin, Department: "Management", Salary: decimal.NewFromInt(5000),
		},
		password: "admin",
	},
	{
		employee: entity.Employee{
			Username: "jdoe", Name: "John Doe", Email: "john.doe@company.com",
			Role: entity.RoleEmployee, Department: "Engineering", Salary: decimal.NewFromInt(3000),
		},
		password: "1234",
	},
}

// DirectoryUseCase aplica las reglas de negocio sobre los empleados.
// Cada mutación recarga la colección completa antes de modificarla.
type DirectoryUseCase struct {
	mu    sync.Mutex
	users *store.Record[[]entity.Employee]
	cost  int
	now   func() time.Time
	log   zerolog.Logger
}

// Option configura el DirectoryUseCase.
type Option func(*DirectoryUseCase)

// WithPasswordCost cambia el costo de bcrypt (los tests usan bcrypt.MinCost).
func WithPasswordCost(cost int) Option {
	return func(uc *DirectoryUseCase) { uc.cost = cost }
}

// WithClock reemplaza el reloj usado para JoinDate.
func WithClock(now func() time.Time) Option {
	return func(uc *DirectoryUseCase) { uc.now = now }
}

// NewDirectoryUseCase construye el directorio sobre el almacén clave-valor.
func NewDirectoryUseCase(kv repository.KVStore, log zerolog.Logger, opts ...Option) *DirectoryUseCase {
	uc := &DirectoryUseCase{
		users: store.NewRecord(kv, store.KeyUsers, usersVersion, func() []entity.Employee { return []entity.Employee{} }, log),
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
		log:   log,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// List devuelve los empleados en orden de inserción. Si filter no está vacío,
// filtra por coincidencia parcial sin distinguir mayúsculas en nombre, email o username.
func (uc *DirectoryUseCase) List(ctx context.Context, filter string) ([]entity.Employee, error) {
	users, err := uc.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.TrimSpace(filter)
	if q == "" {
		return users, nil
	}
	fold := cases.Fold()
	q = fold.String(q)
	out := make([]entity.Employee, 0, len(users))
	for _, u := range users {
		if strings.Contains(fold.String(u.Name), q) ||
			strings.Contains(fold.String(u.Email), q) ||
			strings.Contains(fold.String(u.Username), q) {
			out = append(out, u)
		}
	}
	return out, nil
}

// Get obtiene un empleado por username; nil si no existe.
func (uc *DirectoryUseCase) Get(ctx context.Context, username string) (*entity.Employee, error) {
	users, err := uc.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(users, username); i >= 0 {
		e := users[i]
		return &e, nil
	}
	return nil, nil
}

// FindByCredentials busca el primer empleado cuyo username o email coincide con
// identifier, con el rol indicado y cuyo password coincide. nil si no hay coincidencia.
func (uc *DirectoryUseCase) FindByCredentials(ctx context.Context, identifier, password, role string) (*entity.Employee, error) {
	users, err := uc.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username != identifier && u.Email != identifier {
			continue
		}
		if u.Role != role {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			continue
		}
		found := u
		return &found, nil
	}
	return nil, nil
}

// Create crea un empleado. Devuelve ErrDuplicate si el username o el email ya existen.
func (uc *DirectoryUseCase) Create(ctx context.Context, actor entity.Session, in dto.CreateEmployeeRequest) (*entity.Employee, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	username := strings.TrimSpace(in.Username)
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if username == "" || name == "" || email == "" {
		return nil, fmt.Errorf("%w: username, name y email son requeridos", domain.ErrValidation)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol %q no soportado", domain.ErrValidation, role)
	}
	if in.Salary.IsNegative() {
		return nil, fmt.Errorf("%w: el salario no puede ser negativo", domain.ErrValidation)
	}
	password := in.Password
	if password == "" {
		password = DefaultPassword
	}
	hash, err := uc.hash(password)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	users, err := uc.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	if identityTaken(users, -1, username, email) {
		return nil, fmt.Errorf("%w: username o email ya registrado", domain.ErrDuplicate)
	}
	e := entity.Employee{
		Username:     username,
		Name:         name,
		Email:        email,
		Role:         role,
		Department:   strings.TrimSpace(in.Department),
		JoinDate:     uc.now(),
		Salary:       in.Salary,
		PasswordHash: hash,
	}
	users = append(users, e)
	if err := uc.users.Save(ctx, users); err != nil {
		return nil, err
	}
	return &e, nil
}

// Update sobrescribe los campos presentes en patch. Username es inmutable.
func (uc *DirectoryUseCase) Update(ctx context.Context, actor entity.Session, username string, patch dto.UpdateEmployeeRequest) (*entity.Employee, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	var hash string
	if patch.Password != nil && *patch.Password != "" {
		h, err := uc.hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	users, err := uc.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(users, username)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	e := users[i]
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrValidation)
		}
		e.Name = name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email no puede quedar vacío", domain.ErrValidation)
		}
		if identityTaken(users, i, email) {
			return nil, fmt.Errorf("%w: email ya registrado", domain.ErrDuplicate)
		}
		e.Email = email
	}
	if patch.Role != nil {
		if !entity.ValidRole(*patch.Role) {
			return nil, fmt.Errorf("%w: rol %q no soportado", domain.ErrValidation, *patch.Role)
		}
		if e.Role == entity.RoleAdmin && *patch.Role != entity.RoleAdmin && countAdmins(users) == 1 {
			return nil, fmt.Errorf("%w: debe quedar al menos un admin", domain.ErrValidation)
		}
		e.Role = *patch.Role
	}
	if patch.Department != nil {
		e.Department = strings.TrimSpace(*patch.Department)
	}
	if patch.Salary != nil {
		if patch.Salary.IsNegative() {
			return nil, fmt.Errorf("%w: el salario no puede ser negativo", domain.ErrValidation)
		}
		e.Salary = *patch.Salary
	}
	if hash != "" {
		e.PasswordHash = hash
	}
	users[i] = e
	if err := uc.users.Save(ctx, users); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete elimina un empleado. Si no existe no hace nada. El último admin no se
// puede eliminar.
func (uc *DirectoryUseCase) Delete(ctx context.Context, actor entity.Session, username string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	users, err := uc.users.Load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(users, username)
	if i < 0 {
		return nil
	}
	if users[i].Role == entity.RoleAdmin && countAdmins(users) == 1 {
		return fmt.Errorf("%w: debe quedar al menos un admin", domain.ErrValidation)
	}
	users = append(users[:i], users[i+1:]...)
	return uc.users.Save(ctx, users)
}

// EnsureSeedData inserta los empleados semilla que falten. Es idempotente.
// Una semilla cuyo username o email ya usa otro empleado se omite.
func (uc *DirectoryUseCase) EnsureSeedData(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	users, err := uc.users.Load(ctx)
	if err != nil {
		return err
	}
	inserted := 0
	for _, s := range seeds {
		if indexOf(users, s.employee.Username) >= 0 {
			continue
		}
		if identityTaken(users, -1, s.employee.Username, s.employee.Email) {
			uc.log.Warn().Str("username", s.employee.Username).Str("email", s.employee.Email).
				Msg("semilla omitida: identificador en uso por otro empleado")
			continue
		}
		hash, err := uc.hash(s.password)
		if err != nil {
			return err
		}
		e := s.employee
		e.JoinDate = uc.now()
		e.PasswordHash = hash
		users = append(users, e)
		inserted++
	}
	if inserted == 0 {
		return nil
	}
	if err := uc.users.Save(ctx, users); err != nil {
		return err
	}
	uc.log.Info().Int("inserted", inserted).Msg("empleados semilla creados")
	return nil
}

func (uc *DirectoryUseCase) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func indexOf(users []entity.Employee, username string) int {
	for i, u := range users {
		if u.Username == username {
			return i
		}
	}
	return -1
}

// identityTaken indica si alguno de values ya es username o email de un
// empleado distinto del que está en skip. Login acepta ambos campos, así que
// comparten un único espacio de nombres.
func identityTaken(users []entity.Employee, skip int, values ...string) bool {
	for j, u := range users {
		if j == skip {
			continue
		}
		for _, v := range values {
			if u.Username == v || u.Email == v {
				return true
			}
		}
	}
	return false
}

func countAdmins(users []entity.Employee) int {
	n := 0
	for _, u := range users {
		if u.Role == entity.RoleAdmin {
			n++
		}
	}
	return n
}
