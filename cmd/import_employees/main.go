// import_employees carga empleados desde un CSV exportado por sistemas de
// nómina heredados (separador ';', codificación ISO-8859-1 por defecto).
//
// Columnas: username;name;email;role;department;salary;password
// La primera fila es la cabecera. role, department, salary y password son opcionales.
//
// Uso: go run ./cmd/import_employees -file empleados.csv [-encoding latin1|utf8]
// Usa el mismo STORE_DRIVER / DATABASE_URL que la API.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/ems-api/internal/application/directory"
	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/domain"
	"github.com/jhoicas/ems-api/internal/domain/entity"
	"github.com/jhoicas/ems-api/internal/domain/repository"
	"github.com/jhoicas/ems-api/internal/infrastructure/memory"
	"github.com/jhoicas/ems-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ems-api/pkg/config"
	"github.com/jhoicas/ems-api/pkg/logger"
)

const columns = 7

// rowError fila que no se pudo interpretar.
type rowError struct {
	line int
	err  error
}

func main() {
	filePath := flag.String("file", "empleados.csv", "ruta del CSV")
	encoding := flag.String("encoding", "latin1", "codificación del archivo: latin1 | utf8")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "import_employees"})

	f, err := os.Open(*filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	reqs, bad, err := parseRows(decodeReader(f, *encoding))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	for _, b := range bad {
		log.Warn().Int("line", b.line).Err(b.err).Msg("fila ignorada")
	}

	ctx := context.Background()
	var kv repository.KVStore
	if cfg.Store.Driver == config.StorePostgres {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
			fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
			os.Exit(1)
		}
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()
		kv = postgres.NewKVStore(pool)
	} else {
		log.Warn().Msg("STORE_DRIVER=memory: la importación no se conserva al terminar")
		kv = memory.NewKVStore()
	}

	dir := directory.NewDirectoryUseCase(kv, log.Component("directory"),
		directory.WithPasswordCost(cfg.Security.BcryptCost))
	created, skipped, failed := importAll(ctx, dir, reqs)
	for _, e := range failed {
		log.Error().Err(e).Msg("no se pudo crear el empleado")
	}

	fmt.Printf("Importados %d empleados, %d ya existían, %d con error, %d filas inválidas\n",
		created, skipped, len(failed), len(bad))
	if len(failed) > 0 {
		os.Exit(1)
	}
}

// decodeReader envuelve r para convertir ISO-8859-1 a UTF-8.
func decodeReader(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(encoding) {
	case "utf8", "utf-8":
		return r
	default:
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
}

// parseRows lee el CSV y construye una solicitud por fila válida.
func parseRows(r io.Reader) ([]dto.CreateEmployeeRequest, []rowError, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.New("archivo vacío")
	}

	var out []dto.CreateEmployeeRequest
	var bad []rowError
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 3 || len(rec) > columns {
			bad = append(bad, rowError{line, fmt.Errorf("se esperaban entre 3 y %d columnas, hay %d", columns, len(rec))})
			continue
		}
		field := func(i int) string {
			if i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		req := dto.CreateEmployeeRequest{
			Username:   field(0),
			Name:       field(1),
			Email:      field(2),
			Role:       strings.ToLower(field(3)),
			Department: field(4),
			Password:   field(6),
		}
		if s := field(5); s != "" {
			// Los sistemas heredados exportan coma decimal.
			salary, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
			if err != nil {
				bad = append(bad, rowError{line, fmt.Errorf("salario %q: %w", s, err)})
				continue
			}
			req.Salary = salary
		}
		out = append(out, req)
	}
	return out, bad, nil
}

// employeeCreator es lo que la importación necesita del directorio.
type employeeCreator interface {
	Create(ctx context.Context, actor entity.Session, in dto.CreateEmployeeRequest) (*entity.Employee, error)
}

// importAll crea cada empleado como el actor del sistema. Los duplicados se
// cuentan como omitidos.
func importAll(ctx context.Context, dir employeeCreator, reqs []dto.CreateEmployeeRequest) (created, skipped int, failed []error) {
	actor := entity.SystemSession()
	for _, req := range reqs {
		_, err := dir.Create(ctx, actor, req)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
		default:
			failed = append(failed, fmt.Errorf("%s: %w", req.Username, err))
		}
	}
	return created, skipped, failed
}
