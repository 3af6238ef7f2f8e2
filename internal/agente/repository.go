package agente

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/depolicia/registros/internal/db"
)

var (
	errNotFound        = errors.New("agente não encontrado")
	errCasosVinculados = errors.New("agente possui casos vinculados")
	errDeleteSemEfeito = errors.New("delete não removeu nenhuma linha")
)

const dbTimeout = 3 * time.Second

// sortMapping traduz o parâmetro sort para a cláusula ORDER BY.
// Valores desconhecidos caem na ordenação padrão por id.
var sortMapping = map[string]string{
	"dataDeIncorporacao":  "data_de_incorporacao ASC",
	"-dataDeIncorporacao": "data_de_incorporacao DESC",
}

// Repository fornece acesso aos dados de agentes.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

func (r *Repository) List(ctx context.Context, filtro Filtro) ([]Agente, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	orderBy, ok := sortMapping[filtro.Sort]
	if !ok {
		orderBy = "id ASC"
	}

	query := `
		SELECT id, nome, cargo, data_de_incorporacao
		FROM agentes
	`
	var args []any
	if filtro.Cargo != "" {
		query += ` WHERE cargo = $1`
		args = append(args, filtro.Cargo)
	}
	query += ` ORDER BY ` + orderBy

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agentes := []Agente{}
	for rows.Next() {
		a, err := scanAgente(rows)
		if err != nil {
			return nil, err
		}
		agentes = append(agentes, a)
	}
	return agentes, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id int64) (Agente, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT id, nome, cargo, data_de_incorporacao
		FROM agentes
		WHERE id = $1
	`, id)

	a, err := scanAgente(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Agente{}, errNotFound
	}
	return a, err
}

func (r *Repository) Create(ctx context.Context, input Input) (Agente, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		INSERT INTO agentes (nome, cargo, data_de_incorporacao)
		VALUES ($1, $2, $3)
		RETURNING id, nome, cargo, data_de_incorporacao
	`, input.Nome, input.Cargo, input.DataDeIncorporacao)

	return scanAgente(row)
}

func (r *Repository) Update(ctx context.Context, id int64, input Input) (Agente, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		UPDATE agentes
		SET nome = $2, cargo = $3, data_de_incorporacao = $4
		WHERE id = $1
		RETURNING id, nome, cargo, data_de_incorporacao
	`, id, input.Nome, input.Cargo, input.DataDeIncorporacao)

	a, err := scanAgente(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Agente{}, errNotFound
	}
	return a, err
}

func (r *Repository) UpdatePartial(ctx context.Context, id int64, patch Patch) (Agente, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	sets := []string{}
	args := []any{id}

	appendSet := func(coluna string, valor any) {
		args = append(args, valor)
		sets = append(sets, fmt.Sprintf("%s = $%d", coluna, len(args)))
	}

	if patch.Nome != nil {
		appendSet("nome", *patch.Nome)
	}
	if patch.Cargo != nil {
		appendSet("cargo", *patch.Cargo)
	}
	if patch.DataDeIncorporacao != nil {
		appendSet("data_de_incorporacao", *patch.DataDeIncorporacao)
	}

	row := r.db.QueryRow(ctx, `
		UPDATE agentes
		SET `+strings.Join(sets, ", ")+`
		WHERE id = $1
		RETURNING id, nome, cargo, data_de_incorporacao
	`, args...)

	a, err := scanAgente(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Agente{}, errNotFound
	}
	return a, err
}

// Delete remove o agente dentro de uma transação, bloqueando a remoção
// enquanto houver casos vinculados. Zero linhas afetadas após a checagem de
// existência indica falha interna, não 404.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var vinculado bool
		err := tx.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM casos WHERE agente_id = $1)
		`, id).Scan(&vinculado)
		if err != nil {
			return err
		}
		if vinculado {
			return errCasosVinculados
		}

		tag, err := tx.Exec(ctx, `DELETE FROM agentes WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errDeleteSemEfeito
		}
		return nil
	})
}

func scanAgente(row pgx.Row) (Agente, error) {
	var a Agente
	var data time.Time
	if err := row.Scan(&a.ID, &a.Nome, &a.Cargo, &data); err != nil {
		return Agente{}, err
	}
	a.DataDeIncorporacao = data.Format(dateLayout)
	return a, nil
}
