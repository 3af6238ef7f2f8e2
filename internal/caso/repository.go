package caso

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errNotFound        = errors.New("caso não encontrado")
	errDeleteSemEfeito = errors.New("delete não removeu nenhuma linha")
)

const (
	dbTimeout  = 3 * time.Second
	dateLayout = "2006-01-02"
)

// orderByMapping traduz o parâmetro orderBy para a coluna whitelisted.
// Valores desconhecidos caem na ordenação padrão por id.
var orderByMapping = map[string]string{
	"titulo":    "c.titulo",
	"status":    "c.status",
	"agente_id": "c.agente_id",
}

// Repository fornece acesso aos dados de casos.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

const selectComAgente = `
	SELECT c.id, c.titulo, c.descricao, c.status, c.agente_id,
	       a.id, a.nome, a.cargo, a.data_de_incorporacao
	FROM casos c
	LEFT JOIN agentes a ON a.id = c.agente_id
`

func (r *Repository) List(ctx context.Context, filtro Filtro) ([]Caso, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := selectComAgente
	var clauses []string
	var args []any

	addClause := func(clause string, valor any) {
		args = append(args, valor)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filtro.Status != "" {
		addClause("c.status = $%d", filtro.Status)
	}
	if filtro.AgenteID > 0 {
		addClause("c.agente_id = $%d", filtro.AgenteID)
	}
	if filtro.Search != "" {
		args = append(args, "%"+filtro.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(c.titulo ILIKE $%d OR c.descricao ILIKE $%d)", len(args), len(args)))
	}

	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}

	coluna, ok := orderByMapping[filtro.OrderBy]
	if !ok {
		coluna = "c.id"
	}
	direcao := "ASC"
	if strings.EqualFold(filtro.Order, "desc") {
		direcao = "DESC"
	}
	query += ` ORDER BY ` + coluna + ` ` + direcao

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	casos := []Caso{}
	for rows.Next() {
		c, err := scanCasoComAgente(rows)
		if err != nil {
			return nil, err
		}
		casos = append(casos, c)
	}
	return casos, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id int64) (Caso, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, selectComAgente+` WHERE c.id = $1`, id)

	c, err := scanCasoComAgente(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Caso{}, errNotFound
	}
	return c, err
}

// ListByAgente devolve os casos de um agente, sem o resumo embutido.
func (r *Repository) ListByAgente(ctx context.Context, agenteID int64) ([]Caso, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, titulo, descricao, status, agente_id
		FROM casos
		WHERE agente_id = $1
		ORDER BY id
	`, agenteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	casos := []Caso{}
	for rows.Next() {
		var c Caso
		if err := rows.Scan(&c.ID, &c.Titulo, &c.Descricao, &c.Status, &c.AgenteID); err != nil {
			return nil, err
		}
		casos = append(casos, c)
	}
	return casos, rows.Err()
}

func (r *Repository) Create(ctx context.Context, input Input) (Caso, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var c Caso
	err := r.db.QueryRow(ctx, `
		INSERT INTO casos (titulo, descricao, status, agente_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, titulo, descricao, status, agente_id
	`, input.Titulo, input.Descricao, input.Status, input.AgenteID).
		Scan(&c.ID, &c.Titulo, &c.Descricao, &c.Status, &c.AgenteID)
	return c, err
}

func (r *Repository) Update(ctx context.Context, id int64, input Input) (Caso, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var c Caso
	err := r.db.QueryRow(ctx, `
		UPDATE casos
		SET titulo = $2, descricao = $3, status = $4, agente_id = $5
		WHERE id = $1
		RETURNING id, titulo, descricao, status, agente_id
	`, id, input.Titulo, input.Descricao, input.Status, input.AgenteID).
		Scan(&c.ID, &c.Titulo, &c.Descricao, &c.Status, &c.AgenteID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Caso{}, errNotFound
	}
	return c, err
}

func (r *Repository) UpdatePartial(ctx context.Context, id int64, patch Patch) (Caso, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	sets := []string{}
	args := []any{id}

	appendSet := func(coluna string, valor any) {
		args = append(args, valor)
		sets = append(sets, fmt.Sprintf("%s = $%d", coluna, len(args)))
	}

	if patch.Titulo != nil {
		appendSet("titulo", *patch.Titulo)
	}
	if patch.Descricao != nil {
		appendSet("descricao", *patch.Descricao)
	}
	if patch.Status != nil {
		appendSet("status", *patch.Status)
	}
	if patch.AgenteID != nil {
		appendSet("agente_id", *patch.AgenteID)
	}

	var c Caso
	err := r.db.QueryRow(ctx, `
		UPDATE casos
		SET `+strings.Join(sets, ", ")+`
		WHERE id = $1
		RETURNING id, titulo, descricao, status, agente_id
	`, args...).Scan(&c.ID, &c.Titulo, &c.Descricao, &c.Status, &c.AgenteID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Caso{}, errNotFound
	}
	return c, err
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM casos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errDeleteSemEfeito
	}
	return nil
}

func scanCasoComAgente(row pgx.Row) (Caso, error) {
	var c Caso
	var agenteID *int64
	var nome, cargo *string
	var data *time.Time

	if err := row.Scan(&c.ID, &c.Titulo, &c.Descricao, &c.Status, &c.AgenteID,
		&agenteID, &nome, &cargo, &data); err != nil {
		return Caso{}, err
	}

	if agenteID != nil {
		c.Agente = &AgenteResumo{
			ID:                 *agenteID,
			Nome:               *nome,
			Cargo:              *cargo,
			DataDeIncorporacao: data.Format(dateLayout),
		}
	}
	return c, nil
}
