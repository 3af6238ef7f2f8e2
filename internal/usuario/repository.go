package usuario

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var errNotFound = errors.New("usuário não encontrado")

const dbTimeout = 3 * time.Second

// Usuario é a conta de acesso à API. Senha guarda apenas o hash.
type Usuario struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"-"`
}

// Repository fornece acesso aos dados de usuários.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

func (r *Repository) Create(ctx context.Context, u Usuario) (Usuario, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO usuarios (nome, email, senha)
		VALUES ($1, $2, $3)
		RETURNING id
	`, u.Nome, u.Email, u.Senha).Scan(&u.ID)
	return u, err
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (Usuario, error) {
	return r.findBy(ctx, "email", email)
}

func (r *Repository) FindByNome(ctx context.Context, nome string) (Usuario, error) {
	return r.findBy(ctx, "nome", nome)
}

func (r *Repository) findBy(ctx context.Context, coluna, valor string) (Usuario, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var u Usuario
	err := r.db.QueryRow(ctx, `
		SELECT id, nome, email, senha
		FROM usuarios
		WHERE `+coluna+` = $1
	`, valor).Scan(&u.ID, &u.Nome, &u.Email, &u.Senha)
	if errors.Is(err, pgx.ErrNoRows) {
		return Usuario{}, errNotFound
	}
	return u, err
}
