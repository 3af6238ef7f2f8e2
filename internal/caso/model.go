package caso

// Status possíveis de um caso.
const (
	StatusAberto      = "aberto"
	StatusSolucionado = "solucionado"
)

// Caso representa uma investigação registrada no departamento.
// Agente carrega o resumo do responsável em listagens e buscas por id.
type Caso struct {
	ID        int64         `json:"id"`
	Titulo    string        `json:"titulo"`
	Descricao string        `json:"descricao"`
	Status    string        `json:"status"`
	AgenteID  int64         `json:"agente_id"`
	Agente    *AgenteResumo `json:"agente,omitempty"`
}

// AgenteResumo é a projeção do agente responsável embutida no caso.
type AgenteResumo struct {
	ID                 int64  `json:"id"`
	Nome               string `json:"nome"`
	Cargo              string `json:"cargo"`
	DataDeIncorporacao string `json:"dataDeIncorporacao"`
}

// Input é o payload validado de criação/atualização completa.
type Input struct {
	Titulo    string
	Descricao string
	Status    string
	AgenteID  int64
}

// Patch é o payload validado de atualização parcial.
type Patch struct {
	Titulo    *string
	Descricao *string
	Status    *string
	AgenteID  *int64
}

// Filtro parametriza a listagem de casos.
type Filtro struct {
	Status   string
	AgenteID int64
	Search   string
	OrderBy  string
	Order    string
}
