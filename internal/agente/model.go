package agente

// Agente representa um membro do corpo policial do departamento.
// DataDeIncorporacao trafega sempre no formato YYYY-MM-DD.
type Agente struct {
	ID                 int64  `json:"id"`
	Nome               string `json:"nome"`
	Cargo              string `json:"cargo"`
	DataDeIncorporacao string `json:"dataDeIncorporacao"`
}

// Input é o payload validado de criação/atualização completa.
type Input struct {
	Nome               string
	Cargo              string
	DataDeIncorporacao string
}

// Patch é o payload validado de atualização parcial.
type Patch struct {
	Nome               *string
	Cargo              *string
	DataDeIncorporacao *string
}

// Filtro parametriza a listagem de agentes.
type Filtro struct {
	Cargo string
	Sort  string
}
