package caso

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Funções puras de validação do módulo de casos; todas as mensagens são
// coletadas antes de qualquer mutação.

// ValidarNovoCaso valida o corpo de POST /casos.
func ValidarNovoCaso(body []byte) (Input, []string) {
	campos, msgs := decodeCampos(body)
	if msgs != nil {
		return Input{}, msgs
	}
	return validarCamposObrigatorios(campos, nil)
}

// ValidarAtualizacaoCaso valida o corpo de PUT /casos/{id}.
// Campos desconhecidos são tolerados, mas `id` no corpo é proibido.
func ValidarAtualizacaoCaso(body []byte) (Input, []string) {
	campos, msgs := decodeCampos(body)
	if msgs != nil {
		return Input{}, msgs
	}

	var extra []string
	if _, ok := campos["id"]; ok {
		extra = append(extra, "Id não pode ser atualizado.")
	}
	return validarCamposObrigatorios(campos, extra)
}

// ValidarAtualizacaoParcialCaso valida o corpo de PATCH /casos/{id}.
func ValidarAtualizacaoParcialCaso(body []byte) (Patch, []string) {
	campos, msgs := decodeCampos(body)
	if msgs != nil {
		return Patch{}, msgs
	}

	var desconhecidos []string
	for chave := range campos {
		switch chave {
		case "titulo", "descricao", "status", "agente_id", "id":
		default:
			desconhecidos = append(desconhecidos, chave)
		}
	}
	if len(desconhecidos) > 0 {
		sort.Strings(desconhecidos)
		msgs = append(msgs, "Campos inválidos para a entidade caso: "+strings.Join(desconhecidos, ", ")+".")
	}
	if _, ok := campos["id"]; ok {
		msgs = append(msgs, "Id não pode ser atualizado.")
	}

	var patch Patch
	reconhecidos := 0

	if raw, ok := campos["titulo"]; ok {
		reconhecidos++
		if titulo, ok := decodeString(raw); ok && strings.TrimSpace(titulo) != "" {
			patch.Titulo = &titulo
		} else {
			msgs = append(msgs, "Título não pode ser vazio.")
		}
	}
	if raw, ok := campos["descricao"]; ok {
		reconhecidos++
		if descricao, ok := decodeString(raw); ok && strings.TrimSpace(descricao) != "" {
			patch.Descricao = &descricao
		} else {
			msgs = append(msgs, "Descrição não pode ser vazia.")
		}
	}
	if raw, ok := campos["status"]; ok {
		reconhecidos++
		if status, ok := decodeString(raw); ok && statusValido(status) {
			patch.Status = &status
		} else {
			msgs = append(msgs, `Status deve ser "aberto" ou "solucionado".`)
		}
	}
	if raw, ok := campos["agente_id"]; ok {
		reconhecidos++
		if agenteID, ok := decodePositiveInt(raw); ok {
			patch.AgenteID = &agenteID
		} else {
			msgs = append(msgs, "Id inválido.")
		}
	}

	if reconhecidos == 0 && len(desconhecidos) == 0 {
		msgs = append(msgs, "Deve conter pelo menos um campo para atualização.")
	}

	if len(msgs) > 0 {
		return Patch{}, msgs
	}
	return patch, nil
}

func validarCamposObrigatorios(campos map[string]json.RawMessage, msgs []string) (Input, []string) {
	var input Input

	if titulo, ok := decodeString(campos["titulo"]); ok && strings.TrimSpace(titulo) != "" {
		input.Titulo = titulo
	} else {
		msgs = append(msgs, "Título obrigatório.")
	}

	if descricao, ok := decodeString(campos["descricao"]); ok && strings.TrimSpace(descricao) != "" {
		input.Descricao = descricao
	} else {
		msgs = append(msgs, "Descrição obrigatória.")
	}

	if raw, ok := campos["status"]; ok {
		if status, ok := decodeString(raw); ok && statusValido(status) {
			input.Status = status
		} else {
			msgs = append(msgs, `Status deve ser "aberto" ou "solucionado".`)
		}
	} else {
		msgs = append(msgs, "Status obrigatório.")
	}

	if agenteID, ok := decodePositiveInt(campos["agente_id"]); ok {
		input.AgenteID = agenteID
	} else {
		msgs = append(msgs, "Id inválido.")
	}

	if len(msgs) > 0 {
		return Input{}, msgs
	}
	return input, nil
}

func statusValido(status string) bool {
	return status == StatusAberto || status == StatusSolucionado
}

func decodeCampos(body []byte) (map[string]json.RawMessage, []string) {
	var campos map[string]json.RawMessage
	if err := json.Unmarshal(body, &campos); err != nil || campos == nil {
		return nil, []string{"JSON inválido."}
	}
	return campos, nil
}

func decodeString(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodePositiveInt aceita inteiro JSON ou string numérica e exige valor
// estritamente positivo.
func decodePositiveInt(raw json.RawMessage) (int64, bool) {
	if raw == nil {
		return 0, false
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		id, err := num.Int64()
		return id, err == nil && id > 0
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return id, err == nil && id > 0
}
