package agente

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Funções puras de validação: recebem o corpo bruto e devolvem o valor
// normalizado ou a lista completa de mensagens por campo. Nenhuma mutação
// acontece enquanto houver mensagens pendentes.

// ValidarNovoAgente valida o corpo de POST /agentes.
func ValidarNovoAgente(body []byte) (Input, []string) {
	campos, msgs := decodeCampos(body)
	if msgs != nil {
		return Input{}, msgs
	}
	return validarCamposObrigatorios(campos, nil)
}

// ValidarAtualizacaoAgente valida o corpo de PUT /agentes/{id}.
// Campos desconhecidos são tolerados, mas `id` no corpo é proibido.
func ValidarAtualizacaoAgente(body []byte) (Input, []string) {
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

// ValidarAtualizacaoParcialAgente valida o corpo de PATCH /agentes/{id}.
// Apenas nome, cargo e dataDeIncorporacao são reconhecidos; qualquer outra
// chave é rejeitada nomeando as chaves ofensoras.
func ValidarAtualizacaoParcialAgente(body []byte) (Patch, []string) {
	campos, msgs := decodeCampos(body)
	if msgs != nil {
		return Patch{}, msgs
	}

	var desconhecidos []string
	for chave := range campos {
		switch chave {
		case "nome", "cargo", "dataDeIncorporacao", "id":
		default:
			desconhecidos = append(desconhecidos, chave)
		}
	}
	if len(desconhecidos) > 0 {
		sort.Strings(desconhecidos)
		msgs = append(msgs, "Campos inválidos para agente: "+strings.Join(desconhecidos, ", ")+".")
	}
	if _, ok := campos["id"]; ok {
		msgs = append(msgs, "Id não pode ser atualizado.")
	}

	var patch Patch
	reconhecidos := 0

	if raw, ok := campos["nome"]; ok {
		reconhecidos++
		if nome, ok := decodeString(raw); ok && strings.TrimSpace(nome) != "" {
			patch.Nome = &nome
		} else {
			msgs = append(msgs, "Nome não pode ser vazio.")
		}
	}
	if raw, ok := campos["cargo"]; ok {
		reconhecidos++
		if cargo, ok := decodeString(raw); ok && strings.TrimSpace(cargo) != "" {
			patch.Cargo = &cargo
		} else {
			msgs = append(msgs, "Cargo não pode ser vazio.")
		}
	}
	if raw, ok := campos["dataDeIncorporacao"]; ok {
		reconhecidos++
		data, dataMsgs := validarData(raw)
		if len(dataMsgs) > 0 {
			msgs = append(msgs, dataMsgs...)
		} else {
			patch.DataDeIncorporacao = &data
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

	if nome, ok := decodeString(campos["nome"]); ok && strings.TrimSpace(nome) != "" {
		input.Nome = nome
	} else {
		msgs = append(msgs, "Nome é obrigatório.")
	}

	if cargo, ok := decodeString(campos["cargo"]); ok && strings.TrimSpace(cargo) != "" {
		input.Cargo = cargo
	} else {
		msgs = append(msgs, "Cargo é obrigatório.")
	}

	if raw, ok := campos["dataDeIncorporacao"]; ok {
		data, dataMsgs := validarData(raw)
		if len(dataMsgs) > 0 {
			msgs = append(msgs, dataMsgs...)
		} else {
			input.DataDeIncorporacao = data
		}
	} else {
		msgs = append(msgs, "Data de incorporação é obrigatória.")
	}

	if len(msgs) > 0 {
		return Input{}, msgs
	}
	return input, nil
}

func validarData(raw json.RawMessage) (string, []string) {
	valor, ok := decodeString(raw)
	if !ok {
		return "", []string{"Data de incorporação deve estar no formato YYYY-MM-DD."}
	}

	data, err := time.Parse(dateLayout, valor)
	if err != nil {
		return "", []string{"Data de incorporação deve estar no formato YYYY-MM-DD."}
	}

	if data.After(time.Now()) {
		return "", []string{"Data não pode estar no futuro."}
	}

	return valor, nil
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
