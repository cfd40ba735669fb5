// Package ai wraps the hosted text-generation service and the external
// generation workflow webhook. It only moves text in and out; committing the
// result into a document version is the caller's job.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"tender-drafting-api/internal/entity"
)

// Action is the kind of text transformation requested.
type Action string

const (
	ActionGenerate Action = "generate"
	ActionExpand   Action = "expand"
	ActionShorten  Action = "shorten"
	ActionRewrite  Action = "rewrite"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionGenerate, ActionExpand, ActionShorten, ActionRewrite:
		return Action(s), nil
	}

	return "", fmt.Errorf("unknown AI action %q", s)
}

// Annotation is the label appended to version names produced by this action.
func (a Action) Annotation() string {
	switch a {
	case ActionGenerate:
		return "AI generate"
	case ActionExpand:
		return "AI expand"
	case ActionShorten:
		return "AI shorten"
	}

	return "AI rewrite"
}

var ErrGenerationFailed = errors.New("failed to generate text")

// Client talks to the hosted generation API and the workflow webhook.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	webhookURL string
}

func NewClient(baseURL string, apiKey string, model string, webhookURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		webhookURL: webhookURL,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// ProcessText runs one synchronous-style generation action and returns the
// revised text. Expand, shorten and rewrite require the current text.
func (c *Client) ProcessText(ctx context.Context, tenderName string, data *entity.TenderData, fieldIdentifier string, action Action, currentText string) (string, error) {
	if action != ActionGenerate && currentText == "" {
		return "", fmt.Errorf("current text is required for action %s", action)
	}

	tenderContext, err := summarizeTenderContext(tenderName, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	prompt := buildPrompt(tenderContext, fieldIdentifier, action, currentText)

	body, err := json.Marshal(generateRequest{Model: c.model, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d: %s", ErrGenerationFailed, resp.StatusCode, raw)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return parsed.Text, nil
}

type workflowRequest struct {
	TenderId        string `json:"tender_id"`
	FieldIdentifier string `json:"field_identifier"`
}

// TriggerWorkflow fires the external generation workflow for a field. Success
// means the request was accepted; the produced text arrives out of band.
func (c *Client) TriggerWorkflow(ctx context.Context, tenderId string, fieldIdentifier string) error {
	body, err := json.Marshal(workflowRequest{TenderId: tenderId, FieldIdentifier: fieldIdentifier})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("workflow webhook rejected request: status %d: %s", resp.StatusCode, raw)
	}

	return nil
}

func buildPrompt(tenderContext string, fieldIdentifier string, action Action, currentText string) string {
	var instruction string
	switch action {
	case ActionGenerate:
		instruction = "Basándote en el contexto proporcionado, genera una propuesta de texto concisa, profesional y técnicamente adecuada para el campo solicitado. El texto debe ser un borrador inicial que el usuario pueda editar y mejorar fácilmente. No incluyas introducciones. Devuelve únicamente el texto para el campo."
	case ActionExpand:
		instruction = fmt.Sprintf("Toma el siguiente texto y expándelo, añadiendo más detalles y elaborando los puntos clave, manteniendo el tono profesional y el contexto del expediente. No incluyas introducciones. Devuelve únicamente el texto expandido.\n\nTexto a expandir:\n\"\"\"\n%s\n\"\"\"", currentText)
	case ActionShorten:
		instruction = fmt.Sprintf("Resume y acorta el siguiente texto, haciéndolo más conciso y directo sin perder la información esencial. Mantén el tono profesional y el contexto del expediente. No incluyas introducciones. Devuelve únicamente el texto acortado.\n\nTexto a acortar:\n\"\"\"\n%s\n\"\"\"", currentText)
	case ActionRewrite:
		instruction = fmt.Sprintf("Reescribe el siguiente texto con un estilo alternativo, mejorando la claridad o la redacción, pero manteniendo el mismo significado. Mantén el tono profesional y el contexto del expediente. No incluyas introducciones. Devuelve únicamente el texto reescrito.\n\nTexto a reescribir:\n\"\"\"\n%s\n\"\"\"", currentText)
	}

	return fmt.Sprintf(`Eres un asistente experto en contratación pública en España. Tu tarea es ayudar a un funcionario a redactar borradores para un expediente de licitación.

**Contexto del Expediente (datos ya introducidos):**
`+"```json\n%s\n```"+`

**Campo en el que se trabaja:**
"%s"

**Instrucción:**
%s
`, tenderContext, fieldIdentifier, instruction)
}
