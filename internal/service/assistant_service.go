package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/culiplan/culiplan-api/internal/dto"
	"github.com/culiplan/culiplan-api/internal/models"
)

// assistantFallbackReply is shown whenever the upstream model cannot be
// reached. The assistant endpoint never surfaces transport errors.
const assistantFallbackReply = "Error al conectar con el asistente virtual. Verifica tu clave API."

const assistantSystemPrompt = "Eres el asistente virtual de CuliPlan, una aplicación de programación " +
	"didáctica para profesores de formación profesional. Responde siempre en español, de forma " +
	"breve y práctica. Usa exclusivamente los datos del profesor incluidos a continuación en " +
	"formato JSON para responder sobre sus módulos, unidades, diario de clase, calendario y exámenes."

type assistantDatasetBuilder interface {
	BuildBackup(ctx context.Context) (models.BackupDocument, error)
}

// AssistantService proxies chat turns to a Gemini-style generateContent
// endpoint, grounding every conversation on the teacher's own data.
type AssistantService struct {
	dataset assistantDatasetBuilder
	client  *http.Client
	logger  *zap.Logger
	baseURL string
	apiKey  string
	model   string
}

type AssistantServiceParams struct {
	Dataset assistantDatasetBuilder
	Logger  *zap.Logger
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func NewAssistantService(params AssistantServiceParams) *AssistantService {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantService{
		dataset: params.Dataset,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		baseURL: params.BaseURL,
		apiKey:  params.APIKey,
		model:   params.Model,
	}
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *generateContent  `json:"systemInstruction,omitempty"`
	Contents          []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// Chat answers one turn. Any failure, from a missing API key to an
// upstream outage, degrades to the fallback reply instead of an error.
func (s *AssistantService) Chat(ctx context.Context, req dto.ChatRequest) dto.ChatResponse {
	reply, err := s.generate(ctx, req)
	if err != nil {
		s.logger.Warn("assistant request failed", zap.Error(err))
		return dto.ChatResponse{Reply: assistantFallbackReply, Fallback: true}
	}
	return dto.ChatResponse{Reply: reply}
}

func (s *AssistantService) generate(ctx context.Context, req dto.ChatRequest) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("assistant api key is not configured")
	}

	snapshot, err := s.dataset.BuildBackup(ctx)
	if err != nil {
		return "", fmt.Errorf("build assistant dataset: %w", err)
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("encode assistant dataset: %w", err)
	}

	payload := generateRequest{
		SystemInstruction: &generateContent{
			Parts: []generatePart{{Text: assistantSystemPrompt + "\n\n" + string(data)}},
		},
	}
	for _, turn := range req.History {
		payload.Contents = append(payload.Contents, generateContent{
			Role:  turn.Role,
			Parts: []generatePart{{Text: turn.Text}},
		})
	}
	payload.Contents = append(payload.Contents, generateContent{
		Role:  "user",
		Parts: []generatePart{{Text: req.Message}},
	})

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode assistant request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.baseURL, s.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build assistant request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call assistant: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode assistant response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("assistant returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
