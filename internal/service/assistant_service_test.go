package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culiplan/culiplan-api/internal/dto"
	"github.com/culiplan/culiplan-api/internal/models"
)

type stubDatasetBuilder struct{ doc models.BackupDocument }

func (s *stubDatasetBuilder) BuildBackup(_ context.Context) (models.BackupDocument, error) {
	return s.doc, nil
}

func TestAssistantChatFallsBackWithoutAPIKey(t *testing.T) {
	svc := NewAssistantService(AssistantServiceParams{
		Dataset: &stubDatasetBuilder{},
		BaseURL: "http://localhost:0",
		Model:   "gemini-2.5-flash",
	})

	resp := svc.Chat(context.Background(), dto.ChatRequest{Message: "¿Cuántas horas llevo?"})
	assert.True(t, resp.Fallback)
	assert.Equal(t, assistantFallbackReply, resp.Reply)
}

func TestAssistantChatFallsBackOnUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewAssistantService(AssistantServiceParams{
		Dataset: &stubDatasetBuilder{},
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
	})

	resp := svc.Chat(context.Background(), dto.ChatRequest{Message: "hola"})
	assert.True(t, resp.Fallback)
	assert.Equal(t, assistantFallbackReply, resp.Reply)
}

func TestAssistantChatReturnsModelReply(t *testing.T) {
	var captured generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content generateContent `json:"content"`
			}{
				{Content: generateContent{Role: "model", Parts: []generatePart{{Text: "Llevas 25 horas registradas."}}}},
			},
		})
	}))
	defer server.Close()

	svc := NewAssistantService(AssistantServiceParams{
		Dataset: &stubDatasetBuilder{doc: models.BackupDocument{
			Courses: []models.Course{{ID: "course-1", Name: "Procesos de Cocina"}},
		}},
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
	})

	resp := svc.Chat(context.Background(), dto.ChatRequest{
		Message: "¿Cuántas horas llevo?",
		History: []dto.ChatMessage{{Role: "user", Text: "hola"}, {Role: "model", Text: "¡Hola!"}},
	})
	assert.False(t, resp.Fallback)
	assert.Equal(t, "Llevas 25 horas registradas.", resp.Reply)

	// The system instruction embeds the teacher's dataset.
	require.NotNil(t, captured.SystemInstruction)
	assert.Contains(t, captured.SystemInstruction.Parts[0].Text, "Procesos de Cocina")
	// History plus the new message arrive in order.
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "user", captured.Contents[2].Role)
}
