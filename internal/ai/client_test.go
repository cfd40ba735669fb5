package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tender-drafting-api/internal/entity"

	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	for _, s := range []string{"generate", "expand", "shorten", "rewrite"} {
		a, err := ParseAction(s)
		require.NoError(t, err)
		require.Equal(t, Action(s), a)
	}

	_, err := ParseAction("translate")
	require.Error(t, err)
}

func TestProcessText_SendsContextAndReturnsText(t *testing.T) {
	var gotPath, gotAuth, gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt = req.Prompt

		json.NewEncoder(w).Encode(generateResponse{Text: "texto generado"})
	}))
	defer srv.Close()

	data := entity.NewBlankTenderData()
	data.Stage1.Needs = data.Stage1.Needs.AppendVersion("necesitamos impresoras", "edited")
	data.Stage3.CharacteristicsData.BaseBudget = "90000"

	c := NewClient(srv.URL, "secret-key", "gemini-2.5-flash", "")
	text, err := c.ProcessText(context.Background(), "Licitación 1", &data, "stage1.needs", ActionGenerate, "")
	require.NoError(t, err)
	require.Equal(t, "texto generado", text)

	require.Equal(t, "/v1/generate", gotPath)
	require.Equal(t, "Bearer secret-key", gotAuth)
	// documents collapse to their active content in the prompt context
	require.Contains(t, gotPrompt, "necesitamos impresoras")
	require.Contains(t, gotPrompt, "90000")
	require.Contains(t, gotPrompt, `"stage1.needs"`)
}

func TestProcessText_CurrentTextRequiredForRevisions(t *testing.T) {
	c := NewClient("http://unused", "", "m", "")
	data := entity.NewBlankTenderData()

	for _, action := range []Action{ActionExpand, ActionShorten, ActionRewrite} {
		_, err := c.ProcessText(context.Background(), "T", &data, "stage1.needs", action, "")
		require.Error(t, err)
	}
}

func TestProcessText_NonSuccessStatusIsGenerationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	data := entity.NewBlankTenderData()
	c := NewClient(srv.URL, "k", "m", "")

	_, err := c.ProcessText(context.Background(), "T", &data, "stage1.needs", ActionRewrite, "texto actual")
	require.ErrorIs(t, err, ErrGenerationFailed)
}

func TestTriggerWorkflow_PostsTenderAndField(t *testing.T) {
	var got workflowRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient("", "", "", srv.URL)
	require.NoError(t, c.TriggerWorkflow(context.Background(), "tender-1", "stage3.pcap"))
	require.Equal(t, "tender-1", got.TenderId)
	require.Equal(t, "stage3.pcap", got.FieldIdentifier)
}

func TestTriggerWorkflow_RejectionIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no scenario", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("", "", "", srv.URL)
	err := c.TriggerWorkflow(context.Background(), "tender-1", "stage3.pcap")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "404"))
}

func TestSummarizeTenderContext_DropsEmptyFields(t *testing.T) {
	data := entity.NewBlankTenderData()
	data.Stage1.ServiceName = "Mantenimiento"

	summary, err := summarizeTenderContext("Licitación", &data)
	require.NoError(t, err)
	require.Contains(t, summary, "Mantenimiento")
	require.NotContains(t, summary, "expedientNumber")
	require.NotContains(t, summary, "necessityReport")
}
