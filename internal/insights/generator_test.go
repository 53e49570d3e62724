package insights_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/config"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/insights"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/testsupport"
)

func testProviderConfig(baseURL string) *config.Config {
	return &config.Config{
		OpenRouterBaseURL:     baseURL,
		OpenRouterAPIKey:      "test-key",
		InsightModel:          "test-model",
		InsightTimeoutSeconds: 2,
	}
}

func sampleSnapshot() *insights.MetricsSnapshot {
	return &insights.MetricsSnapshot{
		TotalItems:     3,
		AvailableItems: 1,
		SoldItems:      2,
		TotalRevenue:   350,
		WeekVisitors:   12,
		TopCollection:  "Sold Gown",
		TopDemandItem:  "Batik Wrap Dress",
	}
}

func TestGenerateSuccess(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"- Restock the Batik Wrap Dress\n- Promote the sold-out gown line"}}]}`))
	}))
	defer srv.Close()

	generator := insights.NewGenerator(testProviderConfig(srv.URL), testsupport.NewTestLogger())
	text := generator.Generate(context.Background(), sampleSnapshot())

	assert.Contains(t, text, "Batik Wrap Dress")

	// One model identifier and a single user-role message carrying the
	// rendered prompt.
	assert.Equal(t, "test-model", gotBody["model"])
	messages := gotBody["messages"].([]interface{})
	require.Len(t, messages, 1)
	message := messages[0].(map[string]interface{})
	assert.Equal(t, "user", message["role"])
	assert.Contains(t, message["content"], "Batik Wrap Dress")
}

func TestGenerateNonSuccessStatusYieldsPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	generator := insights.NewGenerator(testProviderConfig(srv.URL), testsupport.NewTestLogger())
	text := generator.Generate(context.Background(), sampleSnapshot())

	assert.Equal(t, insights.PlaceholderInsight, text)
}

func TestGenerateMissingContentYieldsPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	generator := insights.NewGenerator(testProviderConfig(srv.URL), testsupport.NewTestLogger())
	text := generator.Generate(context.Background(), sampleSnapshot())

	assert.Equal(t, insights.PlaceholderInsight, text)
}

func TestGenerateTimeoutYieldsPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"choices":[{"message":{"content":"too late"}}]}`))
	}))
	defer srv.Close()

	cfg := testProviderConfig(srv.URL)
	cfg.InsightTimeoutSeconds = 1

	generator := insights.NewGenerator(cfg, testsupport.NewTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	text := generator.Generate(ctx, sampleSnapshot())

	assert.Equal(t, insights.PlaceholderInsight, text)
}

func TestGenerateUnreachableProviderYieldsPlaceholder(t *testing.T) {
	generator := insights.NewGenerator(testProviderConfig("http://127.0.0.1:1"), testsupport.NewTestLogger())
	text := generator.Generate(context.Background(), sampleSnapshot())

	assert.Equal(t, insights.PlaceholderInsight, text)
}

func TestRenderPromptEmbedsEveryField(t *testing.T) {
	prompt := insights.RenderPrompt(sampleSnapshot())

	assert.Contains(t, prompt, "Total Items: 3")
	assert.Contains(t, prompt, "Available Items: 1")
	assert.Contains(t, prompt, "Sold Items: 2")
	assert.Contains(t, prompt, "Revenue: RM350")
	assert.Contains(t, prompt, "Weekly Visitors: 12")
	assert.Contains(t, prompt, "Top Collection (Sold): Sold Gown")
	assert.Contains(t, prompt, "Top Demand Item: Batik Wrap Dress")
	assert.Contains(t, prompt, "Bullet points only")
}
