package llm

import "net/http"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter ranks apps by these attribution headers.
const (
	openRouterReferer = "https://github.com/abhisek/feprep"
	openRouterTitle   = "feprep"
)

// OpenRouterProvider is an OpenAIProvider pointed at OpenRouter. Model IDs
// are passed through unmapped ("anthropic/claude-sonnet-4.5").
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	inner, err := newOpenAIProviderRaw("openrouter", OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	}, attributionClient{next: http.DefaultClient})
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// attributionClient adds the OpenRouter attribution headers to every call.
type attributionClient struct {
	next *http.Client
}

func (c attributionClient) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)
	return c.next.Do(req)
}
