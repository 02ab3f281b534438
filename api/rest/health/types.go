package health

// Response represents the health check response
type Response struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Version       string `json:"version,omitempty"`
	LLMProvider   string `json:"llm_provider,omitempty"`
	VectorBackend string `json:"vector_backend,omitempty"`
}

type PingResponse struct {
	Message string `json:"message"`
}
