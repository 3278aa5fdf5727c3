package client

const (
	// API prefix
	apiPrefix = "/api"

	// Chat endpoints
	endpointChat         = apiPrefix + "/chat"          // POST - text chat
	endpointAnalyzeImage = apiPrefix + "/analyze-image" // POST - image analysis
)
