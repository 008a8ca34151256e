package api

import (
	"phxdiag/internal/models"
)

// RequestVariant is one request shape tried when probing which formats the
// endpoint accepts and how they change the response.
type RequestVariant struct {
	Name   string
	Stream bool
	Apply  func(*models.ChatRequest)
}

// RequestVariants returns the request shapes the debug command probes,
// in order.
func RequestVariants() []RequestVariant {
	return []RequestVariant{
		{
			Name:  "Standard OpenAI format",
			Apply: func(*models.ChatRequest) {},
		},
		{
			Name: "With response_format: text",
			Apply: func(req *models.ChatRequest) {
				req.ResponseFormat = &models.ResponseFormat{Type: "text"}
			},
		},
		{
			Name: "With response_format: json_object",
			Apply: func(req *models.ChatRequest) {
				req.ResponseFormat = &models.ResponseFormat{Type: "json_object"}
			},
		},
		{
			Name:   "With stream: true",
			Stream: true,
			Apply: func(req *models.ChatRequest) {
				req.Stream = true
			},
		},
	}
}
