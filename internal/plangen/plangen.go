// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package plangen calls a generative model to produce the text of a plan.
// Each call is a single attempt, failures are not retried.
package plangen

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/curioswitch/fitcoach/internal/llm"
)

const (
	ProviderGenAI  = "genai"
	ProviderOpenAI = "openai"

	DefaultGenAIModel  = "gemini-2.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// Generator returns the raw text the model produced for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationServiceError is returned when the model could not be called or
// returned no text.
type GenerationServiceError struct {
	Provider string
	Err      error
}

func (e *GenerationServiceError) Error() string {
	return fmt.Sprintf("plangen: %s: %v", e.Provider, e.Err)
}

func (e *GenerationServiceError) Unwrap() error {
	return e.Err
}

// NewGenAI returns a Generator using Gemini.
func NewGenAI(client *genai.Client, model string) *GenAI {
	if model == "" {
		model = DefaultGenAIModel
	}
	return &GenAI{
		client: client,
		model:  model,
	}
}

// GenAI generates plans with Gemini.
type GenAI struct {
	client *genai.Client
	model  string
}

func (g *GenAI) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(llm.GeneratePlanSystemPrompt(), genai.RoleModel),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return "", &GenerationServiceError{Provider: ProviderGenAI, Err: fmt.Errorf("calling GenerateContent: %w", err)}
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", &GenerationServiceError{Provider: ProviderGenAI, Err: fmt.Errorf("unexpected response from generate ai: %v", res)} //nolint:err113
	}
	text := res.Text()
	if text == "" {
		return "", &GenerationServiceError{Provider: ProviderGenAI, Err: fmt.Errorf("empty response from generate ai: %v", res)} //nolint:err113
	}
	return text, nil
}

// NewOpenAI returns a Generator using OpenAI chat completions.
func NewOpenAI(client *openai.Client, model string) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{
		client: client,
		model:  model,
	}
}

// OpenAI generates plans with OpenAI chat completions.
type OpenAI struct {
	client *openai.Client
	model  string
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(llm.GeneratePlanSystemPrompt()),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", &GenerationServiceError{Provider: ProviderOpenAI, Err: fmt.Errorf("creating chat completion: %w", err)}
	}
	if len(res.Choices) == 0 || res.Choices[0].Message.Content == "" {
		return "", &GenerationServiceError{Provider: ProviderOpenAI, Err: fmt.Errorf("unexpected chat completion: %s", res.RawJSON())} //nolint:err113
	}
	return res.Choices[0].Message.Content, nil
}
