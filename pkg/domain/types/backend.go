package types

import "fmt"

// RepositoryBackend selects the document store implementation
type RepositoryBackend string

const (
	RepositoryBackendFirestore RepositoryBackend = "firestore"
	RepositoryBackendSQLite    RepositoryBackend = "sqlite"
	RepositoryBackendMemory    RepositoryBackend = "memory"
)

// IsValid checks if the repository backend is valid
func (b RepositoryBackend) IsValid() bool {
	switch b {
	case RepositoryBackendFirestore, RepositoryBackendSQLite, RepositoryBackendMemory:
		return true
	default:
		return false
	}
}

// ParseRepositoryBackend parses a string into a RepositoryBackend
func ParseRepositoryBackend(s string) (RepositoryBackend, error) {
	b := RepositoryBackend(s)
	if !b.IsValid() {
		return "", fmt.Errorf("invalid repository backend: %s", s)
	}
	return b, nil
}

// ConversationBackend selects where AI conversation history is kept
type ConversationBackend string

const (
	// ConversationBackendRepository keeps history in the document store
	ConversationBackendRepository ConversationBackend = "repository"
	ConversationBackendRedis      ConversationBackend = "redis"
)

// IsValid checks if the conversation backend is valid
func (b ConversationBackend) IsValid() bool {
	switch b {
	case ConversationBackendRepository, ConversationBackendRedis:
		return true
	default:
		return false
	}
}

// ParseConversationBackend parses a string into a ConversationBackend
func ParseConversationBackend(s string) (ConversationBackend, error) {
	b := ConversationBackend(s)
	if !b.IsValid() {
		return "", fmt.Errorf("invalid conversation backend: %s", s)
	}
	return b, nil
}

// LLMProvider selects the conversational AI provider
type LLMProvider string

const (
	LLMProviderGemini LLMProvider = "gemini"
	LLMProviderOpenAI LLMProvider = "openai"
	LLMProviderClaude LLMProvider = "claude"
)

// IsValid checks if the LLM provider is valid
func (p LLMProvider) IsValid() bool {
	switch p {
	case LLMProviderGemini, LLMProviderOpenAI, LLMProviderClaude:
		return true
	default:
		return false
	}
}

// ParseLLMProvider parses a string into an LLMProvider
func ParseLLMProvider(s string) (LLMProvider, error) {
	p := LLMProvider(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid llm provider: %s", s)
	}
	return p, nil
}
