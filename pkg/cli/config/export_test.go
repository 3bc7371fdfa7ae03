package config

import "time"

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, sqlitePath string) *Repository {
	return &Repository{backend: backend, projectID: projectID, sqlitePath: sqlitePath}
}

// NewConversationForTest creates a Conversation config for testing purposes
func NewConversationForTest(backend, redisAddr string, ttl time.Duration) *Conversation {
	return &Conversation{backend: backend, redisAddr: redisAddr, ttl: ttl}
}

// NewLLMForTest creates an LLM config for testing purposes
func NewLLMForTest(provider, projectID, apiKey string) *LLM {
	return &LLM{provider: provider, projectID: projectID, location: "us-central1", apiKey: apiKey}
}

// NewMessagesForTest creates a Messages config for testing purposes
func NewMessagesForTest(path string) *Messages {
	return &Messages{path: path}
}

// NewTimezoneForTest creates a Timezone config for testing purposes
func NewTimezoneForTest(name string) *Timezone {
	return &Timezone{name: name}
}
