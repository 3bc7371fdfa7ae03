package usecase

// CleanGoals is exported for testing
var CleanGoals = cleanGoals

// BuildSystemPrompt is exported for testing
var BuildSystemPrompt = buildSystemPrompt
