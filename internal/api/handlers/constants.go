package handlers

const (
	// Request limits
	maxTextRunes    = 20000 // longest prompt or lyric body accepted
	maxTagsPerCall  = 64    // most tags accepted in one merge or inject call
	maxGenreTokens  = 16    // most genre tokens accepted in one blend
	maxPromptBudget = 10000 // highest truncation budget a caller may ask for
)

// Prompt field operations
const (
	opGet     = "get"
	opReplace = "replace"
	opInsert  = "insert"
	opSet     = "set"
)
