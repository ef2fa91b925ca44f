package constant

const (
	SenderUser      = "user"
	SenderAssistant = "assistant"

	// DefaultTopK is the number of nearest neighbors requested when the
	// client does not specify n_results.
	DefaultTopK = 5

	// DefaultScoreThreshold is the minimum similarity score a hit must
	// reach to be returned from /query.
	DefaultScoreThreshold = 0.5

	// SessionTitleMaxLen caps the auto-generated session title taken
	// from the first user message.
	SessionTitleMaxLen = 60

	// MaxFactCheckStatements caps how many sentences /factcheck will
	// look up per request.
	MaxFactCheckStatements = 5

	// DefaultFactCheckLanguage selects the Wikipedia edition queried
	// when the client does not pass one.
	DefaultFactCheckLanguage = "de"

	EmbeddingTaskDocument = "RETRIEVAL_DOCUMENT"
	EmbeddingTaskQuery    = "RETRIEVAL_QUERY"
)

// SystemPrompt is prepended to every one-shot /chat prompt before it is
// relayed to the model. Kept verbatim from the deployed configuration.
const SystemPrompt = "Antworte immer in der Sprache, in der die Frage gestellt wurde. " +
	"Wenn du dir unsicher bist, sage: 'Ich bin mir nicht sicher.' " +
	"Antworte niemals mit erfundenen Fakten oder Halluzinationen. " +
	"Gib keine Übersetzungen, sondern antworte direkt in der Eingabesprache."
