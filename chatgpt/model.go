package chatgpt

// Model identifies a chat-completion model. Any name is accepted and passed
// through to the service unchanged; the constants below are the known ones.
type Model string

const (
	GPT35Turbo     Model = "gpt-3.5-turbo"
	GPT35Turbo0301 Model = "gpt-3.5-turbo-0301"
	GPT4           Model = "gpt-4"
	GPT40314       Model = "gpt-4-0314"
	GPT432K        Model = "gpt-4-32k"
	GPT432K0314    Model = "gpt-4-32k-0314"
)

// Name returns the wire name of the model.
func (m Model) Name() string { return string(m) }

// String implements fmt.Stringer.
func (m Model) String() string { return string(m) }

// Models returns the known models.
func Models() []Model {
	return []Model{GPT35Turbo, GPT35Turbo0301, GPT4, GPT40314, GPT432K, GPT432K0314}
}

// Defaults applied by the Ask shortcuts.
const (
	DefaultModel     = GPT35Turbo
	DefaultUser      = "user"
	DefaultMaxTokens = 0 // no cap is sent; the service default applies
	DefaultAPIHost   = "https://api.openai.com/v1/chat/completions"
)
