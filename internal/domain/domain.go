// Package domain defines the shared model types used across auditor:
// Connection, ChecklistItem, ReviewResponse, and their helper methods.
package domain

// Provider identifies an AI backend vendor.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
)

// KnownProviders lists the providers the backend ships adapters for. The set
// is open: the backend may accept others, so this is used for display hints
// only, never for validation.
var KnownProviders = []Provider{ProviderOpenAI, ProviderGemini, ProviderOllama}

// Connection is a named credential + provider + model configuration stored by
// the backend. ID is zero for drafts that have not been persisted yet.
type Connection struct {
	ID        int      `json:"id,omitempty"`
	Name      string   `json:"name"`
	Provider  Provider `json:"provider"`
	ModelName string   `json:"model_name"`
	APIKey    string   `json:"api_key,omitempty"`
	IsActive  bool     `json:"is_active,omitempty"`
}

// Draft returns a copy with identity and activation stripped, suitable for
// create/update/test payloads.
func (c Connection) Draft() Connection {
	c.ID = 0
	c.IsActive = false
	return c
}

// CheckStatus is the verdict of a single checklist item.
type CheckStatus string

const (
	StatusPass    CheckStatus = "Pass"
	StatusFail    CheckStatus = "Fail"
	StatusWarning CheckStatus = "Warning"
)

// ChecklistItem is one atomic compliance check from an audit report.
type ChecklistItem struct {
	Section string      `json:"section"`
	Item    string      `json:"item"`
	Status  CheckStatus `json:"status"`
	Comment string      `json:"comment,omitempty"`
}

// ReviewResponse is the full result of one analysis request. It is immutable
// after creation; a workflow reset simply discards it.
type ReviewResponse struct {
	Score            int             `json:"score"`
	Checklist        []ChecklistItem `json:"checklist"`
	Suggestions      []string        `json:"suggestions"`
	RewrittenContent string          `json:"rewritten_content,omitempty"`
}

// Document is the extracted content of an uploaded file. Images carries
// base64-encoded page renders for scanned files whose text extraction came
// up short; it is empty for ordinary text documents.
type Document struct {
	Content  string   `json:"content"`
	Filename string   `json:"filename"`
	Images   []string `json:"images,omitempty"`
}

// AnalyzeRequest is the body of POST /api/analyze. DocumentCategory is
// optional and omitted from the wire format when empty, as are Images.
type AnalyzeRequest struct {
	Text               string   `json:"text"`
	Images             []string `json:"images,omitempty"`
	CustomInstructions string   `json:"custom_instructions"`
	DocumentCategory   string   `json:"document_category,omitempty"`
}
