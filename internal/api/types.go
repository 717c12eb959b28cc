package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Role identifies who sent a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn sent to or returned by the chat endpoint.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// User is the account record returned by the auth endpoints.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ResumeAnalysis is the structured record returned by the résumé parser.
type ResumeAnalysis struct {
	Name       string       `json:"name,omitempty"`
	Email      string       `json:"email,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	Skills     []string     `json:"skills,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
}

// Experience is one work-history entry of a résumé.
type Experience struct {
	Position    string `json:"position,omitempty"`
	Company     string `json:"company,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is one education entry of a résumé.
type Education struct {
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
	Duration    string `json:"duration,omitempty"`
}

// KnowledgeBase is a server-managed document collection.
type KnowledgeBase struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CollectionName string    `json:"collection_name"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      Timestamp `json:"created_at"`
	UpdatedAt      Timestamp `json:"updated_at"`
}

// SourceDocument is a document the backend matched for a query. Score is
// a distance: lower is closer.
type SourceDocument struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Score    float64        `json:"score"`
}

// Similarity converts the distance score into a similarity.
func (d SourceDocument) Similarity() float64 { return 1 - d.Score }

// QueryResult is the answer to a knowledge-base question.
type QueryResult struct {
	Answer          string           `json:"answer"`
	SourceDocuments []SourceDocument `json:"source_documents"`
}

// QueryHistoryEntry is one past question asked of a knowledge base.
type QueryHistoryEntry struct {
	ID              int64     `json:"id"`
	KnowledgeBaseID int64     `json:"knowledge_base_id"`
	Question        string    `json:"question"`
	Answer          string    `json:"answer"`
	SimilarityScore *float64  `json:"similarity_score"`
	CreatedAt       Timestamp `json:"created_at"`
}

// Health is the backend health check response.
type Health struct {
	Status string `json:"status"`
}

// Timestamp is a server time that keeps its raw text. The backend emits
// ISO-8601 with or without a zone.
type Timestamp struct {
	time.Time
	Raw string
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON accepts a string, null, or nothing.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	*t = Timestamp{Raw: s}
	// Times without a zone are local, as a browser reads them.
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			break
		}
	}
	return nil
}

// MarshalJSON writes the raw text back, or null when unset.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw == "" {
		if t.Time.IsZero() {
			return []byte("null"), nil
		}
		return json.Marshal(t.Time.Format(time.RFC3339Nano))
	}
	return json.Marshal(t.Raw)
}

// Set reports whether the server supplied a value.
func (t Timestamp) Set() bool { return t.Raw != "" || !t.Time.IsZero() }

// Display formats the time for people, falling back to the raw text when
// it did not parse.
func (t Timestamp) Display() string {
	if t.Time.IsZero() {
		return t.Raw
	}
	return t.Time.Local().Format("2006-01-02 15:04:05")
}
