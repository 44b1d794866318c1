package store

import (
	"time"

	"gather-cli/internal/model"
)

// SeedDocument builds the first-run demo document: three projects, six
// tags, four cards each carrying one session. Timestamps are computed
// relative to now so the demo data always looks fresh. The ids are fixed so
// that fixtures and the analyzer's project hints stay stable.
func SeedDocument(now time.Time) *model.Document {
	now = now.UTC()
	ago := func(d time.Duration) time.Time { return now.Add(-d) }

	return &model.Document{
		Projects: []model.Project{
			{ID: "project-research", Name: "Frontier Research"},
			{ID: "project-product", Name: "Product Exploration"},
			{ID: "project-design", Name: "Design Inspiration"},
		},
		Tags: []model.Tag{
			{ID: "tag-ai", Name: "AI", Color: "#58b7ff"},
			{ID: "tag-llm", Name: "LLM", Color: "#7c5cff"},
			{ID: "tag-product", Name: "Product", Color: "#4fd1c5"},
			{ID: "tag-research", Name: "Research", Color: "#f6ad55"},
			{ID: "tag-design", Name: "Design", Color: "#f687b3"},
			{ID: "tag-note", Name: "Notes", Color: "#9f7aea"},
		},
		Cards: []model.Card{
			{
				ID:        "card-gpt4",
				Title:     "GPT-4 technical report highlights",
				Link:      "https://openai.com/research/gpt-4",
				ProjectID: "project-research",
				Tags:      []string{"tag-ai", "tag-llm", "tag-research"},
				CreatedAt: ago(20 * 24 * time.Hour),
				UpdatedAt: ago(8 * 24 * time.Hour),
				Sessions: []model.Session{
					{
						ID:        "session-gpt4-1",
						UpdatedAt: ago(8 * 24 * time.Hour),
						Content: "**Summary:** GPT-4 shows a marked step up in following complex instructions, creative writing and cross-lingual tasks, with standout results on legal and medical benchmarks.\n\n" +
							"- Larger model, clearly stronger reasoning\n" +
							"- Vision input pipeline still in limited testing\n" +
							"- Alignment combines RLHF with heavy critique-based feedback\n",
					},
				},
			},
			{
				ID:        "card-ai-product",
				Title:     "AI-assisted product design guide",
				Link:      "https://example.com/ai-product-handbook",
				ProjectID: "project-product",
				Tags:      []string{"tag-ai", "tag-product"},
				CreatedAt: ago(14 * 24 * time.Hour),
				UpdatedAt: ago(2 * 24 * time.Hour),
				Sessions: []model.Session{
					{
						ID:        "session-product-1",
						UpdatedAt: ago(2 * 24 * time.Hour),
						Content: "Four dimensions a product must get right once AI enters the loop:\n\n" +
							"1. Define the AI's role explicitly\n" +
							"2. Surface model confidence honestly\n" +
							"3. Give feedback users can act on\n" +
							"4. Keep a human fallback path\n",
					},
				},
			},
			{
				ID:        "card-design-system",
				Title:     "Dark mode design system inspiration",
				Link:      "https://dribbble.com/shots/19382907",
				ProjectID: "project-design",
				Tags:      []string{"tag-design", "tag-note"},
				CreatedAt: ago(5 * 24 * time.Hour),
				UpdatedAt: ago(24 * time.Hour),
				Sessions: []model.Session{
					{
						ID:        "session-design-1",
						UpdatedAt: ago(24 * time.Hour),
						Content: "Highlights:\n\n" +
							"- Layered glassmorphism to separate information levels\n" +
							"- Saturated neon accents\n" +
							"- Inner shadows on card edges for depth\n",
					},
				},
			},
			{
				ID:        "card-voice-agent",
				Title:     "Voice agent workflow build notes",
				Link:      "https://example.com/voice-agent-guide",
				ProjectID: "project-product",
				Tags:      []string{"tag-ai", "tag-product", "tag-note"},
				CreatedAt: ago(3 * 24 * time.Hour),
				UpdatedAt: ago(6 * time.Hour),
				Sessions: []model.Session{
					{
						ID:        "session-voice-1",
						UpdatedAt: ago(6 * time.Hour),
						Content: "Current iteration focus:\n\n" +
							"> Whisper + GPT-4o mini for a real-time voice loop, optimizing for latency.\n\n" +
							"Hypothesis to verify: multi-turn context caching cuts response time by 18%.\n",
					},
				},
			},
		},
	}
}
