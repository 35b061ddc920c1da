package interpret

import (
	"fmt"
	"strings"
)

// classificationPrompt embeds the user query into a fixed template: a closed
// JSON schema, classification rules, and skill normalization examples. The
// template is deliberately static so identical queries produce identical
// prompts and the completion cache stays effective upstream.
const classificationPrompt = `You are a query classifier for a consultant staffing search service.
Classify the user query into exactly one route and extract its fields.

Routes:
- STRUCTURED: the query names concrete filterable attributes (skills, roles, locations, availability, CV quality).
- SEMANTIC: the query describes qualities or experience in free form with no concrete filters.
- HYBRID: the query mixes concrete filters with free-form description.
- RAG: the query asks a question about one specific named person.

Respond with ONLY a JSON object, no prose, matching exactly this schema:
{
  "route": "STRUCTURED" | "SEMANTIC" | "HYBRID" | "RAG",
  "structured": {
    "skillsAll": [string],
    "skillsAny": [string],
    "roles": [string],
    "locations": [string],
    "minQualityScore": int | null,
    "availability": string | null
  } | null,
  "semanticText": string | null,
  "consultantName": string | null,
  "question": string | null,
  "confidence": { "route": float, "extraction": float }
}

Field rules:
- "structured" is non-null only for STRUCTURED and HYBRID.
- "semanticText" is non-null only for SEMANTIC and HYBRID; for SEMANTIC use the full normalized query text.
- "consultantName" and "question" are non-null only for RAG.
- Skills the consultant MUST have go into "skillsAll"; nice-to-have skills go into "skillsAny".
- Confidence values are floats in [0,1].

Skill normalization: lowercase all skill names and expand common abbreviations, for example:
- "JS" or "js" -> "javascript"
- "C#" or "c#" -> "csharp"
- "TS" or "ts" -> "typescript"
- "k8s" -> "kubernetes"

User query:
%s`

// renderPrompt produces the final classification prompt for a query.
func renderPrompt(text string) string {
	return fmt.Sprintf(classificationPrompt, strings.TrimSpace(text))
}
