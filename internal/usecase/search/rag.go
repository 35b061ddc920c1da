package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hireon/talentsearch/internal/domain"
	"github.com/hireon/talentsearch/internal/domain/search/interp"
	"github.com/hireon/talentsearch/internal/domain/search/request"
	"github.com/hireon/talentsearch/internal/domain/search/result"
	"github.com/hireon/talentsearch/internal/domain/search/route"
)

// ragPromptTemplate grounds the answer in CV excerpts for one consultant.
const ragPromptTemplate = `You are an assistant answering questions about a staffing consultant.
Answer using ONLY the CV excerpts below. If the excerpts do not contain the
answer, say so plainly. Keep the answer short and factual.

Consultant: %s (%s, %s)

CV excerpts:
%s

Question: %s`

// executeRAG answers a question about one named consultant from their CV
// summaries. An unresolved name is a normal outcome, not an error: the
// caller gets an empty result list with an explanatory answer.
func (s *Service) executeRAG(
	ctx context.Context, itp *interp.Interpretation, req *request.ChatRequest,
) (dispatched, error) {
	name := itp.ConsultantName()
	if name == "" {
		return dispatched{
			executed: route.RAG,
			results:  []result.Result{},
			answer:   "I could not identify a consultant name in the question. Please mention the person by name.",
		}, nil
	}

	consultant, err := s.consultants.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrConsultantNotFound) {
			return dispatched{
				executed: route.RAG,
				results:  []result.Result{},
				answer:   fmt.Sprintf("No consultant named %q was found.", name),
			}, nil
		}
		return dispatched{}, fmt.Errorf("resolve consultant: %w", err)
	}

	cvs, err := s.consultants.CVsForConsultant(ctx, consultant.ID)
	if err != nil {
		return dispatched{}, fmt.Errorf("load cvs: %w", err)
	}

	completion, err := s.completer.Complete(ctx, buildRAGPrompt(&consultant, cvs, itp.Question()))
	if err != nil {
		return dispatched{}, fmt.Errorf("generate answer: %w", err)
	}

	sources := make([]string, 0, len(cvs))
	for _, cv := range cvs {
		sources = append(sources, cv.ID)
	}

	return dispatched{
		executed: route.RAG,
		results: []result.Result{result.New(
			consultant.ID, consultant.Name, scoreConsultant(&consultant),
			nil, consultantMeta(&consultant),
		)},
		answer:  strings.TrimSpace(completion.Content),
		sources: sources,
	}, nil
}

func buildRAGPrompt(c *domain.ConsultantSummary, cvs []domain.CVDocument, question string) string {
	var b strings.Builder
	for i, cv := range cvs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s: %s", cv.Title, cv.Summary)
	}
	if b.Len() == 0 {
		b.WriteString("(no CV on file)")
	}

	return fmt.Sprintf(ragPromptTemplate, c.Name, c.Role, c.Location, b.String(), question)
}
