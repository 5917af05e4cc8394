package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/chat"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
)

const (
	NotLoadedMessage = "Dashboard data is not loaded yet. Refresh the dashboard and try again."
	fallbackMessage  = "Sorry, I didn't understand that. Try asking:"
)

type ChatServiceImpl struct {
	dashboardService dashboard.DashboardService
	catalog          *Catalog
	logger           *slog.Logger
}

var _ chat.ChatService = (*ChatServiceImpl)(nil)

func NewChatService(dashboardService dashboard.DashboardService, catalog *Catalog, logger *slog.Logger) (*ChatServiceImpl, error) {
	if catalog == nil {
		var err error
		if catalog, err = DefaultCatalog(); err != nil {
			return nil, err
		}
	}
	for _, intent := range catalog.Intents() {
		if _, ok := answerers[intent.ID]; !ok && intent.ID != chat.IntentHelp {
			return nil, fmt.Errorf("%w: no answer for intent %q", chat.ErrInvalidCatalog, intent.ID)
		}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ChatServiceImpl{
		dashboardService: dashboardService,
		catalog:          catalog,
		logger:           logger,
	}, nil
}

func (s *ChatServiceImpl) Questions() []chat.Intent {
	return s.catalog.Intents()
}

// Ask answers from the cached snapshot only; it never triggers a refresh.
func (s *ChatServiceImpl) Ask(ctx context.Context, req chat.AskRequest) (*chat.Answer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	answer := &chat.Answer{Question: req.Question}

	snapshot, err := s.dashboardService.Current()
	if err != nil && !errors.Is(err, dashboard.ErrNoSnapshot) {
		return nil, err
	}

	if snapshot != nil {
		answer.SnapshotID = snapshot.ID
		if record, ok := findEmployee(snapshot, req.Question); ok {
			answer.Intent = chat.IntentEmployeeStatus
			answer.Matched = true
			answer.Answer = describeEmployee(snapshot, record)
			return answer, nil
		}
	}

	intent, ok := s.catalog.Match(req.Question)
	switch {
	case !ok:
		answer.Intent = chat.IntentFallback
		answer.Suggestions = s.catalog.Samples()
		answer.Answer = fallbackMessage + "\n- " + strings.Join(answer.Suggestions, "\n- ")
	case intent.ID == chat.IntentHelp:
		answer.Intent = intent.ID
		answer.Matched = true
		answer.Suggestions = s.questionTexts()
		answer.Answer = "I can answer questions about today's attendance, for example:\n- " + strings.Join(answer.Suggestions, "\n- ")
	case snapshot == nil:
		answer.Intent = chat.IntentNotLoaded
		answer.Answer = NotLoadedMessage
	default:
		answer.Intent = intent.ID
		answer.Matched = true
		answer.Answer = answerers[intent.ID](snapshot, req.Question)
	}

	s.logger.Debug("chat answered", "intent", answer.Intent, "matched", answer.Matched)
	return answer, nil
}

func (s *ChatServiceImpl) questionTexts() []string {
	intents := s.catalog.Intents()
	questions := make([]string, 0, len(intents))
	for _, intent := range intents {
		if intent.ID != chat.IntentHelp {
			questions = append(questions, intent.Question)
		}
	}
	return questions
}
