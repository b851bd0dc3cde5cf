package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/spec-kit/wellbeing-service/internal/config"
	"github.com/spec-kit/wellbeing-service/internal/domain"
	"github.com/spec-kit/wellbeing-service/internal/events"
	"github.com/spec-kit/wellbeing-service/internal/repository"
)

var (
	crisisRe = regexp.MustCompile(`(?i)\b(suicid(e|al)|end(ing)? my life|kill myself|self[-\s]?harm|harm myself|hurt myself|overdose|i (want|plan) to die|i don't want to live|i dont want to live)\b`)

	idcRe = regexp.MustCompile(`(?i)\b(racist|racial|racism|sexist|sexism|homophob(ic|ia)|transphob(ic|ia)|xenophob(ic|ia)|bully|bullied|bullying|harass(ed|ment)?|discriminat(e|ion|ed)|slur|hate\s*(speech|crime)|bigot(ed|ry)?)\b`)

	openRe = regexp.MustCompile(`(?i)\b(assignment(s)?|homework|project(s)?|report(s)?|grade(s)?|mark(s)?|exam(s)?|quiz(zes)?|midterm(s)?|final(s)?|deadline(s)?|extension(s)?|professor|instructor|teacher|ta|course(work)?|syllabus|submit|submission)\b`)

	counselRe = regexp.MustCompile(`(?i)\b(alone|lonely|isolated|anxious|anxiety|stress(ed|ful)?|depress(ed|ion|ive)?|panic|overwhelmed|burn( |-)?out|can'?t focus|cant focus|sad|cry(ing)?|hopeless|insomnia|can'?t sleep|cant sleep|sleepless)\b`)
)

const classifierSystemPrompt = `You are the Student Support Classifier AI.
Analyze the message and classify into one route:

- IDC = discrimination, harassment, racist comments, bullying targeting identity
- OPEN = academic issues, courses, teachers, grades
- COUNSEL = emotional struggles, loneliness, stress, anxiety, depression
- CRISIS = self-harm, suicide, or immediate danger

Output ONLY valid JSON:
{
  "department": "IDC | OPEN | COUNSEL",
  "confidence": 0-1,
  "reasons": ["short bullets"],
  "crisis": true/false
}

Rules:
- Crisis overrides all: department = "COUNSEL" and crisis = true`

// ChatCompleter is the slice of the OpenAI client the classifier needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ClassifierService routes student messages to a support department. It
// prefers the OpenAI model and falls back to local rule matching whenever
// the model is unavailable or returns garbage.
type ClassifierService struct {
	tickets    repository.SupportTicketRepository
	dispatcher events.Dispatcher
	completer  ChatCompleter
	model      string
	logger     *zap.Logger
}

// NewClassifierService constructs the service. A missing API key disables
// the model path entirely.
func NewClassifierService(cfg config.ClassifierConfig, tickets repository.SupportTicketRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ClassifierService {
	var completer ChatCompleter
	if cfg.OpenAIAPIKey != "" {
		completer = openai.NewClient(cfg.OpenAIAPIKey)
	}
	return &ClassifierService{
		tickets:    tickets,
		dispatcher: dispatcher,
		completer:  completer,
		model:      cfg.Model,
		logger:     logger,
	}
}

// Classify scores a message, persists it as a support ticket and raises a
// crisis event when needed.
func (s *ClassifierService) Classify(ctx context.Context, username, message string) (*domain.Classification, error) {
	result := s.classify(ctx, message)

	ticket := &domain.SupportTicket{
		Username:   username,
		Message:    message,
		Department: result.Department,
		Confidence: result.Confidence,
		Crisis:     result.Crisis,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		// classification still succeeded; the ticket is best-effort
		s.logger.Warn("failed to save support ticket", zap.String("username", username), zap.Error(err))
	} else if result.Crisis && s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCrisisDetected,
			Actor:     events.Actor{Role: domain.SubjectTypeStudent, Username: username},
			Timestamp: time.Now().UTC(),
			Payload: events.CrisisDetectedPayload{
				TicketID:   ticket.ID,
				Department: ticket.Department,
				Confidence: ticket.Confidence,
			},
		})
	}

	return result, nil
}

func (s *ClassifierService) classify(ctx context.Context, message string) *domain.Classification {
	if s.completer == nil {
		return fallbackClassify(message)
	}

	resp, err := s.completer.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifierSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		s.logger.Warn("openai classification failed, using fallback", zap.Error(err))
		return fallbackClassify(message)
	}

	if len(resp.Choices) == 0 {
		return fallbackClassify(message)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var result domain.Classification
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		s.logger.Warn("unparseable model output, using fallback", zap.Error(err))
		return fallbackClassify(message)
	}

	normalizeClassification(&result)
	return &result
}

// fallbackClassify is the local rule-based classifier.
func fallbackClassify(message string) *domain.Classification {
	text := normalizeText(message)

	switch {
	case crisisRe.MatchString(text):
		return &domain.Classification{
			Department: domain.DepartmentCounsel,
			Confidence: 0.98,
			Reasons:    []string{"Crisis language detected"},
			Crisis:     true,
		}
	case idcRe.MatchString(text):
		return &domain.Classification{
			Department: domain.DepartmentIDC,
			Confidence: 0.9,
			Reasons:    []string{"Identity-based harm / bullying keywords"},
		}
	case openRe.MatchString(text):
		return &domain.Classification{
			Department: domain.DepartmentOpen,
			Confidence: 0.85,
			Reasons:    []string{"Academic / course keywords"},
		}
	case counselRe.MatchString(text):
		return &domain.Classification{
			Department: domain.DepartmentCounsel,
			Confidence: 0.85,
			Reasons:    []string{"Emotional distress keywords"},
		}
	default:
		return &domain.Classification{
			Department: domain.DepartmentOpen,
			Confidence: 0.5,
			Reasons:    []string{"No strong signals; defaulting to Open Office"},
		}
	}
}

func normalizeText(message string) string {
	text := strings.ToLower(message)
	return strings.ReplaceAll(text, "’", "'")
}

func normalizeClassification(result *domain.Classification) {
	switch result.Department {
	case domain.DepartmentIDC, domain.DepartmentOpen, domain.DepartmentCounsel:
	default:
		result.Department = domain.DepartmentOpen
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	if result.Reasons == nil {
		result.Reasons = []string{}
	}
	if result.Crisis {
		result.Department = domain.DepartmentCounsel
	}
}
