package brain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"twiga.app/backend/common"
	"twiga.app/backend/common/id"
	"twiga.app/backend/common/llm"
	"twiga.app/backend/common/logger"
	"twiga.app/backend/internal/model"
)

const (
	maxParallelTools = 3

	StepLimitReply = "Sorry, I was not able to finish working on your request. Please try asking again, maybe in a simpler way."
	EmptyReply     = "Sorry, I could not come up with a response. Please try again."
)

// KnowledgeTools executes the agent's tools. *Knowledge implements it.
type KnowledgeTools interface {
	SearchKnowledge(ctx context.Context, phrase string, classID int64) (string, error)
	GenerateExercise(ctx context.Context, query string, classID int64, subject string) (string, error)
}

type AgentConfig struct {
	MaxSteps  int
	MaxTokens int
	DebugDir  string // empty disables transcripts
}

// Agent answers teachers with a ReAct loop: the model either answers or
// requests tools, whose results are fed back until it answers.
type Agent struct {
	llm   llm.AgentClient
	tools KnowledgeTools
	cfg   AgentConfig
	newID func() int64
}

func NewAgent(llmClient llm.AgentClient, tools KnowledgeTools, cfg AgentConfig) *Agent {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = 10
	}
	return &Agent{
		llm:   llmClient,
		tools: tools,
		cfg:   cfg,
		newID: id.New,
	}
}

// Response is the outcome of one agent turn. Messages holds every turn the
// agent produced, in order, ending with the assistant reply; none of them
// are persisted yet.
type Response struct {
	Reply            string
	Messages         []model.Message
	Steps            int
	PromptTokens     int
	CompletionTokens int
}

// GenerateResponse answers message, which must already be the last entry
// of history.
func (a *Agent) GenerateResponse(ctx context.Context, history []model.Message, user *model.User, message model.Message) (*Response, error) {
	start := time.Now()
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:    logger.Ptr(user.ID),
		Component: "twiga.brain.agent",
	})

	messages, err := FormatMessages([]model.Message{message}, history, user)
	if err != nil {
		return nil, err
	}

	tools, err := ToolsFor(user.TaughtClasses)
	if err != nil {
		return nil, err
	}

	transcript := &strings.Builder{}
	transcript.WriteString(common.BoxText(message.Text(), user.DisplayName(), "👤") + "\n")
	defer a.writeTranscript(ctx, user.ID, transcript)

	out := &Response{}
	defer func() {
		slog.InfoContext(ctx, "agent turn completed",
			"steps", out.Steps,
			"generated_messages", len(out.Messages),
			"total_duration_ms", time.Since(start).Milliseconds(),
			"prompt_tokens", out.PromptTokens,
			"completion_tokens", out.CompletionTokens)
	}()

	for step := 1; step <= a.cfg.MaxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out.Steps = step

		sc := logger.StartSpan(ctx, "brain.agent.step")
		resp, err := a.llm.ChatWithTools(sc.Context(), llm.AgentRequest{
			Messages:  messages,
			Tools:     tools,
			MaxTokens: a.cfg.MaxTokens,
		})
		sc.RecordError(err)
		sc.End()
		if err != nil {
			transcript.WriteString(common.BoxText(err.Error(), "LLM error", "❌") + "\n")
			return nil, fmt.Errorf("agent step %d: %w", step, err)
		}

		out.PromptTokens += resp.PromptTokens
		out.CompletionTokens += resp.CompletionTokens

		slog.DebugContext(ctx, "agent step completed",
			"step", step,
			"tool_calls", len(resp.ToolCalls),
			"finish_reason", resp.FinishReason)

		if len(resp.ToolCalls) == 0 {
			reply, stripped := SanitizeReply(resp.Content)
			if stripped > 0 {
				slog.DebugContext(ctx, "stripped control tokens from reply", "count", stripped)
			}
			if strings.TrimSpace(reply) == "" {
				reply = EmptyReply
			}
			transcript.WriteString(common.BoxText(reply, "Twiga", "🦒") + "\n")
			out.Reply = reply
			out.Messages = append(out.Messages, a.assistantTurn(user.ID, reply, nil))
			return out, nil
		}

		out.Messages = append(out.Messages, a.assistantTurn(user.ID, resp.Content, resp.ToolCalls))
		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, tc := range resp.ToolCalls {
			transcript.WriteString(common.BoxText(tc.Arguments, "Tool call: "+tc.Name, "🔧") + "\n")
		}

		results := a.runTools(ctx, user, resp.ToolCalls)
		for i, tc := range resp.ToolCalls {
			transcript.WriteString(common.BoxText(results[i], "Tool result: "+tc.Name, "📋") + "\n")
			out.Messages = append(out.Messages, model.Message{
				ID:         a.newID(),
				UserID:     user.ID,
				Role:       model.MessageRoleTool,
				Content:    logger.Ptr(results[i]),
				ToolCallID: logger.Ptr(tc.ID),
				ToolName:   logger.Ptr(tc.Name),
			})
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    results[i],
				ToolCallID: tc.ID,
			})
		}
	}

	slog.WarnContext(ctx, "agent hit step limit", "max_steps", a.cfg.MaxSteps)
	transcript.WriteString(common.BoxText(StepLimitReply, "Twiga (step limit)", "🦒") + "\n")
	out.Reply = StepLimitReply
	out.Messages = append(out.Messages, a.assistantTurn(user.ID, StepLimitReply, nil))
	return out, nil
}

func (a *Agent) assistantTurn(userID int64, content string, calls []llm.ToolCall) model.Message {
	msg := model.Message{
		ID:        a.newID(),
		UserID:    userID,
		Role:      model.MessageRoleAssistant,
		ToolCalls: calls,
	}
	if content != "" {
		msg.Content = logger.Ptr(content)
	}
	return msg
}

// runTools executes calls with bounded parallelism. Failures become
// "Error: ..." results so the model can tell the teacher what went wrong.
func (a *Agent) runTools(ctx context.Context, user *model.User, calls []llm.ToolCall) []string {
	results := make([]string, len(calls))

	var g errgroup.Group
	g.SetLimit(maxParallelTools)
	for i, call := range calls {
		g.Go(func() error {
			toolStart := time.Now()
			result, err := a.runTool(ctx, user, call)
			if err != nil {
				slog.WarnContext(ctx, "tool failed",
					"tool", call.Name,
					"error", err,
					"duration_ms", time.Since(toolStart).Milliseconds())
				result = "Error: " + err.Error()
			} else {
				slog.DebugContext(ctx, "tool completed",
					"tool", call.Name,
					"result_length", len(result),
					"duration_ms", time.Since(toolStart).Milliseconds())
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (a *Agent) runTool(ctx context.Context, user *model.User, call llm.ToolCall) (string, error) {
	sc := logger.StartSpan(ctx, "brain.agent.tool."+call.Name)
	defer sc.End()
	ctx = sc.Context()

	switch call.Name {
	case ToolSearchKnowledge:
		params, err := llm.ParseToolArguments[SearchKnowledgeParams](call.Arguments)
		if err != nil {
			return "", err
		}
		if err := checkClass(user, int64(params.ClassID)); err != nil {
			return "", err
		}
		return a.tools.SearchKnowledge(ctx, params.SearchPhrase, int64(params.ClassID))

	case ToolGenerateExercise:
		params, err := llm.ParseToolArguments[GenerateExerciseParams](call.Arguments)
		if err != nil {
			return "", err
		}
		if err := checkClass(user, int64(params.ClassID)); err != nil {
			return "", err
		}
		return a.tools.GenerateExercise(ctx, params.Query, int64(params.ClassID), params.Subject)

	default:
		return "", fmt.Errorf("unknown tool: %s", call.Name)
	}
}

func checkClass(user *model.User, classID int64) error {
	for _, id := range user.ClassIDs() {
		if id == classID {
			return nil
		}
	}
	return fmt.Errorf("class %d is not one of the classes this teacher teaches", classID)
}

func (a *Agent) writeTranscript(ctx context.Context, userID int64, transcript *strings.Builder) {
	if a.cfg.DebugDir == "" {
		return
	}

	if err := os.MkdirAll(a.cfg.DebugDir, 0o755); err != nil {
		slog.WarnContext(ctx, "failed to create debug dir", "dir", a.cfg.DebugDir, "error", err)
		return
	}

	filename := filepath.Join(a.cfg.DebugDir, fmt.Sprintf("agent_%d_%s.txt", userID, time.Now().Format("20060102-150405.000")))
	if err := os.WriteFile(filename, []byte(transcript.String()), 0o644); err != nil {
		slog.WarnContext(ctx, "failed to write agent transcript", "file", filename, "error", err)
		return
	}
	slog.DebugContext(ctx, "agent transcript written", "file", filename)
}
