package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"twiga.app/backend/common/llm"
)

var _ = Describe("SanitizeName", func() {
	DescribeTable("sanitizes display names for the OpenAI name parameter",
		func(input, expected string) {
			Expect(llm.SanitizeName(input)).To(Equal(expected))
		},
		Entry("valid name unchanged", "amina", "amina"),
		Entry("spaces replaced", "Amina Juma", "Amina_Juma"),
		Entry("apostrophes replaced", "N'gendo", "N_gendo"),
		Entry("hyphens preserved", "mary-anne", "mary-anne"),
		Entry("plus sign of a phone number replaced", "+255700000001", "_255700000001"),
		Entry("long name truncated to 64 chars", strings.Repeat("a", 100), strings.Repeat("a", 64)),
		Entry("empty string unchanged", "", ""),
	)
})

var _ = Describe("ParseToolArguments", func() {
	type searchArgs struct {
		SearchPhrase string `json:"search_phrase"`
		ClassID      int64  `json:"class_id"`
	}

	It("decodes arguments into the target type", func() {
		args, err := llm.ParseToolArguments[searchArgs](`{"search_phrase":"photosynthesis","class_id":4}`)
		Expect(err).NotTo(HaveOccurred())
		Expect(args.SearchPhrase).To(Equal("photosynthesis"))
		Expect(args.ClassID).To(Equal(int64(4)))
	})

	It("fails on malformed JSON", func() {
		_, err := llm.ParseToolArguments[searchArgs](`{"search_phrase":`)
		Expect(err).To(MatchError(ContainSubstring("parse tool arguments")))
	})
})

var _ = Describe("SchemaMap", func() {
	type params struct {
		Query string `json:"query" jsonschema:"description=What to ask"`
	}

	It("returns an independent generic copy of a reflected schema", func() {
		schema := llm.GenerateSchemaFrom(params{})
		m, err := llm.SchemaMap(schema)
		Expect(err).NotTo(HaveOccurred())
		Expect(m["type"]).To(Equal("object"))

		props := m["properties"].(map[string]any)
		props["query"].(map[string]any)["description"] = "changed"

		again, err := llm.SchemaMap(schema)
		Expect(err).NotTo(HaveOccurred())
		Expect(again["properties"].(map[string]any)["query"].(map[string]any)["description"]).To(Equal("What to ask"))
	})
})

var _ = Describe("OpenAI-compatible agent client", func() {
	var (
		server   *httptest.Server
		lastBody map[string]any
	)

	AfterEach(func() {
		server.Close()
	})

	It("sends tools and parses tool calls", func() {
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			Expect(r.URL.Path).To(HaveSuffix("/chat/completions"))
			body, _ := io.ReadAll(r.Body)
			Expect(json.Unmarshal(body, &lastBody)).To(Succeed())
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{
				"id": "c1", "object": "chat.completion", "created": 1, "model": "m",
				"choices": [{"index": 0, "finish_reason": "tool_calls", "message": {
					"role": "assistant", "content": "",
					"tool_calls": [{"id": "call_1", "type": "function",
						"function": {"name": "search_knowledge", "arguments": "{\"search_phrase\":\"cells\",\"class_id\":1}"}}]
				}}],
				"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
			}`)
		}))

		client, err := llm.NewAgentClient(llm.Config{APIKey: "k", BaseURL: server.URL, Model: "test-model"})
		Expect(err).NotTo(HaveOccurred())

		resp, err := client.ChatWithTools(context.Background(), llm.AgentRequest{
			Messages: []llm.Message{
				{Role: llm.RoleSystem, Content: "You are Twiga."},
				{Role: llm.RoleUser, Content: "What is a cell?"},
			},
			Tools: []llm.Tool{{Name: "search_knowledge", Description: "search", Parameters: map[string]any{"type": "object"}}},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.FinishReason).To(Equal("tool_calls"))
		Expect(resp.ToolCalls).To(HaveLen(1))
		Expect(resp.ToolCalls[0].Name).To(Equal("search_knowledge"))
		Expect(resp.PromptTokens).To(Equal(10))

		Expect(lastBody["model"]).To(Equal("test-model"))
		Expect(lastBody["tools"]).To(HaveLen(1))
		Expect(lastBody["messages"]).To(HaveLen(2))
	})
})

var _ = Describe("Embedder", func() {
	var server *httptest.Server

	AfterEach(func() {
		server.Close()
	})

	serve := func(status int, body string) {
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = io.WriteString(w, body)
		}))
	}

	It("returns the first vector as float32", func() {
		serve(http.StatusOK, `{"object":"list","model":"m","data":[{"object":"embedding","index":0,"embedding":[0.5,-0.25,1]}],"usage":{"prompt_tokens":1,"total_tokens":1}}`)
		e, err := llm.NewEmbedder(llm.EmbeddingConfig{APIKey: "k", BaseURL: server.URL, Dimensions: 3})
		Expect(err).NotTo(HaveOccurred())

		vec, err := e.Embed(context.Background(), "photosynthesis")
		Expect(err).NotTo(HaveOccurred())
		Expect(vec).To(Equal([]float32{0.5, -0.25, 1}))
	})

	It("fails when the provider returns no data", func() {
		serve(http.StatusOK, `{"object":"list","model":"m","data":[],"usage":{"prompt_tokens":1,"total_tokens":1}}`)
		e, _ := llm.NewEmbedder(llm.EmbeddingConfig{APIKey: "k", BaseURL: server.URL})

		_, err := e.Embed(context.Background(), "x")
		Expect(errors.Is(err, llm.ErrNoEmbedding)).To(BeTrue())
		Expect(llm.IsRetryable(context.Background(), err)).To(BeFalse())
	})

	It("rejects vectors of the wrong width", func() {
		serve(http.StatusOK, `{"object":"list","model":"m","data":[{"object":"embedding","index":0,"embedding":[0.1,0.2]}],"usage":{"prompt_tokens":1,"total_tokens":1}}`)
		e, _ := llm.NewEmbedder(llm.EmbeddingConfig{APIKey: "k", BaseURL: server.URL, Dimensions: 1024})

		_, err := e.Embed(context.Background(), "x")
		Expect(err).To(MatchError(ContainSubstring("want 1024")))
	})

	It("treats client errors as not retryable", func() {
		serve(http.StatusBadRequest, `{"error":{"message":"bad input","type":"invalid_request_error"}}`)
		e, _ := llm.NewEmbedder(llm.EmbeddingConfig{APIKey: "k", BaseURL: server.URL})

		_, err := e.Embed(context.Background(), "x")
		Expect(err).To(HaveOccurred())
		Expect(llm.IsRetryable(context.Background(), err)).To(BeFalse())
		Expect(llm.IsProviderError(err)).To(BeTrue())
	})
})

var _ = Describe("IsRetryable", func() {
	It("does not retry cancellation", func() {
		Expect(llm.IsRetryable(context.Background(), context.Canceled)).To(BeFalse())
	})

	It("retries network failures", func() {
		dial := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
		Expect(llm.IsRetryable(context.Background(), dial)).To(BeTrue())

		post := &url.Error{Op: "Post", URL: "https://api.example.com/v1/chat/completions", Err: io.ErrUnexpectedEOF}
		Expect(llm.IsRetryable(context.Background(), fmt.Errorf("calling model: %w", post))).To(BeTrue())
	})

	It("does not retry deterministic local errors", func() {
		Expect(llm.IsRetryable(context.Background(), errors.New("tool call references unknown id"))).To(BeFalse())
		Expect(llm.IsRetryable(context.Background(), fmt.Errorf("decoding arguments: %w", errors.New("unexpected end of JSON input")))).To(BeFalse())
	})

	It("ignores nil", func() {
		Expect(llm.IsRetryable(context.Background(), nil)).To(BeFalse())
	})

	It("does not count our own errors as provider errors", func() {
		Expect(llm.IsProviderError(errors.New("connection reset by peer"))).To(BeFalse())
		Expect(llm.IsProviderError(llm.ErrNoEmbedding)).To(BeTrue())
	})
})
