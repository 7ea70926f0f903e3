package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"twiga.app/backend/internal/brain"
	"twiga.app/backend/internal/model"
	"twiga.app/backend/internal/queue"
	"twiga.app/backend/internal/service"
	"twiga.app/backend/internal/store"
)

var _ = Describe("ChatService", func() {
	var (
		ctx       context.Context
		users     *mockUserStore
		messages  *mockMessageStore
		txRunner  *mockTxRunner
		responder *mockResponder
		producer  *mockProducer
		svc       service.ChatService
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = &mockUserStore{
			getOrCreateFn: func(_ context.Context, u *model.User) error {
				u.ID = 5
				u.State = model.UserStateActive
				return nil
			},
		}
		messages = &mockMessageStore{}
		txRunner = &mockTxRunner{provider: &mockStoreProvider{users: users, messages: messages}}
		responder = &mockResponder{
			generateFn: func(_ context.Context, _ []model.Message, user *model.User, _ model.Message) (*brain.Response, error) {
				return &brain.Response{
					Reply: "Hello Amina",
					Steps: 1,
					Messages: []model.Message{
						{ID: 900, UserID: user.ID, Role: model.MessageRoleAssistant, Content: stringPtr("Hello Amina")},
					},
				}, nil
			},
		}
		producer = &mockProducer{}
		svc = service.NewChatService(users, messages, txRunner, responder, producer, 10)
	})

	Describe("HandleMessage", func() {
		It("stores the message, runs the agent and stores the reply", func() {
			var gotUserID, gotMaxID int64
			var gotLimit int32
			messages.historyUpToFn = func(_ context.Context, userID, maxID int64, limit int32) ([]model.Message, error) {
				gotUserID, gotMaxID, gotLimit = userID, maxID, limit
				return []model.Message{*messages.created[0]}, nil
			}

			result, err := svc.HandleMessage(ctx, "255700000001", stringPtr("Amina"), "Hi Twiga")

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Reply).To(Equal("Hello Amina"))
			Expect(result.ReplyID).To(Equal(int64(900)))
			Expect(result.MessageID).NotTo(BeZero())

			Expect(messages.created).To(HaveLen(2))
			inbound := messages.created[0]
			Expect(inbound.Role).To(Equal(model.MessageRoleUser))
			Expect(inbound.UserID).To(Equal(int64(5)))
			Expect(inbound.Text()).To(Equal("Hi Twiga"))
			Expect(messages.created[1].ID).To(Equal(int64(900)))
			Expect(messages.created[1].ReplyTo).To(HaveValue(Equal(inbound.ID)))

			Expect(gotUserID).To(Equal(int64(5)))
			Expect(gotMaxID).To(Equal(inbound.ID))
			Expect(gotLimit).To(Equal(int32(10)))
			Expect(responder.lastHistory).To(HaveLen(1))
			Expect(txRunner.callCount).To(Equal(2))
		})

		It("rejects empty messages", func() {
			_, err := svc.HandleMessage(ctx, "255700000001", nil, "   ")

			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
			Expect(responder.callCount).To(Equal(0))
		})

		It("refuses blocked users without storing anything", func() {
			users.getOrCreateFn = func(_ context.Context, u *model.User) error {
				u.ID = 5
				u.State = model.UserStateBlocked
				return nil
			}

			_, err := svc.HandleMessage(ctx, "255700000001", nil, "hi")

			Expect(errors.Is(err, service.ErrUserBlocked)).To(BeTrue())
			Expect(messages.created).To(BeEmpty())
		})

		It("marks agent failures", func() {
			responder.generateFn = func(_ context.Context, _ []model.Message, _ *model.User, _ model.Message) (*brain.Response, error) {
				return nil, errors.New("upstream 503")
			}

			_, err := svc.HandleMessage(ctx, "255700000001", nil, "hi")

			Expect(errors.Is(err, service.ErrAgentFailed)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("upstream 503"))
			Expect(messages.created).To(HaveLen(1))
		})

		It("fails when the reply cannot be stored", func() {
			messages.createBatchFn = func(_ context.Context, _ []*model.Message) error {
				return errors.New("disk full")
			}

			_, err := svc.HandleMessage(ctx, "255700000001", nil, "hi")

			Expect(err).To(MatchError(ContainSubstring("storing reply: disk full")))
		})
	})

	Describe("Enqueue", func() {
		It("stores the message and queues it for the worker", func() {
			msg, err := svc.Enqueue(ctx, "255700000001", nil, "Give me a question on maps")

			Expect(err).NotTo(HaveOccurred())
			Expect(producer.enqueued).To(HaveLen(1))
			Expect(producer.enqueued[0]).To(Equal(queue.InboundMessage{MessageID: msg.ID, UserID: 5, Attempt: 1}))
			Expect(responder.callCount).To(Equal(0))
		})

		It("reports queue failures", func() {
			producer.enqueueFn = func(_ context.Context, _ queue.InboundMessage) error {
				return errors.New("redis down")
			}

			_, err := svc.Enqueue(ctx, "255700000001", nil, "hi")

			Expect(err).To(MatchError(ContainSubstring("enqueueing message: redis down")))
		})

		It("fails without a queue", func() {
			svc = service.NewChatService(users, messages, txRunner, responder, nil, 10)

			_, err := svc.Enqueue(ctx, "255700000001", nil, "hi")

			Expect(err).To(HaveOccurred())
			Expect(messages.created).To(BeEmpty())
		})
	})

	Describe("ProcessQueued", func() {
		BeforeEach(func() {
			messages.getByIDFn = func(_ context.Context, id int64) (*model.Message, error) {
				return &model.Message{ID: id, UserID: 5, Role: model.MessageRoleUser, Content: stringPtr("hi")}, nil
			}
			users.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id, WaID: "255700000001"}, nil
			}
		})

		It("answers a pending message", func() {
			result, err := svc.ProcessQueued(ctx, 77)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Skipped).To(BeFalse())
			Expect(result.MessageID).To(Equal(int64(77)))
			Expect(result.Reply).To(Equal("Hello Amina"))
			Expect(messages.created).To(HaveLen(1))
		})

		It("skips messages that were already answered", func() {
			messages.hasReplyFn = func(_ context.Context, messageID int64) (bool, error) {
				return messageID == 77, nil
			}

			result, err := svc.ProcessQueued(ctx, 77)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Skipped).To(BeTrue())
			Expect(responder.callCount).To(Equal(0))
		})

		It("answers each of two pending messages against its own history", func() {
			stored := []model.Message{
				{ID: 100, UserID: 5, Role: model.MessageRoleUser, Content: stringPtr("question A")},
				{ID: 101, UserID: 5, Role: model.MessageRoleUser, Content: stringPtr("question B")},
			}
			messages.getByIDFn = func(_ context.Context, id int64) (*model.Message, error) {
				for i := range stored {
					if stored[i].ID == id {
						msg := stored[i]
						return &msg, nil
					}
				}
				return nil, store.ErrNotFound
			}
			messages.historyUpToFn = func(_ context.Context, _ int64, maxID int64, _ int32) ([]model.Message, error) {
				var out []model.Message
				for _, m := range stored {
					if m.ID <= maxID {
						out = append(out, m)
					}
				}
				return out, nil
			}
			messages.hasReplyFn = func(_ context.Context, messageID int64) (bool, error) {
				for _, m := range stored {
					if m.Role == model.MessageRoleAssistant && m.ReplyTo != nil && *m.ReplyTo == messageID {
						return true, nil
					}
				}
				return false, nil
			}
			messages.createBatchFn = func(_ context.Context, msgs []*model.Message) error {
				for _, m := range msgs {
					stored = append(stored, *m)
				}
				return nil
			}

			var inputs [][]string
			responder.generateFn = func(_ context.Context, history []model.Message, user *model.User, message model.Message) (*brain.Response, error) {
				texts := make([]string, 0, len(history))
				for _, m := range history {
					texts = append(texts, m.Text())
				}
				inputs = append(inputs, texts)
				// Replies get ids newer than every pending message.
				return &brain.Response{
					Reply: "answer to " + message.Text(),
					Messages: []model.Message{
						{ID: message.ID + 1000, UserID: user.ID, Role: model.MessageRoleAssistant, Content: stringPtr("answer to " + message.Text())},
					},
				}, nil
			}

			first, err := svc.ProcessQueued(ctx, 100)
			Expect(err).NotTo(HaveOccurred())
			second, err := svc.ProcessQueued(ctx, 101)
			Expect(err).NotTo(HaveOccurred())

			Expect(first.Skipped).To(BeFalse())
			Expect(first.Reply).To(Equal("answer to question A"))
			Expect(second.Skipped).To(BeFalse())
			Expect(second.Reply).To(Equal("answer to question B"))
			Expect(responder.callCount).To(Equal(2))

			Expect(inputs[0]).To(Equal([]string{"question A"}))
			Expect(inputs[1]).To(Equal([]string{"question A", "question B"}))

			again, err := svc.ProcessQueued(ctx, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Skipped).To(BeTrue())
			Expect(responder.callCount).To(Equal(2))
		})

		It("refuses non-user messages", func() {
			messages.getByIDFn = func(_ context.Context, id int64) (*model.Message, error) {
				return &model.Message{ID: id, UserID: 5, Role: model.MessageRoleAssistant}, nil
			}

			_, err := svc.ProcessQueued(ctx, 77)

			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		})

		It("reports missing messages", func() {
			messages.getByIDFn = nil

			_, err := svc.ProcessQueued(ctx, 77)

			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("History", func() {
		It("uses the default limit", func() {
			users.getByWaIDFn = func(_ context.Context, waID string) (*model.User, error) {
				return &model.User{ID: 5, WaID: waID}, nil
			}
			var gotLimit int32
			messages.historyFn = func(_ context.Context, _ int64, limit int32) ([]model.Message, error) {
				gotLimit = limit
				return []model.Message{{ID: 1}}, nil
			}

			msgs, err := svc.History(ctx, "255700000001", 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(1))
			Expect(gotLimit).To(Equal(int32(10)))
		})

		It("returns not found for unknown users", func() {
			_, err := svc.History(ctx, "255700000009", 5)

			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})
	})
})
