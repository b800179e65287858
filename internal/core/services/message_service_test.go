package services

import (
	"context"
	"errors"
	"testing"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
)

func TestSendMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, domain.UserRoleClient)
	bob := env.seedUser(t, domain.UserRoleWorker)

	message, err := env.messages.Send(ctx, alice.ID, ports.SendMessageInput{
		RecipientID: bob.ID,
		Content:     "Is the ladder included?",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if message.ID == 0 || message.IsRead {
		t.Errorf("message = %+v, want persisted and unread", message)
	}
	if message.Sender == nil || message.Sender.ID != alice.ID {
		t.Errorf("sender not populated on response")
	}

	if len(env.notifier.pushes) != 1 {
		t.Fatalf("got %d pushes, want 1", len(env.notifier.pushes))
	}
	if push := env.notifier.pushes[0]; push.UserID != bob.ID || push.Message.ID != message.ID {
		t.Errorf("push = %+v, want message %d to user %d", push, message.ID, bob.ID)
	}
}

func TestSendMessageValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, domain.UserRoleClient)

	if _, err := env.messages.Send(ctx, alice.ID, ports.SendMessageInput{RecipientID: alice.ID + 99, Content: ""}); !errors.Is(err, ErrValidation) {
		t.Errorf("empty content: err = %v, want ErrValidation", err)
	}
	if _, err := env.messages.Send(ctx, alice.ID, ports.SendMessageInput{RecipientID: alice.ID + 99, Content: "hi"}); !errors.Is(err, ErrRecipientNotFound) {
		t.Errorf("unknown recipient: err = %v, want ErrRecipientNotFound", err)
	}
}

func TestConversations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, domain.UserRoleClient)
	bob := env.seedUser(t, domain.UserRoleWorker)
	carol := env.seedUser(t, domain.UserRoleWorker)

	send := func(from, to uint, content string) {
		t.Helper()
		if _, err := env.messages.Send(ctx, from, ports.SendMessageInput{RecipientID: to, Content: content}); err != nil {
			t.Fatalf("send %q: %v", content, err)
		}
	}
	send(alice.ID, bob.ID, "Hi Bob")
	send(bob.ID, alice.ID, "Hi Alice")
	send(bob.ID, alice.ID, "Still interested?")
	send(carol.ID, alice.ID, "I can start Monday")

	summaries, err := env.messages.Conversations(ctx, alice.ID)
	if err != nil {
		t.Fatalf("conversations: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d conversations, want 2", len(summaries))
	}

	byPeer := make(map[uint]ports.ConversationSummary, len(summaries))
	for _, s := range summaries {
		byPeer[s.User.ID] = s
	}
	if s := byPeer[bob.ID]; s.UnreadCount != 2 {
		t.Errorf("unread from bob = %d, want 2", s.UnreadCount)
	}
	if s := byPeer[bob.ID]; s.LastMessage == nil || s.LastMessage.Content != "Still interested?" {
		t.Errorf("last message from bob = %+v", s.LastMessage)
	}
	if s := byPeer[carol.ID]; s.UnreadCount != 1 {
		t.Errorf("unread from carol = %d, want 1", s.UnreadCount)
	}
}

func TestConversationMarksRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, domain.UserRoleClient)
	bob := env.seedUser(t, domain.UserRoleWorker)

	for _, content := range []string{"one", "two"} {
		if _, err := env.messages.Send(ctx, bob.ID, ports.SendMessageInput{RecipientID: alice.ID, Content: content}); err != nil {
			t.Fatalf("send: %v", err)
		}
	}

	thread, err := env.messages.Conversation(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if len(thread) != 2 {
		t.Fatalf("thread length = %d, want 2", len(thread))
	}
	if thread[0].Content != "one" || thread[1].Content != "two" {
		t.Errorf("thread not in chronological order: %q, %q", thread[0].Content, thread[1].Content)
	}

	// Opening the thread marked bob's messages as read.
	summaries, err := env.messages.Conversations(ctx, alice.ID)
	if err != nil {
		t.Fatalf("conversations: %v", err)
	}
	if summaries[0].UnreadCount != 0 {
		t.Errorf("unread after opening thread = %d, want 0", summaries[0].UnreadCount)
	}
}

func TestMarkReadRecipientOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, domain.UserRoleClient)
	bob := env.seedUser(t, domain.UserRoleWorker)

	message, err := env.messages.Send(ctx, alice.ID, ports.SendMessageInput{RecipientID: bob.ID, Content: "ping"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if err := env.messages.MarkRead(ctx, alice.ID, message.ID); !errors.Is(err, ErrNotMessageRecipient) {
		t.Errorf("sender marking read: err = %v, want ErrNotMessageRecipient", err)
	}
	if err := env.messages.MarkRead(ctx, bob.ID, message.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if err := env.messages.MarkRead(ctx, bob.ID, message.ID+99); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("unknown message: err = %v, want ErrMessageNotFound", err)
	}
}
