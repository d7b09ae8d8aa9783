package mocks

import (
	"context"
	"sync"

	"github.com/hweijian/ghostgame-go/internal/broadcast"
	"github.com/hweijian/ghostgame-go/internal/model"
)

// PublishCall records one Publish invocation
type PublishCall struct {
	Channel model.RoomID
	Tree    *model.RoomTree
}

// RetractCall records one Retract invocation
type RetractCall struct {
	Channel model.RoomID
	Path    []string
}

// MockBroadcast records published trees and retracted paths for assertions,
// and can be made to fail to exercise best-effort delivery handling.
type MockBroadcast struct {
	mu sync.Mutex

	Published []PublishCall
	Retracted []RetractCall

	PublishErr error
	RetractErr error
}

var _ broadcast.Broadcast = (*MockBroadcast)(nil)

// NewMockBroadcast creates an empty MockBroadcast
func NewMockBroadcast() *MockBroadcast {
	return &MockBroadcast{}
}

func (b *MockBroadcast) Publish(ctx context.Context, channel model.RoomID, tree *model.RoomTree) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.PublishErr != nil {
		return b.PublishErr
	}
	b.Published = append(b.Published, PublishCall{Channel: channel, Tree: tree})
	return nil
}

func (b *MockBroadcast) Retract(ctx context.Context, channel model.RoomID, path ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.RetractErr != nil {
		return b.RetractErr
	}
	b.Retracted = append(b.Retracted, RetractCall{Channel: channel, Path: path})
	return nil
}

// LastPublished returns the most recently published tree for channel, or nil
func (b *MockBroadcast) LastPublished(channel model.RoomID) *model.RoomTree {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.Published) - 1; i >= 0; i-- {
		if b.Published[i].Channel == channel {
			return b.Published[i].Tree
		}
	}
	return nil
}
