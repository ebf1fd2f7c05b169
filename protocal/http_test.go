package protocal

import (
	"testing"
	"time"

	"chat-relay/configs"
)

// TestShutdownGraceFollowsWorkflowTimeout tests shutdown waits out a configured dispatch
func TestShutdownGraceFollowsWorkflowTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{name: "configured", timeout: 90 * time.Second, want: 95 * time.Second},
		{name: "short", timeout: time.Second, want: 6 * time.Second},
		{name: "unset", timeout: 0, want: configs.DefaultWorkflowTimeout + 5*time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shutdownGrace(tt.timeout); got != tt.want {
				t.Errorf("expected grace %v, got %v", tt.want, got)
			}
		})
	}
}
