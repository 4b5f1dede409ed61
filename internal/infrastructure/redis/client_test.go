package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		url     func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "reachable server",
			url: func(t *testing.T) string {
				return "redis://" + miniredis.RunT(t).Addr()
			},
		},
		{
			name:    "invalid url",
			url:     func(t *testing.T) string { return "://bad-url" },
			wantErr: true,
		},
		{
			name: "server down",
			url: func(t *testing.T) string {
				s := miniredis.RunT(t)
				addr := s.Addr()
				s.Close()
				return "redis://" + addr
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(context.Background(), tt.url(t), time.Second)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer client.Close()

			if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
				t.Fatalf("set failed: %v", err)
			}
		})
	}
}
