package gorm

import (
	"errors"
	"testing"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name    string
		sslmode bool
		want    string
	}{
		{
			name: "plain",
			want: "host=db user=relay password=secret dbname=chat port=5432 sslmode=disable connect_timeout=10",
		},
		{
			name:    "ssl",
			sslmode: true,
			want:    "host=db user=relay password=secret dbname=chat port=5432 sslmode=require connect_timeout=10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DSN("db", "5432", "relay", "secret", "chat", tt.sslmode)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestConnectToPostgreSQL_MissingInfo(t *testing.T) {
	_, err := ConnectToPostgreSQL("", "", "user", "pass", "", false)
	if !errors.Is(err, ErrMissingConnectionInfo) {
		t.Errorf("expected ErrMissingConnectionInfo, got %v", err)
	}
}
