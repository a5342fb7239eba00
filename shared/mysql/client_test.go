package mysql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		want   string
	}{
		{
			name: "full config",
			config: &Config{
				Host:      "db.local",
				Port:      3306,
				User:      "sports",
				Password:  "secret",
				Database:  "sportsday",
				Charset:   "utf8mb4",
				Collation: "utf8mb4_general_ci",
			},
			want: "sports:secret@tcp(db.local:3306)/sportsday?parseTime=true&charset=utf8mb4&collation=utf8mb4_general_ci",
		},
		{
			name: "charset and collation omitted",
			config: &Config{
				Host:     "127.0.0.1",
				Port:     3307,
				User:     "root",
				Password: "",
				Database: "results",
			},
			want: "root:@tcp(127.0.0.1:3307)/results?parseTime=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.DSN())
		})
	}
}

func TestConnectionError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &ConnectionError{Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")

	var connErr *ConnectionError
	assert.ErrorAs(t, error(err), &connErr)
}

func TestClient_CloseNil(t *testing.T) {
	var c *Client
	assert.NoError(t, c.Close())

	assert.NoError(t, (&Client{}).Close())
}
