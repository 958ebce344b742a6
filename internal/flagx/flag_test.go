package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.yaml", "-a", ":8080"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.yaml"},
		},
		{
			name:    "flag with equals",
			args:    []string{"-config=alt.json", "-a", ":8080"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "order preserved",
			args:    []string{"-config=first.json", "-c", "second.json", "-x", "1"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=first.json", "-c", "second.json"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next arg is another flag",
			args:    []string{"-c", "-d"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "equals value that looks like a flag",
			args:    []string{"--config=--weird.json"},
			allowed: []string{"--config"},
			want:    []string{"--config=--weird.json"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, "/etc/wc.json", ConfigFile([]string{"-c", "/etc/wc.json"}))
	assert.Equal(t, "/etc/wc.yaml", ConfigFile([]string{"-a", ":9000", "-config", "/etc/wc.yaml"}))
	assert.Equal(t, "b.yaml", ConfigFile([]string{"-c", "a.yaml", "-config=b.yaml"}))
	assert.Empty(t, ConfigFile([]string{"-x", "1"}))
	assert.Empty(t, ConfigFile(nil))
}
