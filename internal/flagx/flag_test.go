package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-h", "-a", "-d"}

	tests := map[string]struct {
		args []string
		want []string
	}{
		"separate values": {
			args: []string{"-h", ":8080", "-x", "1", "-d", "postgres://db"},
			want: []string{"-h", ":8080", "-d", "postgres://db"},
		},
		"inline values": {
			args: []string{"-a=:50051", "-u=http://api", "-h=:9090"},
			want: []string{"-a=:50051", "-h=:9090"},
		},
		"inline value starting with a dash": {
			args: []string{"-d=-weird"},
			want: []string{"-d=-weird"},
		},
		"dash-led token is not taken as a value": {
			args: []string{"-h", "-a", ":50051"},
			want: []string{"-h", "-a", ":50051"},
		},
		"trailing flag without value": {
			args: []string{"-d"},
			want: []string{"-d"},
		},
		"positional arguments dropped": {
			args: []string{"serve", "now"},
			want: []string{},
		},
		"repeats kept in order": {
			args: []string{"-h", ":1", "-h", ":2"},
			want: []string{"-h", ":1", "-h", ":2"},
		},
		"nil args": {
			args: nil,
			want: []string{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, serverFlags))
		})
	}
}

func TestConfigPath(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"-c", "a.json"}, "a.json"},
		{[]string{"-config=b.json", "-u", "http://x"}, "b.json"},
		{[]string{"-c", "one.json", "-config", "two.json"}, "two.json"},
		{[]string{"-u", "http://x", "-l", "debug"}, ""},
		{[]string{"-c"}, ""},
		{nil, ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ConfigPath(c.args), "%v", c.args)
	}
}

func TestJsonConfigFlags_ReadsProcessArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"truekicks", "-l", "debug", "-c", "/etc/truekicks.json"}
	assert.Equal(t, "/etc/truekicks.json", JsonConfigFlags())

	os.Args = []string{"truekicks"}
	assert.Empty(t, JsonConfigFlags())
}
