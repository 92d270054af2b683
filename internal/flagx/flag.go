// Package flagx lets several flag sets share one command line. Each config
// layer picks out only the flags it owns, so a flag meant for another layer
// never makes its parse fail.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// ConfigFileFlags are the names accepted for the JSON config file path.
var ConfigFileFlags = []string{"-c", "-config"}

// inlineName returns the flag name of an "-x=value" argument.
func inlineName(arg string) (string, bool) {
	if !strings.HasPrefix(arg, "-") {
		return "", false
	}
	name, _, found := strings.Cut(arg, "=")
	return name, found
}

// FilterArgs keeps the arguments of args that belong to allowedFlags, in
// their original order. Both "-c conf.json" and "-c=conf.json" are
// recognised. A separate value is taken only when it does not start with a
// dash. The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, ok := inlineName(arg); ok {
			if _, keep := allowed[name]; keep {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, keep := allowed[arg]; !keep {
			continue
		}
		filtered = append(filtered, arg)

		if next := i + 1; next < len(args) && !strings.HasPrefix(args[next], "-") {
			filtered = append(filtered, args[next])
			i = next
		}
	}

	return filtered
}

// ConfigPath returns the JSON config file named in args by -c or -config,
// or "" when neither is given. The last occurrence wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, ConfigFileFlags))

	return path
}

// JsonConfigFlags is ConfigPath applied to the process arguments.
func JsonConfigFlags() string {
	return ConfigPath(os.Args[1:])
}
