package main

import (
	"fmt"
	"strconv"
	"strings"
)

// extractRootFlags applies the root persistent flags found in args and returns
// the remaining arguments. It serves commands that disable cobra flag parsing
// to forward their arguments untouched.
func extractRootFlags(args []string) ([]string, error) {
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}
		if arg == "-v" {
			verbose = true
			continue
		}
		if !strings.HasPrefix(arg, "--") {
			rest = append(rest, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		switch name {
		case "config", "user":
			if !hasValue {
				if i+1 >= len(args) {
					return nil, fmt.Errorf("flag needs an argument: --%s", name)
				}
				i++
				value = args[i]
			}
			if name == "config" {
				cfgFile = value
			} else {
				userID = value
			}
		case "verbose":
			v := true
			if hasValue {
				parsed, err := strconv.ParseBool(value)
				if err != nil {
					return nil, fmt.Errorf("invalid value %q for --verbose", value)
				}
				v = parsed
			}
			verbose = v
		default:
			rest = append(rest, arg)
		}
	}
	return rest, nil
}
