package issues

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const defaultOutputLines = 50

// Formatter expands tokens in issue title and body templates
//
//go:generate mockgen -package=issues -destination ./formatter_mock.go -source=formatter.go
type Formatter interface {
	Format(template string, buildContext BuildContext) (formatted string, err error)
}

// NewTokenFormatter returns a Formatter supporting $TOKEN, ${TOKEN} and ${TOKEN, arg=value} macros
func NewTokenFormatter() Formatter {
	return &tokenFormatter{}
}

type tokenFormatter struct {
}

var tokenRegex = regexp.MustCompile(`\$\$|\$\{([A-Z][A-Z0-9_]*)\s*(?:,([^}]*))?\}|\$([A-Z][A-Z0-9_]*)`)

var knownTokens = map[string]bool{
	"JOB_NAME":           true,
	"BUILD_NUMBER":       true,
	"BUILD_DISPLAY_NAME": true,
	"BUILD_URL":          true,
	"BUILD_RESULT":       true,
	"OUTPUT":             true,
}

func (f *tokenFormatter) Format(template string, buildContext BuildContext) (formatted string, err error) {

	var sb strings.Builder
	last := 0

	for _, m := range tokenRegex.FindAllStringSubmatchIndex(template, -1) {
		sb.WriteString(template[last:m[0]])
		last = m[1]

		match := template[m[0]:m[1]]
		if match == "$$" {
			sb.WriteString("$")
			continue
		}

		var name, rawArgs string
		if m[2] >= 0 {
			name = template[m[2]:m[3]]
			if m[4] >= 0 {
				rawArgs = template[m[4]:m[5]]
			}
		} else {
			name = template[m[6]:m[7]]
		}

		// tokens of other plugins are left as they are, arguments included
		if !knownTokens[name] {
			sb.WriteString(match)
			continue
		}

		args, err := parseMacroArgs(rawArgs)
		if err != nil {
			return template, errors.Wrapf(err, "Invalid arguments for token %v", name)
		}

		value, err := f.expand(name, args, buildContext)
		if err != nil {
			return template, errors.Wrapf(err, "Failed expanding token %v", name)
		}
		sb.WriteString(value)
	}
	sb.WriteString(template[last:])

	return sb.String(), nil
}

func (f *tokenFormatter) expand(name string, args map[string]string, buildContext BuildContext) (value string, err error) {
	switch name {
	case "JOB_NAME":
		return buildContext.Job.Name, nil
	case "BUILD_NUMBER":
		return strconv.Itoa(buildContext.Build.Number), nil
	case "BUILD_DISPLAY_NAME":
		if buildContext.Build.DisplayName != "" {
			return buildContext.Build.DisplayName, nil
		}
		return fmt.Sprintf("#%v", buildContext.Build.Number), nil
	case "BUILD_URL":
		return buildContext.Build.URL, nil
	case "BUILD_RESULT":
		return string(buildContext.Build.Outcome), nil
	case "OUTPUT":
		lines := defaultOutputLines
		for key, v := range args {
			if key != "lines" {
				return "", errors.Errorf("unsupported argument %v", key)
			}
			lines, err = strconv.Atoi(v)
			if err != nil || lines < 1 {
				return "", errors.Errorf("lines must be a positive number, got %q", v)
			}
		}
		return strings.Join(lastLines(buildContext.Build.Output, lines), "\n"), nil
	}

	return "", errors.Errorf("unknown token %v", name)
}

func parseMacroArgs(rawArgs string) (args map[string]string, err error) {
	args = map[string]string{}
	if strings.TrimSpace(rawArgs) == "" {
		return args, nil
	}

	for _, arg := range strings.Split(rawArgs, ",") {
		key, value, found := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, errors.Errorf("argument %q is not of the form key=value", strings.TrimSpace(arg))
		}
		args[key] = strings.Trim(strings.TrimSpace(value), `"`)
	}

	return args, nil
}

func lastLines(output []string, n int) []string {
	if len(output) <= n {
		return output
	}
	return output[len(output)-n:]
}
