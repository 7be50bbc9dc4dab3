package template

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/google/cel-go/cel"
)

// Regular expression to match {{expression}} patterns.
var celExprReg = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Expand expands template expressions in the format {{CEL expression}} with values from the store.
func Expand(template string, store map[string]any) (string, error) {
	env, err := createCELEnv(store)
	if err != nil {
		return "", fmt.Errorf("failed to create CEL environment: %w", err)
	}

	var expandErr error
	result := celExprReg.ReplaceAllStringFunc(template, func(match string) string {
		if expandErr != nil {
			return match
		}
		expr := strings.TrimSpace(match[2 : len(match)-2])

		ast, issues := env.Compile(expr)
		if issues != nil && issues.Err() != nil {
			expandErr = fmt.Errorf("template compilation error for '{{%s}}': %w", expr, issues.Err())
			return match
		}

		prg, err := env.Program(ast)
		if err != nil {
			expandErr = fmt.Errorf("template program creation error for '{{%s}}': %w", expr, err)
			return match
		}

		out, _, err := prg.Eval(store)
		if err != nil {
			expandErr = fmt.Errorf("template evaluation error for '{{%s}}': %w", expr, err)
			return match
		}

		return fmt.Sprintf("%v", out.Value())
	})

	if expandErr != nil {
		return "", expandErr
	}

	return result, nil
}

// EnvironToMap returns the current environment variables as a map.
func EnvironToMap() map[string]string {
	env := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	return env
}

// createCELEnv creates a CEL environment with all variables from the store.
func createCELEnv(store map[string]any) (*cel.Env, error) {
	var options []cel.EnvOption
	for key, value := range store {
		options = append(options, cel.Variable(key, inferCELType(value)))
	}
	return cel.NewEnv(options...)
}

// inferCELType maps the value types put in a command store to CEL types.
// Anything else is left dynamic.
func inferCELType(value any) *cel.Type {
	switch value.(type) {
	case string:
		return cel.StringType
	case int:
		return cel.IntType
	case bool:
		return cel.BoolType
	case map[string]string:
		return cel.MapType(cel.StringType, cel.StringType)
	default:
		return cel.AnyType
	}
}
