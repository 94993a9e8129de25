package filter

import (
	"fmt"
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog"

	"github.com/s0up4200/pexels/pexels"
)

// Filter is a compiled boolean expression evaluated against photo and video records.
//
// Record fields are exposed as lower-case variables (width, duration,
// photographer, ...). A field that cannot be read from a record is left
// undefined, so comparisons against it fail and the record does not match.
// Text helpers are hasText, hasPrefix and hasSuffix (case-insensitive);
// the contains, startsWith and endsWith operators are case-sensitive.
type Filter struct {
	expression string
	program    *vm.Program
	logger     zerolog.Logger
}

// Compile compiles an expression into a Filter
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	// Compile with static environment for validation
	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // Record fields are bound at run time
		expr.DisableBuiltin("duration"),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{
		expression: expression,
		program:    program,
		logger:     zerolog.Nop(),
	}, nil
}

// SetLogger sets the logger that reports records the expression could not be evaluated against
func (f *Filter) SetLogger(logger zerolog.Logger) {
	f.logger = logger
}

// String returns the original expression
func (f *Filter) String() string {
	return f.expression
}

// MatchPhoto reports whether the photo satisfies the filter
func (f *Filter) MatchPhoto(photo *pexels.Photo) bool {
	return f.match("photo", photoEnvironment(photo))
}

// MatchVideo reports whether the video satisfies the filter
func (f *Filter) MatchVideo(video *pexels.Video) bool {
	return f.match("video", videoEnvironment(video))
}

func (f *Filter) match(kind string, env map[string]any) bool {
	matched, err := f.evaluate(kind, env)
	if err != nil {
		f.logger.Debug().Err(err).Msg("Record excluded by filter")
		return false
	}
	return matched
}

func (f *Filter) evaluate(kind string, env map[string]any) (bool, error) {
	record := kind
	if id, ok := env["id"]; ok {
		record = fmt.Sprintf("%s %v", kind, id)
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Record:     record,
			Reason:     "failed to run expression",
			Err:        err,
		}
	}

	// AsBool guarantees the type, but nil can still surface from undefined variables
	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			Record:     record,
			Reason:     fmt.Sprintf("expression returned %T, not bool", result),
		}
	}
	return matched, nil
}

// helperFunctions returns the static helper functions available to every expression
func helperFunctions() map[string]any {
	return map[string]any{
		"hasText": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"hasPrefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"hasSuffix": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// put stores a field in env only when it could be read
func put[T any](env map[string]any, key string, read func() (T, error)) {
	if v, err := read(); err == nil {
		env[key] = v
	}
}

func orientation(width, height int) string {
	switch {
	case width > height:
		return "landscape"
	case width < height:
		return "portrait"
	default:
		return "square"
	}
}

func photoEnvironment(photo *pexels.Photo) map[string]any {
	env := make(map[string]any, 16)
	maps.Copy(env, helperFunctions())

	put(env, "id", photo.ID)
	put(env, "width", photo.Width)
	put(env, "height", photo.Height)
	put(env, "photographer", photo.Photographer)
	put(env, "description", photo.Description)
	put(env, "color", photo.Color)
	put(env, "url", photo.URL)
	put(env, "extension", photo.Extension)

	width, werr := photo.Width()
	height, herr := photo.Height()
	if werr == nil && herr == nil {
		env["orientation"] = orientation(width, height)
	}

	return env
}

func videoEnvironment(video *pexels.Video) map[string]any {
	env := make(map[string]any, 16)
	maps.Copy(env, helperFunctions())

	put(env, "id", video.ID)
	put(env, "width", video.Width)
	put(env, "height", video.Height)
	put(env, "videographer", video.Videographer)
	put(env, "description", video.Description)
	put(env, "duration", video.Duration)
	put(env, "url", video.URL)
	put(env, "extension", video.Extension)
	put(env, "best_width", video.HighestResolutionWidth)
	put(env, "best_height", video.HighestResolutionHeight)

	width, werr := video.Width()
	height, herr := video.Height()
	if werr == nil && herr == nil {
		env["orientation"] = orientation(width, height)
	}

	return env
}
