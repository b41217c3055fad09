package selector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("selection aborted")

// SelectConfig configures a single-choice prompt.
type SelectConfig struct {
	Message  string
	Options  []string
	Default  int
	PageSize int
	// Filter decides whether the option at index stays visible for the
	// typed filter text. Nil uses the prompt's default matching.
	Filter func(filter string, index int) bool
}

// Prompter abstracts the terminal so the selection flow can be tested
// without one.
type Prompter interface {
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Info(ctx context.Context, msg string) error
}

type surveyPrompter struct {
	out io.Writer
}

// NewSurveyPrompter returns a Prompter backed by the terminal.
func NewSurveyPrompter() Prompter {
	return &surveyPrompter{out: os.Stdout}
}

func (p *surveyPrompter) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out int
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if cfg.Default >= 0 && cfg.Default < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.Default]
	}
	if cfg.Filter != nil {
		prompt.Filter = func(filter, _ string, index int) bool {
			return cfg.Filter(filter, index)
		}
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return out, nil
}

func (p *surveyPrompter) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.out, msg)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
