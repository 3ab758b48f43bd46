package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agenthands/egograph/internal/core/model"
	"github.com/agenthands/egograph/internal/errs"
)

const (
	QueryPrompt  = "Proszę podać imię i nazwisko wyszukiwanej osoby: "
	IndexPrompt  = "Proszę podać numer wybranej osoby: "
	ListHeader   = "Wyszukane osoby:"
	ResultPrefix = "Graf ego wybranej osoby: "
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorMuted  = lipgloss.Color("#7A8B91")
)

// Prompter reads operator answers line by line and writes prompts and
// listings to Out. Nothing here goes through the logger.
type Prompter struct {
	In  *bufio.Reader
	Out io.Writer

	number lipgloss.Style
	muted  lipgloss.Style
	title  lipgloss.Style
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	r := lipgloss.NewRenderer(out)
	return &Prompter{
		In:     bufio.NewReader(in),
		Out:    out,
		number: r.NewStyle().Bold(true).Foreground(colorAccent),
		muted:  r.NewStyle().Foreground(colorMuted),
		title:  r.NewStyle().Bold(true),
	}
}

// AskQuery prompts for the name to search for. An empty answer is returned
// as is; the registry decides what it matches.
func (p *Prompter) AskQuery() (string, error) {
	line, err := p.ask(QueryPrompt)
	if err != nil {
		return "", errs.Search("console.AskQuery", err)
	}
	return line, nil
}

// AskIndex prompts for a candidate number and resolves it with Select.
func (p *Prompter) AskIndex(candidates []model.Candidate) (string, error) {
	const op = "console.AskIndex"

	line, err := p.ask(IndexPrompt)
	if err != nil {
		return "", errs.Selection(op, err)
	}
	index, err := strconv.Atoi(line)
	if err != nil {
		return "", errs.Selection(op, &errs.InvalidSelectionError{
			Count: len(candidates),
			Input: line,
		})
	}
	return Select(candidates, index)
}

// RenderCandidates prints one "no<TAB>name dob" line per candidate.
func (p *Prompter) RenderCandidates(candidates []model.Candidate) {
	fmt.Fprintln(p.Out, p.title.Render(ListHeader))
	for _, c := range candidates {
		line := p.number.Render(strconv.Itoa(c.No)) + "\t" + c.Name
		if c.DateOfBirth != "" {
			line += " " + p.muted.Render(c.DateOfBirth)
		}
		fmt.Fprintln(p.Out, line)
	}
}

func (p *Prompter) RenderResult(url string) {
	fmt.Fprintln(p.Out)
	fmt.Fprintln(p.Out, ResultPrefix+p.number.Render(url))
}

func (p *Prompter) ask(prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt)
	line, err := p.In.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
