// Package prompt renders the text prompt sent to the LLM backend.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/huimingz/commitbuddy/internal/classify"
	"github.com/huimingz/commitbuddy/pkg/lang"
)

// CandidateCount is the number of suggestions the backend is asked for
const CandidateCount = 3

const commitPromptTemplate = `You are a Git commit message generator. Suggest commit messages for the staged changes below.
{{- if or .Language .Frameworks .ChangeTypes .Scope}}

## Change Context
{{- if .Language}}
Primary language: {{.Language}}
{{- end}}
{{- if .Frameworks}}
Frameworks and ecosystems: {{.Frameworks}}
{{- end}}
{{- if .ChangeTypes}}
Change categories: {{.ChangeTypes}}
{{- end}}
{{- if .Scope}}
Scope: {{.Scope}}
{{- end}}
{{- end}}
{{- if .Hints}}

## Type Hints
{{- range .Hints}}
- {{.}}
{{- end}}
{{- end}}

## Style: {{.Style}}
{{- range .Rules}}
- {{.}}
{{- end}}
{{- if .OutputLanguage}}

## Output Language
Write the messages in {{.OutputLanguage}}.
{{- end}}
{{- if .UserContext}}

## Additional Context
The developer describes this change as: "{{.UserContext}}"
{{- end}}

## Staged Changes
{{.DiffBlock}}

Respond with exactly {{.Count}} commit message options, one per line. Do not number them, do not wrap them in quotes or code blocks, and do not add any other commentary.
`

var commitPrompt = template.Must(template.New("commit_prompt").Parse(commitPromptTemplate))

// Input carries everything the prompt is rendered from
type Input struct {
	Diff        string
	Context     classify.ChangeContext
	Style       Style
	Language    lang.Language // output language; empty omits the clause
	UserContext string        // free-form developer hint; empty omits the clause
}

type promptData struct {
	Language       string
	Frameworks     string
	ChangeTypes    string
	Scope          string
	Hints          []string
	Style          Style
	Rules          []string
	OutputLanguage string
	UserContext    string
	DiffBlock      string
	Count          int
}

// Build renders the commit prompt
func Build(in Input) (string, error) {
	style := in.Style
	if !style.IsValid() {
		style = DefaultStyle
	}

	data := promptData{
		Frameworks:  strings.Join(in.Context.Frameworks, ", "),
		ChangeTypes: strings.Join(in.Context.ChangeTypes, ", "),
		Scope:       in.Context.Scope,
		Style:       style,
		Rules:       style.Rules(),
		UserContext: strings.TrimSpace(in.UserContext),
		DiffBlock:   fenceDiff(in.Diff),
		Count:       CandidateCount,
	}
	if in.Context.Language != "" && in.Context.Language != classify.UnknownLanguage {
		data.Language = in.Context.Language
	}
	if style != StyleSimple {
		data.Hints = typeHints(in.Context)
	}
	if in.Language != "" {
		data.OutputLanguage = in.Language.DisplayName()
	}

	var buf bytes.Buffer
	if err := commitPrompt.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

// typeHints maps detected change categories to Conventional Commit type guidance
func typeHints(c classify.ChangeContext) []string {
	var hints []string
	if c.HasConfig {
		hints = append(hints, `Configuration, dependency or build files changed: prefer "chore:" or "build:" when they are the main change.`)
	}
	if c.HasTests {
		hints = append(hints, `Tests changed: use "test:" when only tests are affected.`)
	}
	if c.HasDocs {
		hints = append(hints, `Documentation changed: use "docs:" when only documentation is affected.`)
	}
	if c.HasFrontend {
		hints = append(hints, "UI code changed: mention the affected component or view.")
	}
	if c.HasBackend {
		hints = append(hints, "API or service code changed: mention the affected endpoint or service.")
	}
	return hints
}

// fenceDiff wraps the diff in a code fence longer than any backtick run it contains
func fenceDiff(diff string) string {
	fence := strings.Repeat("`", max(3, longestBacktickRun(diff)+1))

	var b strings.Builder
	b.WriteString(fence)
	b.WriteString("diff\n")
	b.WriteString(diff)
	if !strings.HasSuffix(diff, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(fence)
	return b.String()
}

func longestBacktickRun(s string) int {
	longest, current := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == '`' {
			current++
			longest = max(longest, current)
			continue
		}
		current = 0
	}
	return longest
}
