package prompt_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/preflight/pkg/domain/model"
	"github.com/m-mizutani/preflight/pkg/domain/types"
	"github.com/m-mizutani/preflight/pkg/prompt"
)

func fullContext() prompt.Context {
	return prompt.NewContext(&model.PullRequest{
		Title:          "Add cache layer",
		Branch:         "feat/cache",
		Description:    "Adds LRU cache",
		Language:       "Go",
		Diff:           "+func Get(k string)...",
		CommitMessages: "- add cache\n- add tests",
	}, "")
}

func TestTemplate_RenderDefault(t *testing.T) {
	tmpl, err := prompt.New()
	gt.NoError(t, err)

	rendered, err := tmpl.Render(fullContext())
	gt.NoError(t, err)

	gt.True(t, strings.Contains(rendered.User, "Title: Add cache layer"))
	gt.True(t, strings.Contains(rendered.User, "Branch: feat/cache"))
	gt.True(t, strings.Contains(rendered.User, "Main Language: Go"))
	gt.True(t, strings.Contains(rendered.User, "- add cache\n- add tests"))
	gt.True(t, strings.Contains(rendered.System, "deployment impact analyzer"))

	// The five analysis dimensions frame the model output and must survive
	// substitution verbatim
	sections := []string{
		"1. System Dependency Analysis:",
		"2. Change Impact Assessment:",
		"3. Deployment Requirements:",
		"4. Deployment Risk Score:",
		"5. Recommended Deployment Strategy:",
	}
	for _, section := range sections {
		gt.True(t, strings.Contains(rendered.User, section))
	}

	// No placeholder survives a complete context
	gt.True(t, !strings.Contains(rendered.User, "{{"))
}

func TestTemplate_RenderDeterministic(t *testing.T) {
	tmpl, err := prompt.New()
	gt.NoError(t, err)

	first, err := tmpl.Render(fullContext())
	gt.NoError(t, err)
	second, err := tmpl.Render(fullContext())
	gt.NoError(t, err)

	gt.V(t, first.System).Equal(second.System)
	gt.V(t, first.User).Equal(second.User)
}

func TestTemplate_MissingContextKey(t *testing.T) {
	tmpl, err := prompt.New()
	gt.NoError(t, err)

	ctx := fullContext()
	delete(ctx, prompt.KeyDiff)

	rendered, err := tmpl.Render(ctx)
	gt.True(t, err != nil)
	gt.True(t, errors.Is(err, types.ErrMissingContextKey))
	gt.True(t, rendered == nil)
}

func TestTemplate_NoRecursiveExpansion(t *testing.T) {
	tmpl, err := prompt.New()
	gt.NoError(t, err)

	ctx := fullContext()
	ctx[prompt.KeyTitle] = "{{diff}}"
	ctx[prompt.KeyDiff] = "DIFF_VALUE"

	rendered, err := tmpl.Render(ctx)
	gt.NoError(t, err)

	// The substituted title must stay literal, never re-expanded
	gt.True(t, strings.Contains(rendered.User, "Title: {{diff}}"))
	gt.True(t, !strings.Contains(rendered.User, "Title: DIFF_VALUE"))
}

func TestTemplate_UnknownPlaceholderRejected(t *testing.T) {
	_, err := prompt.New(prompt.WithUser("Hello {{nonsense}}"))
	gt.True(t, err != nil)
	gt.True(t, errors.Is(err, types.ErrUnknownPlaceholder))
}

func TestTemplate_CustomTemplates(t *testing.T) {
	tmpl, err := prompt.New(
		prompt.WithSystem("system text"),
		prompt.WithUser("PR {{title}} on {{branch}}"),
	)
	gt.NoError(t, err)

	rendered, err := tmpl.Render(fullContext())
	gt.NoError(t, err)
	gt.V(t, rendered.System).Equal("system text")
	gt.V(t, rendered.User).Equal("PR Add cache layer on feat/cache")
}

func TestTemplate_ConfigFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.toml")
	content := "[pr_deployment_impact_prompt]\nuser = \"Custom: {{title}}\"\n"
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600))

	tmpl, err := prompt.New(prompt.WithConfigFile(path))
	gt.NoError(t, err)

	rendered, err := tmpl.Render(fullContext())
	gt.NoError(t, err)
	gt.V(t, rendered.User).Equal("Custom: Add cache layer")

	// System keeps the embedded default when the file omits it
	gt.True(t, strings.Contains(rendered.System, "deployment impact analyzer"))
}

func TestTemplate_ConfigFileMissing(t *testing.T) {
	_, err := prompt.New(prompt.WithConfigFile(filepath.Join(t.TempDir(), "absent.toml")))
	gt.True(t, err != nil)
}
