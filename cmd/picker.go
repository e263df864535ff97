package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/tara-vision/readmegen/internal/storage"
)

// errNoRuns is returned by selectRun when there is nothing to pick from
var errNoRuns = errors.New("no runs recorded yet")

// RepoCompleter implements readline.AutoCompleter for repositories of
// previous runs and the slash commands
type RepoCompleter struct {
	candidates func() []string
}

// NewRepoCompleter creates a completer over store's repositories
func NewRepoCompleter(store *storage.Manager) *RepoCompleter {
	return &RepoCompleter{candidates: func() []string {
		return append(slashCommands(), store.Repositories()...)
	}}
}

func slashCommands() []string {
	return []string{"/history", "/show ", "/save ", "/help", "exit"}
}

// Do implements readline.AutoCompleter interface
func (c *RepoCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	prefix := string(line[:pos])
	if strings.Contains(prefix, " ") {
		return nil, 0
	}

	var candidates [][]rune
	prefixLower := strings.ToLower(prefix)
	for _, item := range c.candidates() {
		if strings.HasPrefix(strings.ToLower(item), prefixLower) {
			candidates = append(candidates, []rune(item[len(prefix):]))
		}
	}
	return candidates, len(prefix)
}

// selectRun shows an interactive run picker and returns the selected run ID
func selectRun(runs []storage.RunMetadata) (string, error) {
	if len(runs) == 0 {
		return "", errNoRuns
	}

	items := make([]string, len(runs))
	for i, r := range runs {
		items[i] = runLabel(r)
	}

	searcher := func(input string, index int) bool {
		return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
	}

	prompt := promptui.Select{
		Label:        "Select a run",
		Items:        items,
		Size:         15,
		Searcher:     searcher,
		HideSelected: true,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return runs[index].ID, nil
}

func runLabel(r storage.RunMetadata) string {
	id := r.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s  %s  %s/%s  %s", id, r.Repository, r.Language, r.ProjectType, r.CreatedAt.Local().Format("2006-01-02 15:04"))
}

// confirmOverwrite asks whether path may be replaced
func confirmOverwrite(path string) bool {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s exists. Overwrite", path),
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}
