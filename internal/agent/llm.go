package agent

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/iishyfishyy/lazyshell/internal/provider"
)

// Caller sends one (intro, prompt) pair to a provider. It is implemented by
// *orchestrator.Orchestrator.
type Caller interface {
	Call(ctx context.Context, spec provider.Spec, intro, prompt, label string) (string, error)
}

const completeIntro = `You are a zsh shell expert. Write a single zsh command that solves the user's query.
Reply with the command only: no explanation, no markdown, no code fences.
If the query cannot be answered with a command, reply with one line starting with # that says why.`

const explainIntro = `You are a zsh shell expert. Explain what the given zsh command does.
Be concise: describe each part of the command and any side effects, using short plain-text lines.`

// LLMAgent implements Agent on top of a provider call
type LLMAgent struct {
	caller Caller
	spec   provider.Spec
	osInfo string
}

// NewLLMAgent creates an agent that talks to spec through caller
func NewLLMAgent(caller Caller, spec provider.Spec) *LLMAgent {
	return &LLMAgent{
		caller: caller,
		spec:   spec,
		osInfo: DescribeSystem(),
	}
}

// TranslateToCommand translates natural language to a shell command
func (a *LLMAgent) TranslateToCommand(ctx context.Context, request string) (string, error) {
	return a.caller.Call(ctx, a.spec, a.intro(completeIntro), request, "Query: "+request)
}

// RefineCommand alters an existing command to satisfy a modification request
func (a *LLMAgent) RefineCommand(ctx context.Context, originalCommand, modificationRequest string) (string, error) {
	return a.caller.Call(ctx, a.spec, a.intro(completeIntro),
		RefinePrompt(originalCommand, modificationRequest), "Query: "+modificationRequest)
}

// ExplainCommand asks for a prose explanation of command
func (a *LLMAgent) ExplainCommand(ctx context.Context, command string) (string, error) {
	return a.caller.Call(ctx, a.spec, a.intro(explainIntro), command, "Explaining command...")
}

// RefinePrompt builds the prompt for altering an existing command
func RefinePrompt(command, query string) string {
	return fmt.Sprintf("Alter zsh command `%s` to comply with query `%s`", command, query)
}

func (a *LLMAgent) intro(base string) string {
	if a.osInfo == "" {
		return base
	}
	return base + "\n" + a.osInfo
}

// DescribeSystem returns a sentence describing the OS and shell for prompts
func DescribeSystem() string {
	osName := runtime.GOOS
	if pretty := osReleaseName("/etc/os-release"); pretty != "" {
		osName = pretty
	} else if runtime.GOOS == "darwin" {
		osName = "macOS"
	}

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/zsh"
	}

	return fmt.Sprintf("The system is %s (%s), the shell is %s.", osName, runtime.GOARCH, shell)
}

// osReleaseName reads PRETTY_NAME from an os-release file
func osReleaseName(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), "=")
		if found && key == "PRETTY_NAME" {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}
