// Command console is a line-oriented front end for the conversational
// controller. Plain lines are submitted to the assistant; commands
// start with a slash. An empty line submits whatever dictation left
// in the input buffer.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"ai-chat-console/internal/app"
	"ai-chat-console/internal/config"
	"ai-chat-console/internal/conversation"
	"ai-chat-console/internal/dictation"
	"ai-chat-console/internal/markup"
	"ai-chat-console/internal/playback"
)

func main() {
	cfg := config.Load()

	a := app.New(cfg, newConsoleSynth(os.Stdout))
	defer a.Close()

	a.Obs.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
		fmt.Println()
		os.Exit(0)
	}()

	a.Store.Hydrate(ctx)
	for _, m := range a.Store.Transcript() {
		printMessage(a, string(m.Role), m.Text)
	}

	a.Dictation.SetOnChange(func(text string) {
		fmt.Printf("\r\033[K… %s", text)
	})

	fmt.Println("ai-chat-console: /mic /speak /voices /prompts /prompt N /quit")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "/") {
			if quit := runCommand(ctx, a, line); quit {
				return
			}
			continue
		}

		text := line
		if text == "" {
			text = a.Dictation.Text()
		}
		submit(ctx, a, text)
	}
}

func submit(ctx context.Context, a *app.Application, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	err := a.Store.Submit(ctx, text)
	if errors.Is(err, conversation.ErrPending) {
		fmt.Println("(still waiting for the previous reply)")
		return
	}
	if reply, ok := a.Store.LatestAssistant(); ok {
		printMessage(a, "assistant", reply.Text)
	}
}

func runCommand(ctx context.Context, a *app.Application, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true

	case "/mic":
		toggleMic(ctx, a)

	case "/speak":
		if err := a.Playback.SpeakLatestAssistantReply(a.Store.Transcript()); err != nil {
			fmt.Println("playback failed:", err)
		}

	case "/voices":
		for _, v := range a.Playback.Voices() {
			fmt.Printf("  %s (%s)\n", v.Name, v.Locale)
		}

	case "/prompts":
		for i, p := range conversation.QuickPrompts {
			fmt.Printf("  %d. %s\n", i+1, p)
		}

	case "/prompt":
		if len(fields) < 2 {
			fmt.Println("usage: /prompt N")
			break
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 || n > len(conversation.QuickPrompts) {
			fmt.Println("no such prompt")
			break
		}
		a.Dictation.SetText(conversation.QuickPrompts[n-1])
		fmt.Println("input:", a.Dictation.Text())

	default:
		fmt.Println("unknown command:", fields[0])
	}
	return false
}

func toggleMic(ctx context.Context, a *app.Application) {
	if a.Dictation.Listening() {
		if err := a.Dictation.Stop(); err != nil {
			fmt.Println("stop failed:", err)
		}
		// Idle is confirmed asynchronously by the recognizer.
		time.Sleep(200 * time.Millisecond)
		fmt.Printf("\nmic off, input: %q\n", a.Dictation.Text())
		return
	}
	if err := a.Dictation.Start(ctx); err != nil {
		if errors.Is(err, dictation.ErrUnsupported) {
			fmt.Println("Voice not supported on this platform.")
			return
		}
		fmt.Println("mic failed:", err)
		return
	}
	fmt.Println("mic on")
}

func printMessage(a *app.Application, role, text string) {
	rendered := markup.Plain(a.Renderer.Render(text))
	fmt.Printf("[%s] %s\n", role, rendered)
}

// consoleSynth is the console's stand-in for platform speech
// synthesis: it prints the utterance instead of playing audio.
type consoleSynth struct {
	out *os.File
}

func newConsoleSynth(out *os.File) *consoleSynth {
	return &consoleSynth{out: out}
}

func (s *consoleSynth) Voices() []playback.Voice {
	return []playback.Voice{
		{Name: "Google US English", Locale: "en-US"},
		{Name: "Console Default", Locale: "en-US", Default: true},
	}
}

func (s *consoleSynth) Speak(u playback.Utterance) error {
	fmt.Fprintf(s.out, "speaking (%s @%.2f): %s\n", u.Voice, u.Rate, u.Text)
	return nil
}

func (s *consoleSynth) Cancel() {}
