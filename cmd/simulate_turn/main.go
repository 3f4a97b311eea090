package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"emoticore-be/internal/config"
	"emoticore-be/internal/constant"
	"emoticore-be/internal/prompt"
	"emoticore-be/pkg/conversation"
	"emoticore-be/pkg/llm/factory"

	"github.com/fatih/color"
)

// Runs one chat turn against the configured completion provider, without
// HTTP or a database. Prior turns are passed as alternating user/bot lines.
func main() {
	message := flag.String("message", "I've been feeling overwhelmed at work lately.", "user message")
	history := flag.String("history", "", "prior turns separated by '|', starting with the user")
	showWindow := flag.Bool("window", false, "print the provider input")
	flag.Parse()

	cfg := config.Load()

	systemPrompt, err := prompt.Load(cfg.Chat.SystemPromptFile)
	if err != nil {
		color.Red("Failed to load system prompt: %v", err)
		os.Exit(1)
	}
	color.Cyan("Prompt %s (%s)", systemPrompt.Version, systemPrompt.Name)

	provider, err := factory.NewLLMProvider(cfg.Ai, cfg.App.BaseURL)
	if err != nil {
		color.Red("Failed to init provider: %v", err)
		os.Exit(1)
	}
	if !provider.Available() {
		color.Yellow("Provider %q is not configured, the API would answer:", cfg.Ai.LLMProvider)
		color.White("%s", constant.ChatFallbackNotConfigured)
		return
	}

	var entries []conversation.HistoryEntry
	if *history != "" {
		for i, line := range strings.Split(*history, "|") {
			entries = append(entries, conversation.HistoryEntry{Content: strings.TrimSpace(line), IsBot: i%2 == 1})
		}
	}
	window := conversation.BuildWindow(systemPrompt.Content, entries, *message)

	if *showWindow {
		color.Yellow("\nWindow (%d messages)", len(window))
		for _, m := range window[1:] {
			color.White("  %-9s %s", m.Role, m.Content)
		}
	}

	color.Yellow("\nUSER: %s", *message)
	color.Cyan("Title: %s", conversation.DeriveTitle(*message))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Ai.TimeoutSeconds)*time.Second)
	defer cancel()

	start := time.Now()
	reply, err := provider.Chat(ctx, window)
	elapsed := time.Since(start)
	if err != nil {
		color.Red("Provider error after %s: %v", elapsed, err)
		color.White("The API would answer: %s", constant.ChatFallbackTechnical)
		os.Exit(1)
	}

	color.Green("\nBOT (%s, %s):", cfg.Ai.LLMModel, elapsed.Round(time.Millisecond))
	color.White("%s", reply)
}
