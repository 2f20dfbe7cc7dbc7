// Package ui provides the sequential prompt and output helpers for the
// claimer's line-oriented terminal flow. Prompts are one-group huh forms
// run to completion; output goes through lipgloss styles from the theme
// package.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"github.com/farewell-protocol/farewell-claimer/internal/theme"
)

const banner = `
  ╭──────────────────────────────────────╮
  │                                      │
  │     F A R E W E L L                  │
  │                                      │
  │     Claimer Helper                   │
  │     ZK-Email Proof Generator         │
  │                                      │
  ╰──────────────────────────────────────╯
`

// Banner prints the startup banner.
func Banner() {
	fmt.Println(theme.BannerStyle.Render(banner))
	fmt.Println(theme.BannerTaglineStyle.Render("  Send farewell emails and prove their delivery."))
	fmt.Println()
}

// Section prints a rule-delimited section header.
func Section(title string) {
	rule := strings.Repeat("─", 60)
	fmt.Println()
	fmt.Println(theme.SectionStyle.Render(rule))
	fmt.Println(theme.SectionStyle.Render("  " + title))
	fmt.Println(theme.SectionStyle.Render(rule))
	fmt.Println()
}

// Successf prints a success line.
func Successf(format string, args ...any) {
	fmt.Println(theme.SuccessStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

// Errorf prints an error line.
func Errorf(format string, args ...any) {
	fmt.Println(theme.ErrorStyle.Render("✗ " + fmt.Sprintf(format, args...)))
}

// Warnf prints a warning line.
func Warnf(format string, args ...any) {
	fmt.Println(theme.WarningStyle.Render("⚠ " + fmt.Sprintf(format, args...)))
}

// Infof prints an informational line.
func Infof(format string, args ...any) {
	fmt.Println(theme.InfoStyle.Render("ℹ " + fmt.Sprintf(format, args...)))
}

// Field prints an aligned label/value pair for summaries.
func Field(label, value string) {
	fmt.Printf("  %s %s\n",
		theme.LabelStyle.Render(label+":"),
		theme.ValueStyle.Render(value),
	)
}

// Muted prints secondary text such as previews and hints.
func Muted(text string) {
	fmt.Println(theme.MutedStyle.Render(text))
}

// Option is a labeled value for selection prompts.
type Option struct {
	Label string
	Value string
}

// Input prompts for a single line of text. The initial value, when not
// empty, is pre-filled and can be edited or accepted as-is. When required
// is set, blank input is rejected.
func Input(title, description, initial string, required bool) (string, error) {
	value := initial

	field := huh.NewInput().
		Title(title).
		Description(description).
		Value(&value)
	if required {
		field = field.Validate(validateRequired(title))
	}

	if err := runForm(field); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// Password prompts for a secret without echoing it.
func Password(title, description string) (string, error) {
	var value string

	field := huh.NewInput().
		Title(title).
		Description(description).
		EchoMode(huh.EchoModePassword).
		Validate(validateRequired(title)).
		Value(&value)

	if err := runForm(field); err != nil {
		return "", err
	}
	return value, nil
}

// Select prompts for one of the given options and returns its value.
func Select(title, description string, options []Option) (string, error) {
	var value string

	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o.Label, o.Value)
	}

	field := huh.NewSelect[string]().
		Title(title).
		Description(description).
		Options(opts...).
		Value(&value)

	if err := runForm(field); err != nil {
		return "", err
	}
	return value, nil
}

// Confirm asks a yes/no question.
func Confirm(title string, defaultYes bool) (bool, error) {
	value := defaultYes

	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)

	if err := runForm(field); err != nil {
		return false, err
	}
	return value, nil
}

// Multiline prompts for free-form multi-line text.
func Multiline(title, description string) (string, error) {
	var value string

	field := huh.NewText().
		Title(title).
		Description(description).
		Validate(validateRequired(title)).
		Value(&value)

	if err := runForm(field); err != nil {
		return "", err
	}
	return value, nil
}

// Spin runs fn while showing a spinner with the given title.
func Spin(title string, fn func() error) error {
	var fnErr error
	err := spinner.New().
		Title(title).
		Action(func() { fnErr = fn() }).
		Run()
	if err != nil {
		return err
	}
	return fnErr
}

func runForm(fields ...huh.Field) error {
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
