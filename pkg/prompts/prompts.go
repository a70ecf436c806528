// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

const (
	Yes = "Yes"
	No  = "No"

	Done   = "Done"
	Cancel = "Cancel"
)

var errNoOptions = errors.New("no options provided")

// promptUIRunner is a variable for testing purposes to allow mocking prompt.Run()
var promptUIRunner = func(prompt promptui.Prompt) (string, error) {
	return prompt.Run()
}

// promptUISelectRunner is a variable for testing purposes to allow mocking select.Run()
var promptUISelectRunner = func(sel promptui.Select) (int, string, error) {
	return sel.Run()
}

// utilsReadLongString reads a whole line, for input longer than promptui handles well
var utilsReadLongString = func(msg string, args ...interface{}) (string, error) {
	fmt.Printf(msg, args...)
	reader := bufio.NewReader(os.Stdin)
	longString, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	longString = strings.TrimSuffix(longString, "\n")
	return longString, nil
}

type Prompter interface {
	CaptureYesNo(promptStr string) (bool, error)
	CaptureNoYes(promptStr string) (bool, error)
	CaptureList(promptStr string, options []string) (string, error)
	CaptureListWithDefault(promptStr string, options []string, defaultOption string) (string, error)
	CaptureMultiSelect(promptStr string, options []string) ([]string, error)
	CaptureString(promptStr string) (string, error)
	CaptureStringAllowEmpty(promptStr string) (string, error)
	CaptureValidatedString(promptStr string, validator func(string) error) (string, error)
	CaptureURL(promptStr string) (string, error)
	CaptureUint64(promptStr string) (uint64, error)
	CaptureFloat(promptStr string, validator func(float64) error) (float64, error)
	CaptureJSON(promptStr string) (json.RawMessage, error)
}

type realPrompter struct{}

// NewPrompter returns a Prompter that asks on the terminal.
func NewPrompter() Prompter {
	return &realPrompter{}
}

func yesNoBase(promptStr string, orderedOptions []string) (bool, error) {
	prompt := promptui.Select{
		Label: promptStr,
		Items: orderedOptions,
	}

	_, decision, err := promptUISelectRunner(prompt)
	if err != nil {
		return false, err
	}
	return decision == Yes, nil
}

func (*realPrompter) CaptureYesNo(promptStr string) (bool, error) {
	return yesNoBase(promptStr, []string{Yes, No})
}

func (*realPrompter) CaptureNoYes(promptStr string) (bool, error) {
	return yesNoBase(promptStr, []string{No, Yes})
}

func (*realPrompter) CaptureList(promptStr string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errNoOptions
	}
	prompt := promptui.Select{
		Label: promptStr,
		Items: options,
	}
	_, listDecision, err := promptUISelectRunner(prompt)
	if err != nil {
		return "", err
	}
	return listDecision, nil
}

// CaptureListWithDefault starts the cursor on defaultOption when it is listed.
func (*realPrompter) CaptureListWithDefault(promptStr string, options []string, defaultOption string) (string, error) {
	if len(options) == 0 {
		return "", errNoOptions
	}
	cursor := 0
	for i, o := range options {
		if o == defaultOption {
			cursor = i
			break
		}
	}
	prompt := promptui.Select{
		Label:     promptStr,
		Items:     options,
		CursorPos: cursor,
	}
	_, listDecision, err := promptUISelectRunner(prompt)
	if err != nil {
		return "", err
	}
	return listDecision, nil
}

// CaptureMultiSelect keeps offering the remaining options until the user picks Done.
func (p *realPrompter) CaptureMultiSelect(promptStr string, options []string) ([]string, error) {
	if len(options) == 0 {
		return nil, errNoOptions
	}

	selected := []string{}
	remaining := make([]string, len(options))
	copy(remaining, options)

	for len(remaining) > 0 {
		label := promptStr
		if len(selected) > 0 {
			label = fmt.Sprintf("%s (selected: %s)", promptStr, strings.Join(selected, ", "))
		}
		choice, err := p.CaptureList(label, append(remaining, Done))
		if err != nil {
			return nil, err
		}
		if choice == Done {
			break
		}
		selected = append(selected, choice)
		newRemaining := []string{}
		for _, opt := range remaining {
			if opt != choice {
				newRemaining = append(newRemaining, opt)
			}
		}
		remaining = newRemaining
	}

	return selected, nil
}

func (*realPrompter) CaptureString(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label: promptStr,
		Validate: func(input string) error {
			if input == "" {
				return errors.New("string cannot be empty")
			}
			return nil
		},
	}

	return promptUIRunner(prompt)
}

func (*realPrompter) CaptureStringAllowEmpty(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label: promptStr,
	}

	return promptUIRunner(prompt)
}

func (*realPrompter) CaptureValidatedString(promptStr string, validator func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: validator,
	}

	return promptUIRunner(prompt)
}

func (*realPrompter) CaptureURL(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: ValidateURLFormat,
	}

	return promptUIRunner(prompt)
}

func (*realPrompter) CaptureUint64(promptStr string) (uint64, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: validateUint64,
	}

	amountStr, err := promptUIRunner(prompt)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(amountStr, 10, 64)
}

// CaptureFloat prompts the user for a floating point number
func (*realPrompter) CaptureFloat(promptStr string, validator func(float64) error) (float64, error) {
	prompt := promptui.Prompt{
		Label: promptStr,
		Validate: func(input string) error {
			val, err := strconv.ParseFloat(input, 64)
			if err != nil {
				return fmt.Errorf("strconv.ParseFloat: %v", err)
			}
			if validator != nil {
				return validator(val)
			}
			return nil
		},
	}

	result, err := promptUIRunner(prompt)
	if err != nil {
		return 0, err
	}

	return strconv.ParseFloat(result, 64)
}

// CaptureJSON reads one line of JSON. Messages tend to be longer than promptui's
// line editor copes with, so it reads stdin directly.
func (*realPrompter) CaptureJSON(promptStr string) (json.RawMessage, error) {
	for {
		line, err := utilsReadLongString("%s: ", promptStr)
		if err != nil {
			return nil, err
		}
		if err := ValidateJSON(line); err != nil {
			fmt.Println(err)
			continue
		}
		return json.RawMessage(strings.TrimSpace(line)), nil
	}
}
